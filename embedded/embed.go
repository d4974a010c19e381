// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии ожидания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconActive - иконка, пока открыто окно выбора (синяя).
//
//go:embed icon_active.png
var IconActive []byte

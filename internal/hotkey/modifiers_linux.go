//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"quickpick/internal/config"
)

// На X11 Alt и Super приходят как Mod1 и Mod4
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.Mod1,
	config.ModSuper: hotkey.Mod4,
}

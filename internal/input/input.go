// Package input вводит текст в активное окно синтетическими нажатиями клавиш.
package input

import "errors"

// ErrNoBackend - в системе нет инструмента для эмуляции ввода.
var ErrNoBackend = errors.New("не найден инструмент ввода текста")

// Typer вводит текст в активное поле ввода.
type Typer interface {
	// Type вводит текст в окно, которое сейчас в фокусе.
	Type(text string) error
}

// New создаёт платформо-специфичный Typer.
func New() (Typer, error) {
	return newTyper()
}

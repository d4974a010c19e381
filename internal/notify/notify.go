// Package notify предоставляет системные уведомления.
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"quickpick/internal/i18n"
)

const appName = "Quickpick"

// максимальная длина текста сниппета в уведомлении (в рунах)
const maxPreview = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Enabled сообщает, включены ли уведомления.
func (n *Notifier) Enabled() bool {
	return n.enabled.Load()
}

// Typed показывает уведомление о вставленном сниппете.
func (n *Notifier) Typed(text string) {
	n.notify(i18n.T("notify_typed"), preview(text))
}

// Copied показывает уведомление о копировании в буфер обмена.
func (n *Notifier) Copied(text string) {
	n.notify(i18n.T("notify_copied"), preview(text))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	n.notify("", preview(msg))
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = n.send(appName+": "+title, message)
	} else {
		_ = n.send(appName, message)
	}
}

// preview обрезает текст до maxPreview рун.
func preview(text string) string {
	r := []rune(text)
	if len(r) <= maxPreview {
		return text
	}
	return string(r[:maxPreview]) + "..."
}

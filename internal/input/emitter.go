package input

import (
	"log"
	"time"
)

// DefaultDelay - пауза перед вводом, чтобы окно выбора успело закрыться
// и фокус вернулся в предыдущее приложение.
const DefaultDelay = 100 * time.Millisecond

// Emitter вводит выбранный сниппет после короткой паузы.
// Ошибки ввода не повторяются и не прерывают работу приложения.
type Emitter struct {
	typer   Typer
	delay   time.Duration
	onDone  func(text string)
	onError func(err error)
}

// NewEmitter создаёт Emitter поверх Typer.
func NewEmitter(typer Typer, delay time.Duration) *Emitter {
	return &Emitter{typer: typer, delay: delay}
}

// OnDone устанавливает callback после успешного ввода.
func (e *Emitter) OnDone(fn func(text string)) {
	e.onDone = fn
}

// OnError устанавливает callback для ошибки ввода.
func (e *Emitter) OnError(fn func(err error)) {
	e.onError = fn
}

// Emit блокирует вызывающую горутину на время паузы, затем вводит текст.
func (e *Emitter) Emit(text string) {
	if e.delay > 0 {
		time.Sleep(e.delay)
	}

	if err := e.typer.Type(text); err != nil {
		log.Printf("Ошибка ввода текста: %v", err)
		if e.onError != nil {
			e.onError(err)
		}
		return
	}

	if e.onDone != nil {
		e.onDone(text)
	}
}

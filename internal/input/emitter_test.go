package input

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTyper struct {
	typed []string
	err   error
}

func (r *recordingTyper) Type(text string) error {
	r.typed = append(r.typed, text)
	return r.err
}

func TestEmitTypesExactTextOnce(t *testing.T) {
	typer := &recordingTyper{}
	e := NewEmitter(typer, 0)

	var done []string
	e.OnDone(func(text string) { done = append(done, text) })

	text := "Dear Sir or Madam,\n\tПривет 👋"
	e.Emit(text)

	require.Len(t, typer.typed, 1)
	assert.Equal(t, text, typer.typed[0])
	assert.Equal(t, []string{text}, done)
}

func TestEmitWaitsBeforeTyping(t *testing.T) {
	typer := &recordingTyper{}
	e := NewEmitter(typer, 30*time.Millisecond)

	start := time.Now()
	e.Emit("Hey!")

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, []string{"Hey!"}, typer.typed)
}

func TestEmitReportsErrorWithoutRetry(t *testing.T) {
	typer := &recordingTyper{err: errors.New("xdotool: exit status 1")}
	e := NewEmitter(typer, 0)

	var gotErr error
	doneCalled := false
	e.OnError(func(err error) { gotErr = err })
	e.OnDone(func(string) { doneCalled = true })

	e.Emit("Best regards")

	assert.Len(t, typer.typed, 1)
	assert.EqualError(t, gotErr, "xdotool: exit status 1")
	assert.False(t, doneCalled)
}

func TestEmitWithoutCallbacks(t *testing.T) {
	typer := &recordingTyper{err: errors.New("boom")}
	e := NewEmitter(typer, 0)
	assert.NotPanics(t, func() { e.Emit("x") })
}

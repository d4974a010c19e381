package picker

import (
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpick/internal/navigator"
	"quickpick/internal/snippets"
)

func testTree() *snippets.Tree {
	entries := make([]snippets.Entry, 0, 30)
	for _, k := range []string{"Greetings", "Sign-off"} {
		entries = append(entries, snippets.Entry{Key: k, Node: snippets.Folder(
			snippets.Entry{Key: "Formal", Node: snippets.Leaf("Dear Sir or Madam,")},
			snippets.Entry{Key: "Casual", Node: snippets.Leaf("Hey!")},
		)})
	}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		entries = append(entries, snippets.Entry{Key: k, Node: snippets.Leaf(k)})
	}
	return snippets.New(snippets.Folder(entries...))
}

func TestNewSessionStartsAtRoot(t *testing.T) {
	s := newSession(testTree())
	assert.Empty(t, s.nav.Path())
	assert.Equal(t, 0, s.nav.Cursor())
	assert.True(t, s.editor.SingleLine)
	assert.True(t, s.editor.Submit)
	assert.Equal(t, layout.Vertical, s.list.Axis)
}

func TestEnsureVisibleScrollsToCursor(t *testing.T) {
	s := newSession(testTree())
	s.list.Position = layout.Position{First: 0, Count: 4}

	s.nav.SetCursor(6)
	s.ensureVisible()
	assert.Equal(t, 3, s.list.Position.First)

	s.nav.SetCursor(1)
	s.ensureVisible()
	assert.Equal(t, 1, s.list.Position.First)
	assert.Zero(t, s.list.Position.Offset)
}

func TestChooseFolderClearsSearch(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	s := newSession(w.tree)

	s.editor.SetText("gr")
	s.nav.SetFilter("gr")
	require.Equal(t, []string{"Greetings"}, s.nav.Visible())
	s.list.Position.First = 2

	w.choose(s, s.nav.SelectCurrent())
	assert.Equal(t, []string{"Greetings"}, s.nav.Path())
	assert.Empty(t, s.editor.Text())
	assert.Zero(t, s.list.Position.First)
	assert.False(t, s.closing)
}

func TestChooseWithNoMatchesKeepsSearch(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	s := newSession(w.tree)

	s.editor.SetText("zz")
	s.nav.SetFilter("zz")
	w.choose(s, s.nav.SelectCurrent())

	assert.Equal(t, "zz", s.editor.Text())
	assert.Equal(t, navigator.Viewing, s.nav.Outcome())
}

func TestBackClearsSearch(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	s := newSession(w.tree)
	_, err := s.nav.Select("Sign-off")
	require.NoError(t, err)
	s.editor.SetText("x")

	w.back(s)
	assert.Empty(t, s.nav.Path())
	assert.Empty(t, s.editor.Text())
}

func TestSetTreeAppliesToNextSession(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	other := snippets.New(snippets.Folder(snippets.Entry{Key: "Only", Node: snippets.Leaf("x")}))

	w.SetTree(other)
	s := newSession(w.tree)
	assert.Equal(t, []string{"Only"}, s.nav.Visible())
	assert.False(t, w.IsVisible())
}

// callbacks records what a Window reports through its callbacks.
type callbacks struct {
	picked    chan string
	copied    chan string
	cancelled chan struct{}
}

func watch(w *Window) *callbacks {
	c := &callbacks{
		picked:    make(chan string, 4),
		copied:    make(chan string, 4),
		cancelled: make(chan struct{}, 4),
	}
	w.OnPick(func(text string) { c.picked <- text })
	w.OnCopy(func(text string) { c.copied <- text })
	w.OnCancel(func() { c.cancelled <- struct{}{} })
	return c
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}
	var zero T
	return zero
}

func assertSilent[T any](t *testing.T, ch chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected callback with %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChooseLeafPicksOnce(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	c := watch(w)
	s := newSession(w.tree)
	_, err := s.nav.Select("Greetings")
	require.NoError(t, err)

	w.choose(s, s.nav.SelectCurrent())
	assert.True(t, s.closing)
	assert.Equal(t, "Dear Sir or Madam,", receive(t, c.picked))

	// Enter pressed again before the window is gone.
	w.choose(s, s.nav.SelectCurrent())
	w.cancel(s)
	assertSilent(t, c.picked)
	assertSilent(t, c.cancelled)
	assertSilent(t, c.copied)
}

func TestCancelNeverPicks(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	c := watch(w)
	s := newSession(w.tree)

	w.cancel(s)
	assert.True(t, s.closing)
	assert.Equal(t, navigator.Cancelled, s.nav.Outcome())
	receive(t, c.cancelled)

	w.choose(s, s.nav.SelectCurrent())
	w.copyHighlighted(s)
	assertSilent(t, c.picked)
	assertSilent(t, c.copied)
	assertSilent(t, c.cancelled)
}

func TestCopyHighlightedLeaf(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	c := watch(w)
	s := newSession(w.tree)

	// A folder cannot be copied.
	w.copyHighlighted(s)
	assert.False(t, s.closing)
	assertSilent(t, c.copied)

	s.nav.SetFilter("sign")
	_, err := s.nav.Select("Sign-off")
	require.NoError(t, err)
	s.nav.MoveCursor(1)

	w.copyHighlighted(s)
	assert.True(t, s.closing)
	assert.Equal(t, "Hey!", receive(t, c.copied))
	assertSilent(t, c.picked)
	assertSilent(t, c.cancelled)
}

func TestClickRowUsesDrawnKey(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	c := watch(w)
	s := newSession(w.tree)
	drawn := s.nav.Visible()
	require.Equal(t, "Greetings", drawn[0])

	// The search box changed after the list was drawn.
	s.editor.SetText("sign")
	s.nav.SetFilter("sign")
	w.clickRow(s, drawn[0])
	assert.Empty(t, s.nav.Path())
	assert.False(t, s.closing)

	w.clickRow(s, "Sign-off")
	assert.Equal(t, []string{"Sign-off"}, s.nav.Path())
	assert.Empty(t, s.editor.Text())

	w.clickRow(s, "Casual")
	assert.Equal(t, 1, s.nav.Cursor())
	assert.Equal(t, "Hey!", receive(t, c.picked))
	assertSilent(t, c.cancelled)
}

func TestFrameRecoversFromPanic(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	s := newSession(w.tree)
	s.nav = nil

	err := w.frame(layout.Context{Ops: new(op.Ops)}, s)
	assert.ErrorContains(t, err, "recovered from panic")
}

func TestFailedFrameCancelsSession(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	c := watch(w)
	s := newSession(w.tree)
	w.theme = nil

	w.runFrame(layout.Context{Ops: new(op.Ops)}, s)
	assert.True(t, s.closing)
	assert.Equal(t, navigator.Cancelled, s.nav.Outcome())
	receive(t, c.cancelled)
	assertSilent(t, c.picked)
}

func TestShowWaitsForPreviousWindow(t *testing.T) {
	w := New(testTree(), DefaultConfig())
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	release := make(chan struct{})
	w.running = true
	w.stopCh = stopCh
	w.doneCh = doneCh

	// Stands in for the event loop: the window closes only after release.
	go func() {
		<-stopCh
		<-release
		close(doneCh)
	}()

	go w.Hide()
	require.Eventually(t, func() bool { return isClosed(stopCh) }, time.Second, 5*time.Millisecond)

	assert.True(t, w.IsVisible())
	assert.False(t, w.Show())

	close(release)
	assert.Eventually(t, func() bool { return !w.IsVisible() }, time.Second, 5*time.Millisecond)
}

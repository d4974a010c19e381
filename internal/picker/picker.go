// Package picker provides the floating snippet picker window.
package picker

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"quickpick/internal/navigator"
	"quickpick/internal/snippets"
)

// Config holds window configuration.
type Config struct {
	Width         int         // Window width in dp
	Height        int         // Window height in dp
	BGColor       color.NRGBA // Background color
	PanelColor    color.NRGBA // Search box and hover background
	SelectedColor color.NRGBA // Highlighted row
	TextColor     color.NRGBA // Text color
	TextDimColor  color.NRGBA // Hints and breadcrumb
	AccentColor   color.NRGBA // Folder marker and back button
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:         300,
		Height:        400,
		BGColor:       color.NRGBA{R: 30, G: 30, B: 34, A: 242},
		PanelColor:    color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		SelectedColor: color.NRGBA{R: 60, G: 100, B: 160, A: 255},
		TextColor:     color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		TextDimColor:  color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		AccentColor:   color.NRGBA{R: 88, G: 166, B: 255, A: 255},
	}
}

// session is the per-open state. Every Show starts a new one at the root.
type session struct {
	nav     *navigator.Navigator
	editor  widget.Editor
	backBtn widget.Clickable
	rows    []widget.Clickable
	list    widget.List
	focused bool
	closing bool
}

func newSession(tree *snippets.Tree) *session {
	s := &session{
		nav:    navigator.New(tree),
		editor: widget.Editor{SingleLine: true, Submit: true},
	}
	s.list.Axis = layout.Vertical
	return s
}

// Window manages the picker window.
type Window struct {
	mu     sync.Mutex
	tree   *snippets.Tree
	config Config
	theme  *material.Theme

	onPick   func(text string) // leaf selected
	onCopy   func(text string) // leaf copied with Ctrl+C
	onCancel func()            // closed without a selection

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a picker over tree.
func New(tree *snippets.Tree, cfg Config) *Window {
	th := material.NewTheme()
	th.Palette.Fg = cfg.TextColor
	th.Palette.Bg = cfg.BGColor
	th.Palette.ContrastBg = cfg.AccentColor
	return &Window{
		tree:   tree,
		config: cfg,
		theme:  th,
	}
}

// OnPick sets the callback for a selected leaf. It runs on its own goroutine.
func (w *Window) OnPick(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPick = fn
}

// OnCopy sets the callback for Ctrl+C on a highlighted leaf.
func (w *Window) OnCopy(fn func(text string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCopy = fn
}

// OnCancel sets the callback for when the picker closes without a selection.
func (w *Window) OnCancel(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCancel = fn
}

// SetTree replaces the snippet tree. An open picker keeps its tree until closed.
func (w *Window) SetTree(tree *snippets.Tree) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tree = tree
}

// Show opens a fresh picker at the root (non-blocking).
// It returns false if the picker is open or its window is still closing.
func (w *Window) Show() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || !isClosed(w.doneCh) {
		return false
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop(newSession(w.tree), w.stopCh, w.doneCh)
	return true
}

// Hide closes the picker window.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	// Wait for window to close
	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if the picker is open or its window has not closed yet.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running || !isClosed(w.doneCh)
}

// isClosed reports whether ch is nil or closed.
func isClosed(ch chan struct{}) bool {
	if ch == nil {
		return true
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

const windowTitle = "Quickpick"

func (w *Window) runEventLoop(s *session, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	win := new(app.Window)
	win.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.Decorated(false), // Borderless
	)

	// Position and raise the window after it appears
	go positionWindow(windowTitle, w.config.Width, w.config.Height)

	go func() {
		select {
		case <-stopCh:
			win.Perform(system.ActionClose)
		case <-doneCh:
		}
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				log.Printf("Picker: window error: %v", e.Err)
			}
			w.closedExternally(s, stopCh)
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.runFrame(gtx, s)
			e.Frame(gtx.Ops)
		}
	}
}

// frame handles input and draws one frame. A panic is turned into an error
// so a bad frame closes the picker instead of the whole application.
func (w *Window) frame(gtx layout.Context, s *session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic in frame: %v", r)
		}
	}()

	w.update(gtx, s)
	w.layout(gtx, s)
	return nil
}

// runFrame draws one frame and cancels the session if it failed.
func (w *Window) runFrame(gtx layout.Context, s *session) {
	if err := w.frame(gtx, s); err != nil {
		log.Printf("Picker: %v", err)
		w.cancel(s)
	}
}

// closedExternally resets the running state when the window manager closes
// the window without going through Hide.
func (w *Window) closedExternally(s *session, stopCh chan struct{}) {
	w.mu.Lock()
	if w.stopCh != stopCh || !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.stopCh = nil
	cancelFn := w.onCancel
	w.mu.Unlock()

	if !s.closing && cancelFn != nil {
		s.closing = true
		go cancelFn()
	}
}

func (w *Window) update(gtx layout.Context, s *session) {
	if s.closing {
		return
	}

	// Rows are matched against the list as it was drawn, before the
	// editor refilters it below.
	visible := s.nav.Visible()

	if !s.focused {
		gtx.Execute(key.FocusCmd{Tag: &s.editor})
		s.focused = true
	}

	// Escape closes the picker whether or not the search box has focus
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Focus: &s.editor, Name: key.NameEscape},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.State == key.Press {
			w.cancel(s)
			return
		}
	}

	// Navigation keys are taken before the editor sees them
	filters := []event.Filter{
		key.Filter{Focus: &s.editor, Name: key.NameUpArrow},
		key.Filter{Focus: &s.editor, Name: key.NameDownArrow},
		key.Filter{Focus: &s.editor, Name: "C", Required: key.ModShortcut},
	}
	if s.editor.Len() == 0 && s.nav.CanGoBack() {
		filters = append(filters, key.Filter{Focus: &s.editor, Name: key.NameDeleteBackward})
	}
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch e.Name {
		case key.NameUpArrow:
			s.nav.MoveCursor(-1)
			s.ensureVisible()
		case key.NameDownArrow:
			s.nav.MoveCursor(1)
			s.ensureVisible()
		case key.NameDeleteBackward:
			w.back(s)
			return
		case "C":
			w.copyHighlighted(s)
			if s.closing {
				return
			}
		}
	}

	for {
		ev, ok := s.editor.Update(gtx)
		if !ok {
			break
		}
		switch ev.(type) {
		case widget.ChangeEvent:
			s.nav.SetFilter(s.editor.Text())
		case widget.SubmitEvent:
			w.choose(s, s.nav.SelectCurrent())
			if s.closing {
				return
			}
		}
	}

	if s.backBtn.Clicked(gtx) {
		w.back(s)
		return
	}

	for i := range visible {
		if i >= len(s.rows) {
			break
		}
		if s.rows[i].Clicked(gtx) {
			w.clickRow(s, visible[i])
			return
		}
	}
}

// clickRow highlights the clicked entry and selects it. A key that the
// current filter no longer shows is ignored.
func (w *Window) clickRow(s *session, key string) {
	for i, k := range s.nav.Visible() {
		if k == key {
			s.nav.SetCursor(i)
			w.choose(s, s.nav.SelectCurrent())
			return
		}
	}
}

// choose applies a navigator result: a picked leaf closes the window,
// an entered folder clears the search box.
func (w *Window) choose(s *session, res navigator.Result) {
	if s.closing {
		return
	}
	switch res.Outcome {
	case navigator.Picked:
		s.closing = true
		w.mu.Lock()
		pickFn := w.onPick
		w.mu.Unlock()
		if pickFn != nil {
			go pickFn(res.Text)
		}
		go w.Hide()
	case navigator.Viewing:
		if s.nav.Filter() == "" && s.editor.Len() > 0 {
			s.editor.SetText("")
		}
		s.list.Position = layout.Position{}
	}
}

func (w *Window) back(s *session) {
	if !s.nav.Back() {
		return
	}
	s.editor.SetText("")
	s.list.Position = layout.Position{}
}

func (w *Window) cancel(s *session) {
	if s.closing {
		return
	}
	s.closing = true
	s.nav.Cancel()

	w.mu.Lock()
	cancelFn := w.onCancel
	w.mu.Unlock()
	if cancelFn != nil {
		go cancelFn()
	}
	go w.Hide()
}

func (w *Window) copyHighlighted(s *session) {
	if s.closing {
		return
	}
	text, ok := s.nav.HighlightedLeaf()
	if !ok {
		return
	}
	s.closing = true
	s.nav.Cancel()

	w.mu.Lock()
	copyFn := w.onCopy
	w.mu.Unlock()
	if copyFn != nil {
		go copyFn(text)
	}
	go w.Hide()
}

// ensureVisible scrolls the list so the highlighted row is on screen.
func (s *session) ensureVisible() {
	i := s.nav.Cursor()
	if i < 0 {
		return
	}
	pos := &s.list.Position
	switch {
	case i < pos.First:
		pos.First = i
		pos.Offset = 0
	case pos.Count > 0 && i >= pos.First+pos.Count:
		pos.First = i - pos.Count + 1
		pos.Offset = 0
	}
}

// Package settings provides the Gio settings window.
package settings

import (
	"errors"
	"log"
	"strings"
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

	"quickpick/internal/config"
	"quickpick/internal/dialog"
	"quickpick/internal/i18n"
)

// Values is what the window edits.
type Values struct {
	Hotkey        config.HotkeyConfig
	Language      i18n.Language
	Notifications bool
	SnippetsPath  string
}

// Window represents the settings dialog window.
type Window struct {
	mu    sync.Mutex
	theme *material.Theme

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Edited values
	hotkeyModifiers map[config.Modifier]bool
	hotkeyKey       config.Key
	selectedUILang  i18n.Language
	snippetsPath    string

	// Hotkey recording
	recordingHotkey bool
	recordedMods    map[config.Modifier]bool
	recordedKey     config.Key
	hotkeyFilters   []event.Filter

	// Widgets
	hotkeyEditBtn widget.Clickable
	langButtons   map[i18n.Language]*widget.Clickable
	notifications widget.Bool
	snippetsBtn   widget.Clickable
	applyBtn      widget.Clickable
	cancelBtn     widget.Clickable
	contentList   widget.List

	// Callbacks
	onApply    func(Values)
	chooseFile func(current string) (string, error)
}

// New creates a new settings window.
func New() *Window {
	th := material.NewTheme()
	th.Palette.Fg = colorText
	th.Palette.ContrastBg = colorAccent

	w := &Window{
		theme:           th,
		hotkeyModifiers: make(map[config.Modifier]bool),
		langButtons:     make(map[i18n.Language]*widget.Clickable),
		chooseFile:      dialog.SelectSnippetsFile,
	}
	for _, lang := range i18n.AvailableLanguages() {
		w.langButtons[lang] = new(widget.Clickable)
	}
	w.contentList.Axis = layout.Vertical
	w.hotkeyFilters = hotkeyFilters()
	return w
}

// hotkeyFilters returns key filters for every key a hotkey can use.
func hotkeyFilters() []event.Filter {
	modifiers := key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper

	filters := []event.Filter{
		key.Filter{Name: key.NameEscape, Optional: modifiers},
	}
	for _, k := range config.AvailableKeys() {
		filters = append(filters, key.Filter{Name: gioKeyName(k), Optional: modifiers})
	}
	// Also capture modifier-only events
	filters = append(filters, key.Filter{Optional: modifiers})
	return filters
}

// gioKeyName maps a config key to the name Gio reports for it.
func gioKeyName(k config.Key) key.Name {
	switch k {
	case config.KeySpace:
		return key.NameSpace
	case config.KeyReturn:
		return key.NameReturn
	case config.KeyTab:
		return key.NameTab
	}
	return key.Name(strings.ToUpper(string(k)))
}

// configKey maps a Gio key name back to a config key.
func configKey(name key.Name) (config.Key, bool) {
	switch name {
	case key.NameReturn, key.NameEnter:
		return config.KeyReturn, true
	}
	k := config.Key(strings.ToLower(string(name)))
	if !config.IsAvailableKey(k) {
		return "", false
	}
	return k, true
}

// OnApply sets the callback for when the user applies changes.
func (w *Window) OnApply(fn func(Values)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onApply = fn
}

// Show displays the settings window with the given values (non-blocking).
func (w *Window) Show(current Values) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.load(current)

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop(w.stopCh, w.doneCh)
}

// load resets the edited state. Called with w.mu held.
func (w *Window) load(current Values) {
	w.hotkeyModifiers = make(map[config.Modifier]bool)
	for _, m := range current.Hotkey.Modifiers {
		w.hotkeyModifiers[m] = true
	}
	w.hotkeyKey = current.Hotkey.Key
	w.recordingHotkey = false
	w.selectedUILang = current.Language
	w.notifications.Value = current.Notifications
	w.snippetsPath = current.SnippetsPath
}

// Hide closes the settings window.
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

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	win := new(app.Window)
	win.Option(
		app.Title("Quickpick - "+i18n.T("settings_title")),
		app.Size(unit.Dp(420), unit.Dp(460)),
		app.MinSize(unit.Dp(380), unit.Dp(400)),
	)
	w.mu.Lock()
	w.window = win
	w.mu.Unlock()

	go func() {
		<-stopCh
		win.Perform(system.ActionClose)
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			if w.stopCh == stopCh {
				// Closed by the window manager
				w.running = false
				w.stopCh = nil
				close(stopCh)
			}
			w.window = nil
			w.mu.Unlock()
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	if w.hotkeyEditBtn.Clicked(gtx) {
		w.mu.Lock()
		w.recordingHotkey = !w.recordingHotkey
		w.recordedMods = make(map[config.Modifier]bool)
		w.recordedKey = ""
		w.mu.Unlock()
	}

	if w.isRecordingHotkey() {
		w.handleHotkeyRecording(gtx)
	}

	// Language buttons
	for lang, btn := range w.langButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			w.selectedUILang = lang
			w.mu.Unlock()
		}
	}

	if w.snippetsBtn.Clicked(gtx) {
		go w.pickSnippetsFile()
	}

	if w.cancelBtn.Clicked(gtx) {
		go w.Hide()
	}

	if w.applyBtn.Clicked(gtx) {
		w.applySettings()
	}
}

func (w *Window) handleHotkeyRecording(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(w.hotkeyFilters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok {
			continue
		}
		if e.State == key.Press && e.Name == key.NameEscape {
			// Cancel recording
			w.mu.Lock()
			w.recordingHotkey = false
			w.mu.Unlock()
			return
		}
		w.recordKeyEvent(e)
	}
}

// recordKeyEvent tracks modifiers and the key while recording. The hotkey is
// taken on release once at least one modifier and a key were pressed.
func (w *Window) recordKeyEvent(e key.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e.State == key.Press {
		// Store modifiers at the time of key press
		w.recordedMods = map[config.Modifier]bool{
			config.ModCtrl:  e.Modifiers.Contain(key.ModCtrl),
			config.ModShift: e.Modifiers.Contain(key.ModShift),
			config.ModAlt:   e.Modifiers.Contain(key.ModAlt),
			config.ModSuper: e.Modifiers.Contain(key.ModSuper),
		}
		if k, ok := configKey(e.Name); ok {
			w.recordedKey = k
		}
		return
	}

	hasModifiers := w.recordedMods[config.ModCtrl] || w.recordedMods[config.ModShift] ||
		w.recordedMods[config.ModAlt] || w.recordedMods[config.ModSuper]
	if hasModifiers && w.recordedKey != "" {
		w.hotkeyModifiers = make(map[config.Modifier]bool)
		for k, v := range w.recordedMods {
			w.hotkeyModifiers[k] = v
		}
		w.hotkeyKey = w.recordedKey
		w.recordingHotkey = false
	}
}

func (w *Window) pickSnippetsFile() {
	w.mu.Lock()
	current := w.snippetsPath
	choose := w.chooseFile
	w.mu.Unlock()

	path, err := choose(current)
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Printf("Settings: file dialog: %v", err)
		}
		return
	}

	w.mu.Lock()
	w.snippetsPath = path
	win := w.window
	w.mu.Unlock()
	if win != nil {
		win.Invalidate()
	}
}

// values builds the edited settings.
func (w *Window) values() Values {
	w.mu.Lock()
	defer w.mu.Unlock()

	var mods []config.Modifier
	for _, m := range config.AvailableModifiers() {
		if w.hotkeyModifiers[m] {
			mods = append(mods, m)
		}
	}
	return Values{
		Hotkey:        config.HotkeyConfig{Modifiers: mods, Key: w.hotkeyKey},
		Language:      w.selectedUILang,
		Notifications: w.notifications.Value,
		SnippetsPath:  w.snippetsPath,
	}
}

func (w *Window) applySettings() {
	v := w.values()

	w.mu.Lock()
	callback := w.onApply
	w.mu.Unlock()

	if callback != nil {
		go callback(v)
	}
	go w.Hide()
}

func (w *Window) getHotkeyState() (mods map[config.Modifier]bool, key config.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Return a copy
	modsCopy := make(map[config.Modifier]bool)
	for k, v := range w.hotkeyModifiers {
		modsCopy[k] = v
	}
	return modsCopy, w.hotkeyKey
}

func (w *Window) isRecordingHotkey() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recordingHotkey
}

func (w *Window) getRecordingState() (mods map[config.Modifier]bool, key config.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	modsCopy := make(map[config.Modifier]bool)
	for k, v := range w.recordedMods {
		modsCopy[k] = v
	}
	return modsCopy, w.recordedKey
}

func (w *Window) getSelectedUILang() i18n.Language {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedUILang
}

func (w *Window) getSnippetsPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snippetsPath
}

package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpick/internal/config"
	"quickpick/internal/i18n"
	"quickpick/internal/navigator"
	"quickpick/internal/snippets"
)

// fakeView records calls and runs a navigator the way the picker window does.
type fakeView struct {
	tree     *snippets.Tree
	nav      *navigator.Navigator
	visible  bool
	shows    int
	onPick   func(string)
	onCopy   func(string)
	onCancel func()
}

func (f *fakeView) Show() bool {
	if f.visible {
		return false
	}
	f.shows++
	f.visible = true
	f.nav = navigator.New(f.tree)
	return true
}

func (f *fakeView) Hide() { f.visible = false }
func (f *fakeView) IsVisible() bool { return f.visible }
func (f *fakeView) OnPick(fn func(string)) { f.onPick = fn }
func (f *fakeView) OnCopy(fn func(string)) { f.onCopy = fn }
func (f *fakeView) OnCancel(fn func()) { f.onCancel = fn }
func (f *fakeView) SetTree(tree *snippets.Tree) { f.tree = tree }

// confirm mirrors Enter in the window.
func (f *fakeView) confirm() {
	res := f.nav.SelectCurrent()
	if res.Outcome == navigator.Picked {
		f.visible = false
		f.onPick(res.Text)
	}
}

func (f *fakeView) cancel() {
	f.nav.Cancel()
	f.visible = false
	f.onCancel()
}

type recordingTyper struct {
	mu    sync.Mutex
	typed []string
	err   error
}

func (r *recordingTyper) Type(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.typed = append(r.typed, text)
	return r.err
}

func exampleTree() *snippets.Tree {
	return snippets.New(snippets.Folder(
		snippets.Entry{Key: "Greetings", Node: snippets.Folder(
			snippets.Entry{Key: "Formal", Node: snippets.Leaf("Dear Sir or Madam,")},
			snippets.Entry{Key: "Casual", Node: snippets.Leaf("Hey!")},
		)},
		snippets.Entry{Key: "Sign-off", Node: snippets.Leaf("Best regards")},
	))
}

func newTestApp(t *testing.T, opts Options) (*App, *fakeView, *recordingTyper) {
	t.Helper()
	cfg := config.Load(filepath.Join(t.TempDir(), "config.json"))
	cfg.SetTypeDelay(0)
	cfg.SetNotifications(false)

	tree := exampleTree()
	v := &fakeView{tree: tree}
	typer := &recordingTyper{}
	return newApp(cfg, tree, v, typer, opts), v, typer
}

func TestHotkeyOpensPickerAtRoot(t *testing.T) {
	a, v, _ := newTestApp(t, Options{})

	a.onHotkeyPress()
	require.True(t, v.IsVisible())
	assert.Empty(t, v.nav.Path())
	assert.Equal(t, []string{"Greetings", "Sign-off"}, v.nav.Visible())
}

func TestHotkeyIgnoredWhilePickerOpen(t *testing.T) {
	a, v, _ := newTestApp(t, Options{})

	a.onHotkeyPress()
	_, err := v.nav.Select("Greetings")
	require.NoError(t, err)

	a.onHotkeyPress()
	assert.Equal(t, 1, v.shows)
	assert.Equal(t, []string{"Greetings"}, v.nav.Path(), "open session untouched")
}

func TestLeafPickTypesExactlyOnce(t *testing.T) {
	a, v, typer := newTestApp(t, Options{})

	a.onHotkeyPress()
	v.confirm() // Greetings
	assert.Empty(t, typer.typed, "folder selection types nothing")

	v.nav.SetFilter("ca")
	v.confirm()

	assert.Equal(t, []string{"Hey!"}, typer.typed)
	assert.False(t, v.IsVisible())

	// A new press starts again from the root
	a.onHotkeyPress()
	assert.Empty(t, v.nav.Path())
}

func TestBackThenCancelNeverTypes(t *testing.T) {
	a, v, typer := newTestApp(t, Options{})

	a.onHotkeyPress()
	v.confirm()
	assert.True(t, v.nav.Back())
	v.cancel()

	assert.Empty(t, typer.typed)
	assert.Equal(t, navigator.Cancelled, v.nav.Outcome())
}

func TestTypingErrorIsNotRetried(t *testing.T) {
	a, v, typer := newTestApp(t, Options{})
	typer.err = errors.New("no display")

	a.onHotkeyPress()
	v.nav.MoveCursor(1)
	v.confirm()

	assert.Equal(t, []string{"Best regards"}, typer.typed)
}

func TestCopyUsesClipboard(t *testing.T) {
	a, v, typer := newTestApp(t, Options{})
	var copied []string
	a.copyText = func(text string) error {
		copied = append(copied, text)
		return nil
	}

	a.onHotkeyPress()
	v.onCopy("Best regards")
	assert.Equal(t, []string{"Best regards"}, copied)
	assert.Empty(t, typer.typed)

	a.copyText = func(string) error { return errors.New("no clipboard") }
	assert.NotPanics(t, func() { v.onCopy("Hey!") })
}

func TestHotkeyOverrideWinsOverConfig(t *testing.T) {
	hk, err := config.ParseHotkey("alt+f9")
	require.NoError(t, err)

	a, _, _ := newTestApp(t, Options{Hotkey: &hk})
	assert.Equal(t, "alt+f9", a.hotkeyConfig().String())

	b, _, _ := newTestApp(t, Options{})
	assert.Equal(t, "ctrl+space", b.hotkeyConfig().String())
}

func TestApplySettingsPersistsChanges(t *testing.T) {
	a, _, _ := newTestApp(t, Options{})
	t.Cleanup(func() { i18n.SetLanguage(i18n.RU) })

	var registered []string
	a.register = func(hk config.HotkeyConfig) error {
		registered = append(registered, hk.String())
		return nil
	}

	v := a.currentSettings()
	assert.Equal(t, "ctrl+space", v.Hotkey.String())
	assert.False(t, v.Notifications)

	v.Hotkey = config.HotkeyConfig{Modifiers: []config.Modifier{config.ModAlt}, Key: "f2"}
	v.Language = i18n.EN
	a.applySettings(v)

	assert.Equal(t, []string{"alt+f2"}, registered)
	assert.Equal(t, "alt+f2", a.config.Hotkey().String())
	assert.Equal(t, i18n.EN, i18n.GetLanguage())
	assert.Equal(t, "en", a.config.UILanguage())

	v.Notifications = true
	a.applySettings(v)
	assert.True(t, a.notifier.Enabled())
	assert.True(t, a.config.NotificationsEnabled())

	// Same values again: nothing to re-register
	a.applySettings(a.currentSettings())
	assert.Len(t, registered, 1)
}

func TestApplySettingsDropsHotkeyOverride(t *testing.T) {
	hk, err := config.ParseHotkey("alt+f9")
	require.NoError(t, err)
	a, _, _ := newTestApp(t, Options{Hotkey: &hk})
	a.register = func(config.HotkeyConfig) error { return nil }

	v := a.currentSettings()
	v.Hotkey, err = config.ParseHotkey("ctrl+shift+k")
	require.NoError(t, err)
	a.applySettings(v)

	assert.Equal(t, "ctrl+shift+k", a.hotkeyConfig().String())
}

func TestApplySettingsReloadsSnippets(t *testing.T) {
	a, v, typer := newTestApp(t, Options{})

	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Thanks: Thank you!\n"), 0644))

	s := a.currentSettings()
	s.SnippetsPath = path
	a.applySettings(s)

	assert.Equal(t, path, a.currentSettings().SnippetsPath)
	assert.Equal(t, path, a.config.SnippetsPath())

	a.onHotkeyPress()
	assert.Equal(t, []string{"Thanks"}, v.nav.Visible())
	v.confirm()
	assert.Equal(t, []string{"Thank you!"}, typer.typed)
}

func TestApplySettingsKeepsTreeOnLoadError(t *testing.T) {
	a, v, _ := newTestApp(t, Options{})

	bad := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"a": `), 0644))

	s := a.currentSettings()
	s.SnippetsPath = bad
	a.applySettings(s)

	assert.NotEqual(t, bad, a.currentSettings().SnippetsPath)
	a.onHotkeyPress()
	assert.Equal(t, []string{"Greetings", "Sign-off"}, v.nav.Visible())
}

func TestLoadSnippetsPrefersExplicitPath(t *testing.T) {
	cfg := config.Load(filepath.Join(t.TempDir(), "config.json"))

	_, err := LoadSnippets(cfg, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

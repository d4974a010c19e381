package settings

import (
	"testing"

	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpick/internal/config"
	"quickpick/internal/i18n"
)

func TestKeyNamesRoundTrip(t *testing.T) {
	for _, k := range config.AvailableKeys() {
		got, ok := configKey(gioKeyName(k))
		require.True(t, ok, k)
		assert.Equal(t, k, got)
	}

	got, ok := configKey(key.NameEnter)
	assert.True(t, ok)
	assert.Equal(t, config.KeyReturn, got)

	_, ok = configKey(key.NameEscape)
	assert.False(t, ok)
	_, ok = configKey(key.NameLeftArrow)
	assert.False(t, ok)
}

func TestRecordingTakesHotkeyOnRelease(t *testing.T) {
	w := New()
	w.load(Values{Hotkey: config.HotkeyConfig{Modifiers: []config.Modifier{config.ModCtrl}, Key: config.KeySpace}})
	w.recordingHotkey = true

	w.recordKeyEvent(key.Event{Name: "K", Modifiers: key.ModCtrl | key.ModAlt, State: key.Press})
	assert.True(t, w.isRecordingHotkey(), "not taken until release")

	w.recordKeyEvent(key.Event{Name: "K", State: key.Release})
	assert.False(t, w.isRecordingHotkey())

	v := w.values()
	assert.Equal(t, "ctrl+alt+k", v.Hotkey.String())
}

func TestRecordingNeedsModifier(t *testing.T) {
	w := New()
	w.load(Values{Hotkey: config.HotkeyConfig{Modifiers: []config.Modifier{config.ModCtrl}, Key: config.KeySpace}})
	w.recordingHotkey = true

	w.recordKeyEvent(key.Event{Name: "K", State: key.Press})
	w.recordKeyEvent(key.Event{Name: "K", State: key.Release})

	assert.True(t, w.isRecordingHotkey())
	assert.Equal(t, "ctrl+space", w.values().Hotkey.String())
}

func TestValuesReflectLoadedState(t *testing.T) {
	w := New()
	in := Values{
		Hotkey:        config.HotkeyConfig{Modifiers: []config.Modifier{config.ModShift, config.ModCtrl}, Key: "f5"},
		Language:      i18n.EN,
		Notifications: true,
		SnippetsPath:  "/tmp/items.yaml",
	}
	w.load(in)

	out := w.values()
	// Modifiers come back in canonical order
	assert.Equal(t, []config.Modifier{config.ModCtrl, config.ModShift}, out.Hotkey.Modifiers)
	assert.Equal(t, config.Key("f5"), out.Hotkey.Key)
	assert.Equal(t, i18n.EN, out.Language)
	assert.True(t, out.Notifications)
	assert.Equal(t, "/tmp/items.yaml", out.SnippetsPath)
}

func TestPickSnippetsFile(t *testing.T) {
	w := New()
	w.load(Values{SnippetsPath: "items.json"})

	var asked string
	w.chooseFile = func(current string) (string, error) {
		asked = current
		return "/home/me/snippets.yml", nil
	}
	w.pickSnippetsFile()

	assert.Equal(t, "items.json", asked)
	assert.Equal(t, "/home/me/snippets.yml", w.getSnippetsPath())
}

func TestBuildHotkeyParts(t *testing.T) {
	parts := buildHotkeyParts(map[config.Modifier]bool{config.ModCtrl: true, config.ModSuper: true}, config.KeyReturn)
	assert.Equal(t, []string{"Ctrl", "Super", "Enter"}, parts)
	assert.Empty(t, buildHotkeyParts(nil, ""))
}

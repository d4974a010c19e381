package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "config.json"))

	assert.Equal(t, "ctrl+space", cfg.Hotkey().String())
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, "ru", cfg.UILanguage())
	assert.Equal(t, 100*time.Millisecond, cfg.TypeDelay())
	assert.Equal(t, WindowConfig{Width: 300, Height: 400}, cfg.Window())
	assert.Equal(t, DefaultSnippetsFile, cfg.SnippetsPath())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui_language": "en", "hotkey": {"modifiers": ["alt"], "key": "s"}}`), 0644))

	cfg := Load(path)
	assert.Equal(t, "en", cfg.UILanguage())
	assert.Equal(t, "alt+s", cfg.Hotkey().String())
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, 100*time.Millisecond, cfg.TypeDelay())
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	cfg := Load(path)
	assert.Equal(t, "ctrl+space", cfg.Hotkey().String())
}

func TestSettersPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Load(path)

	cfg.SetHotkey(HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModShift}, Key: KeyReturn})
	assert.False(t, cfg.ToggleNotifications())
	cfg.SetTypeDelay(250 * time.Millisecond)
	cfg.SetUILanguage("en")
	cfg.SetSnippetsPath("/tmp/snippets.yaml")

	reloaded := Load(path)
	assert.Equal(t, "ctrl+shift+return", reloaded.Hotkey().String())
	assert.False(t, reloaded.NotificationsEnabled())
	assert.Equal(t, 250*time.Millisecond, reloaded.TypeDelay())
	assert.Equal(t, "en", reloaded.UILanguage())
	assert.Equal(t, "/tmp/snippets.yaml", reloaded.SnippetsPath())
}

func TestSetTypeDelayClampsNegative(t *testing.T) {
	cfg := Load("")
	cfg.SetTypeDelay(-time.Second)
	assert.Zero(t, cfg.TypeDelay())
}

func TestHotkeyIsCopied(t *testing.T) {
	cfg := Load("")
	hk := cfg.Hotkey()
	hk.Modifiers[0] = ModAlt
	assert.Equal(t, "ctrl+space", cfg.Hotkey().String())
}

func TestSnippetsPathNextToConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte(`{}`), 0644))

	cfg := Load(path)
	assert.Equal(t, filepath.Join(dir, "items.json"), cfg.SnippetsPath())
}

func TestSnippetsPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("нет домашней директории")
	}
	cfg := Load("")
	cfg.SetSnippetsPath("~/snippets.yaml")
	assert.Equal(t, filepath.Join(home, "snippets.yaml"), cfg.SnippetsPath())
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ctrl+space", want: "ctrl+space"},
		{in: "Ctrl + Shift + Space", want: "ctrl+shift+space"},
		{in: "control+option+k", want: "ctrl+alt+k"},
		{in: "cmd+enter", want: "super+return"},
		{in: "ctrl+ctrl+f5", want: "ctrl+f5"},
		{in: "f12", want: "f12"},
		{in: "alt+7", want: "alt+7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hk, err := ParseHotkey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hk.String())
		})
	}
}

func TestParseHotkeyErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "hyper+a", "ctrl+f13", "ctrl+space+shift"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseHotkey(in)
			assert.ErrorIs(t, err, ErrInvalidHotkey)
		})
	}
}

func TestAvailableKeys(t *testing.T) {
	keys := AvailableKeys()
	assert.Len(t, keys, 3+26+10+12)
	assert.True(t, IsAvailableKey("q"))
	assert.True(t, IsAvailableKey("f10"))
	assert.False(t, IsAvailableKey("escape"))
}

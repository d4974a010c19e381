package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHotkey - строку не удалось разобрать как сочетание клавиш.
var ErrInvalidHotkey = errors.New("некорректная горячая клавиша")

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу: "space", "return", "tab", буква, цифра или f1-f12.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
)

// модификаторы и их синонимы для ParseHotkey
var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"meta":    ModSuper,
}

var keyAliases = map[string]Key{
	"enter": KeyReturn,
}

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши, например "ctrl+space".
func (h HotkeyConfig) String() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	for _, m := range h.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(h.Key))
	return strings.Join(parts, "+")
}

func (h HotkeyConfig) clone() HotkeyConfig {
	mods := make([]Modifier, len(h.Modifiers))
	copy(mods, h.Modifiers)
	return HotkeyConfig{Modifiers: mods, Key: h.Key}
}

// ParseHotkey разбирает строку вида "ctrl+shift+space".
// Последний элемент - клавиша, остальные - модификаторы.
func ParseHotkey(s string) (HotkeyConfig, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	keyName := parts[len(parts)-1]
	if alias, ok := keyAliases[keyName]; ok {
		keyName = string(alias)
	}
	key := Key(keyName)
	if !IsAvailableKey(key) {
		return HotkeyConfig{}, fmt.Errorf("%w: неизвестная клавиша %q в %q", ErrInvalidHotkey, keyName, s)
	}

	var mods []Modifier
	seen := make(map[Modifier]bool)
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierAliases[p]
		if !ok {
			return HotkeyConfig{}, fmt.Errorf("%w: неизвестный модификатор %q в %q", ErrInvalidHotkey, p, s)
		}
		if seen[mod] {
			continue
		}
		seen[mod] = true
		mods = append(mods, mod)
	}

	return HotkeyConfig{Modifiers: mods, Key: key}, nil
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	keys := []Key{KeySpace, KeyReturn, KeyTab}
	for c := 'a'; c <= 'z'; c++ {
		keys = append(keys, Key(string(c)))
	}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, Key(string(c)))
	}
	for i := 1; i <= 12; i++ {
		keys = append(keys, Key(fmt.Sprintf("f%d", i)))
	}
	return keys
}

// IsAvailableKey проверяет, что клавишу можно назначить горячей.
func IsAvailableKey(k Key) bool {
	for _, available := range AvailableKeys() {
		if k == available {
			return true
		}
	}
	return false
}

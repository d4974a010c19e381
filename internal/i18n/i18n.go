// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Quickpick",
		"app_tooltip": "Quickpick - быстрые сниппеты",

		// Tray menu
		"tray_ready":              "Готов к работе",
		"tray_open":               "Открыть выбор",
		"tray_open_hint":          "Показать окно выбора сниппета",
		"tray_picker_open":        "Выбор сниппета...",
		"tray_settings":           "Настройки...",
		"tray_settings_hint":      "Горячая клавиша, язык, файл сниппетов",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Notifications
		"notify_typed":    "Вставлено",
		"notify_copied":   "Скопировано в буфер обмена",
		"notify_error":    "Ошибка",
		"notify_ready":    "Quickpick готов. Нажмите %s",
		"notify_reloaded": "Сниппеты загружены: %s",

		// Picker window
		"picker_root":   "Корень",
		"picker_search": "Поиск...",
		"picker_empty":  "Ничего не найдено",
		"picker_hint":   "Enter - выбрать · Esc - закрыть · Backspace - назад",

		// Settings window
		"settings_title":          "Настройки",
		"settings_hotkey":         "ГОРЯЧАЯ КЛАВИША",
		"settings_hotkey_edit":    "Изменить",
		"settings_hotkey_cancel":  "Отмена",
		"settings_hotkey_prompt":  "Нажмите сочетание клавиш...",
		"settings_hotkey_not_set": "Не задана",
		"settings_ui_language":    "ЯЗЫК ИНТЕРФЕЙСА",
		"settings_notifications":  "Показывать уведомления",
		"settings_snippets":       "ФАЙЛ СНИППЕТОВ",
		"settings_snippets_pick":  "Выбрать...",
		"settings_apply":          "Применить",
		"settings_cancel":         "Отмена",

		// Dialogs
		"dialog_snippets_title":  "Файл сниппетов",
		"dialog_snippets_filter": "Сниппеты (JSON, YAML)",
		"dialog_error_title":     "Quickpick - ошибка",

		// Errors
		"error_input":           "Ошибка ввода",
		"error_clipboard":       "Ошибка копирования в буфер обмена",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_snippets_load":   "Не удалось загрузить сниппеты",
	},

	EN: {
		// App
		"app_name":    "Quickpick",
		"app_tooltip": "Quickpick - quick snippets",

		// Tray menu
		"tray_ready":              "Ready",
		"tray_open":               "Open picker",
		"tray_open_hint":          "Show the snippet picker",
		"tray_picker_open":        "Picking a snippet...",
		"tray_settings":           "Settings...",
		"tray_settings_hint":      "Hotkey, language, snippets file",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close application",

		// Notifications
		"notify_typed":    "Inserted",
		"notify_copied":   "Copied to clipboard",
		"notify_error":    "Error",
		"notify_ready":    "Quickpick is ready. Press %s",
		"notify_reloaded": "Snippets loaded: %s",

		// Picker window
		"picker_root":   "Root",
		"picker_search": "Search...",
		"picker_empty":  "Nothing found",
		"picker_hint":   "Enter - select · Esc - close · Backspace - back",

		// Settings window
		"settings_title":          "Settings",
		"settings_hotkey":         "HOTKEY",
		"settings_hotkey_edit":    "Change",
		"settings_hotkey_cancel":  "Cancel",
		"settings_hotkey_prompt":  "Press a key combination...",
		"settings_hotkey_not_set": "Not set",
		"settings_ui_language":    "INTERFACE LANGUAGE",
		"settings_notifications":  "Show notifications",
		"settings_snippets":       "SNIPPETS FILE",
		"settings_snippets_pick":  "Choose...",
		"settings_apply":          "Apply",
		"settings_cancel":         "Cancel",

		// Dialogs
		"dialog_snippets_title":  "Snippets file",
		"dialog_snippets_filter": "Snippets (JSON, YAML)",
		"dialog_error_title":     "Quickpick - error",

		// Errors
		"error_input":           "Input error",
		"error_clipboard":       "Clipboard copy error",
		"error_hotkey_register": "Could not register hotkey",
		"error_snippets_load":   "Could not load snippets",
	},
}

// T returns the translation for the given key, or the key itself if missing.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if s, ok := translations[current][key]; ok {
		return s
	}
	if s, ok := translations[RU][key]; ok {
		return s
	}
	return key
}

// Tf formats the translation with fmt.Sprintf.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) bool {
	if _, ok := translations[lang]; !ok {
		return false
	}
	mu.Lock()
	defer mu.Unlock()
	current = lang
	return true
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

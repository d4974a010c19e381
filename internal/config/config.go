// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultSnippetsFile - имя файла сниппетов по умолчанию.
const DefaultSnippetsFile = "items.json"

// WindowConfig хранит размер окна выбора.
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// configData структура для сериализации.
type configData struct {
	UILanguage    string       `json:"ui_language,omitempty"`
	Notifications bool         `json:"notifications"`
	Hotkey        HotkeyConfig `json:"hotkey"`
	Snippets      string       `json:"snippets,omitempty"`
	TypeDelayMs   int          `json:"type_delay_ms"`
	Window        WindowConfig `json:"window"`
}

func defaults() configData {
	return configData{
		UILanguage:    "ru",
		Notifications: true,
		Hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl},
			Key:       KeySpace,
		},
		Snippets:    DefaultSnippetsFile,
		TypeDelayMs: 100,
		Window:      WindowConfig{Width: 300, Height: 400},
	}
}

// Config хранит настройки приложения.
type Config struct {
	mu   sync.RWMutex
	data configData
	path string
}

// New загружает конфигурацию из config.json рядом с бинарником.
func New() *Config {
	path := ""
	// Резолвим симлинки, чтобы найти настоящую директорию бинарника
	if execPath, err := os.Executable(); err == nil {
		if execPath, err = filepath.EvalSymlinks(execPath); err == nil {
			path = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}
	return Load(path)
}

// Load загружает конфигурацию из указанного файла.
// Отсутствующий или повреждённый файл даёт настройки по умолчанию.
func Load(path string) *Config {
	c := &Config{data: defaults(), path: path}
	c.load()
	return c
}

// load читает файл поверх значений по умолчанию.
func (c *Config) load() {
	if c.path == "" {
		return
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	cfg := defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Повреждён файл настроек %s: %v", c.path, err)
		return
	}

	if cfg.Hotkey.Key == "" {
		cfg.Hotkey = defaults().Hotkey
	}
	if cfg.Snippets == "" {
		cfg.Snippets = DefaultSnippetsFile
	}
	if cfg.TypeDelayMs < 0 {
		cfg.TypeDelayMs = 0
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		cfg.Window = defaults().Window
	}
	c.data = cfg
}

// save сохраняет конфигурацию в файл. Вызывается под c.mu.
func (c *Config) save() {
	if c.path == "" {
		return
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		log.Printf("Не удалось сохранить настройки: %v", err)
	}
}

// Path возвращает путь к файлу настроек.
func (c *Config) Path() string {
	return c.path
}

// Hotkey возвращает текущую горячую клавишу.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Hotkey.clone()
}

// SetHotkey устанавливает горячую клавишу.
func (c *Config) SetHotkey(hk HotkeyConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Hotkey = hk.clone()
	c.save()
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = enabled
	c.save()
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = !c.data.Notifications
	c.save()
	return c.data.Notifications
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.UILanguage = lang
	c.save()
}

// TypeDelay возвращает паузу перед вводом сниппета.
func (c *Config) TypeDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.TypeDelayMs) * time.Millisecond
}

// SetTypeDelay устанавливает паузу перед вводом сниппета.
func (c *Config) SetTypeDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.TypeDelayMs = int(d / time.Millisecond)
	c.save()
}

// Window возвращает размер окна выбора.
func (c *Config) Window() WindowConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Window
}

// SnippetsPath возвращает путь к файлу сниппетов.
// Относительный путь ищется рядом с config.json, затем в текущей директории.
func (c *Config) SnippetsPath() string {
	c.mu.RLock()
	p := c.data.Snippets
	c.mu.RUnlock()

	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}

	if c.path != "" {
		candidate := filepath.Join(filepath.Dir(c.path), p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return p
}

// SetSnippetsPath устанавливает путь к файлу сниппетов.
func (c *Config) SetSnippetsPath(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Snippets = p
	c.save()
}

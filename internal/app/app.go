// Package app содержит основную логику приложения.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/atotto/clipboard"

	"quickpick/internal/config"
	"quickpick/internal/hotkey"
	"quickpick/internal/i18n"
	"quickpick/internal/input"
	"quickpick/internal/notify"
	"quickpick/internal/picker"
	"quickpick/internal/settings"
	"quickpick/internal/snippets"
	"quickpick/internal/tray"
)

// view - окно выбора сниппета.
type view interface {
	Show() bool
	Hide()
	IsVisible() bool
	OnPick(fn func(text string))
	OnCopy(fn func(text string))
	OnCancel(fn func())
	SetTree(tree *snippets.Tree)
}

// Options - настройки на один запуск, не сохраняются в config.json.
type Options struct {
	Hotkey *config.HotkeyConfig // переопределяет горячую клавишу из конфига
}

// App представляет главное приложение.
type App struct {
	mu       sync.Mutex
	config   *config.Config
	tree     *snippets.Tree
	picker   view
	emitter  *input.Emitter
	notifier *notify.Notifier
	tray     *tray.Tray
	hotkey   *hotkey.Handler
	settings *settings.Window
	override *config.HotkeyConfig

	copyText func(text string) error
	register func(hk config.HotkeyConfig) error
}

// LoadSnippets загружает дерево сниппетов. path из командной строки
// имеет приоритет над путём из конфига.
func LoadSnippets(cfg *config.Config, path string) (*snippets.Tree, error) {
	if path == "" {
		path = cfg.SnippetsPath()
	}
	tree, err := snippets.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Сниппеты загружены: %s (%d)", tree.Source(), tree.Root().Len())
	return tree, nil
}

// New создаёт новое приложение.
func New(cfg *config.Config, tree *snippets.Tree, opts Options) (*App, error) {
	typer, err := input.New()
	if err != nil {
		return nil, fmt.Errorf("ввод текста недоступен: %w", err)
	}

	pcfg := picker.DefaultConfig()
	if w := cfg.Window(); w.Width > 0 && w.Height > 0 {
		pcfg.Width, pcfg.Height = w.Width, w.Height
	}

	return newApp(cfg, tree, picker.New(tree, pcfg), typer, opts), nil
}

func newApp(cfg *config.Config, tree *snippets.Tree, v view, typer input.Typer, opts Options) *App {
	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	app := &App{
		config:   cfg,
		tree:     tree,
		picker:   v,
		emitter:  input.NewEmitter(typer, cfg.TypeDelay()),
		notifier: notify.New(cfg.NotificationsEnabled()),
		override: opts.Hotkey,
		copyText: clipboard.WriteAll,
	}

	app.emitter.OnDone(func(text string) {
		app.notifier.Typed(text)
	})
	app.emitter.OnError(func(err error) {
		app.notifier.Error(i18n.T("error_input") + ": " + err.Error())
	})

	// Лист выбран: окно уже закрывается, вводим текст в фокусное приложение
	app.picker.OnPick(func(text string) {
		app.tray.SetState(tray.StateIdle)
		app.emitter.Emit(text)
	})

	// Ctrl+C в окне выбора
	app.picker.OnCopy(func(text string) {
		app.tray.SetState(tray.StateIdle)
		if err := app.copyText(text); err != nil {
			log.Printf("Ошибка копирования в буфер: %v", err)
			app.notifier.Error(i18n.T("error_clipboard"))
			return
		}
		app.notifier.Copied(text)
	})

	// ESC или закрытие окна
	app.picker.OnCancel(func() {
		app.tray.SetState(tray.StateIdle)
	})

	// Создаём обработчик горячих клавиш
	app.hotkey = hotkey.New(app.onHotkeyPress)
	app.register = app.hotkey.Register

	// Окно настроек
	app.settings = settings.New()
	app.settings.OnApply(app.applySettings)

	// Создаём системный трей с обработчиками
	app.tray = tray.New(tray.Callbacks{
		OnOpenPicker: app.openPicker,
		OnSettingsClick: func() {
			app.settings.Show(app.currentSettings())
		},
		OnNotificationsToggle: func() bool {
			enabled := app.config.ToggleNotifications()
			app.notifier.SetEnabled(enabled)
			return enabled
		},
		OnQuit: func() {
			app.Close()
		},
	}, cfg.NotificationsEnabled())

	return app
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(func() {
		// Регистрируем горячую клавишу после инициализации трея
		a.registerHotkey(a.hotkeyConfig())
	})
}

// hotkeyConfig возвращает активное сочетание: из командной строки или из конфига.
func (a *App) hotkeyConfig() config.HotkeyConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.override != nil {
		return *a.override
	}
	return a.config.Hotkey()
}

func (a *App) registerHotkey(hk config.HotkeyConfig) bool {
	if err := a.register(hk); err != nil {
		log.Printf("Ошибка регистрации горячей клавиши %s: %v", hk, err)
		a.notifier.Error(i18n.T("error_hotkey_register") + ": " + hk.String())
		return false
	}
	log.Printf("Горячая клавиша: %s", hk)
	a.tray.SetHotkey(hk.String())
	a.notifier.Info(i18n.Tf("notify_ready", hk.String()))
	return true
}

// onHotkeyPress открывает окно выбора. Пока окно открыто, нажатия игнорируются.
func (a *App) onHotkeyPress() {
	if a.picker.IsVisible() {
		return
	}
	a.openPicker()
}

func (a *App) openPicker() {
	if a.picker.Show() {
		a.tray.SetState(tray.StatePicking)
	}
}

// currentSettings собирает значения для окна настроек.
func (a *App) currentSettings() settings.Values {
	a.mu.Lock()
	source := a.tree.Source()
	a.mu.Unlock()

	return settings.Values{
		Hotkey:        a.hotkeyConfig(),
		Language:      i18n.GetLanguage(),
		Notifications: a.notifier.Enabled(),
		SnippetsPath:  source,
	}
}

// applySettings применяет значения из окна настроек и сохраняет их.
func (a *App) applySettings(v settings.Values) {
	if v.Language != i18n.GetLanguage() && i18n.SetLanguage(v.Language) {
		a.config.SetUILanguage(string(v.Language))
		a.tray.RefreshUI()
	}

	if v.Notifications != a.notifier.Enabled() {
		a.config.SetNotifications(v.Notifications)
		a.notifier.SetEnabled(v.Notifications)
		a.tray.SetNotifications(v.Notifications)
	}

	if v.Hotkey.Key != "" && len(v.Hotkey.Modifiers) > 0 && v.Hotkey.String() != a.hotkeyConfig().String() {
		a.mu.Lock()
		a.override = nil
		a.mu.Unlock()

		a.config.SetHotkey(v.Hotkey)
		a.registerHotkey(v.Hotkey)
	}

	a.mu.Lock()
	source := a.tree.Source()
	a.mu.Unlock()
	if v.SnippetsPath != "" && v.SnippetsPath != source {
		a.reloadSnippets(v.SnippetsPath)
	}
}

// reloadSnippets загружает другой файл сниппетов. При ошибке остаётся
// прежнее дерево.
func (a *App) reloadSnippets(path string) {
	tree, err := LoadSnippets(a.config, path)
	if err != nil {
		log.Printf("Ошибка загрузки сниппетов: %v", err)
		a.notifier.Error(i18n.T("error_snippets_load") + ": " + err.Error())
		return
	}

	a.mu.Lock()
	a.tree = tree
	a.mu.Unlock()

	a.picker.SetTree(tree)
	a.config.SetSnippetsPath(path)
	a.notifier.Info(i18n.Tf("notify_reloaded", tree.Source()))
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.hotkey.Unregister()
	a.settings.Hide()
	a.picker.Hide()
}

// Package tray предоставляет системный трей с меню.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"quickpick/embedded"
	"quickpick/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StatePicking
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnOpenPicker          func()
	OnSettingsClick       func()
	OnNotificationsToggle func() bool
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks Callbacks

	mu            sync.Mutex
	ready         bool
	notifyEnabled bool
	state         State
	hotkey        string
	status        *systray.MenuItem
	openBtn       *systray.MenuItem
	settingsBtn   *systray.MenuItem
	notifyOn      *systray.MenuItem
	quitBtn       *systray.MenuItem
}

// New создаёт новый Tray. notifyEnabled - начальное состояние галочки уведомлений.
func New(callbacks Callbacks, notifyEnabled bool) *Tray {
	return &Tray{
		callbacks:     callbacks,
		notifyEnabled: notifyEnabled,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	t.mu.Lock()
	defer t.mu.Unlock()

	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(t.statusTitle(StateIdle), "")
	t.status.Disable()

	systray.AddSeparator()

	t.openBtn = systray.AddMenuItem(i18n.T("tray_open"), i18n.T("tray_open_hint"))
	t.settingsBtn = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))

	// Уведомления
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.notifyEnabled)

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	t.ready = true

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.openBtn.ClickedCh:
			if t.callbacks.OnOpenPicker != nil {
				t.callbacks.OnOpenPicker()
			}

		// Настройки
		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettingsClick != nil {
				t.callbacks.OnSettingsClick()
			}

		// Уведомления
		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				if t.callbacks.OnNotificationsToggle() {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}

// statusTitle возвращает текст строки статуса. Вызывается под t.mu.
func (t *Tray) statusTitle(state State) string {
	if state == StatePicking {
		return i18n.T("tray_picker_open")
	}
	if t.hotkey != "" {
		return i18n.T("tray_ready") + " (" + t.hotkey + ")"
	}
	return i18n.T("tray_ready")
}

// SetState устанавливает состояние приложения и обновляет иконку.
// До готовности трея вызов ничего не делает.
func (t *Tray) SetState(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	if !t.ready {
		return
	}

	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
	case StatePicking:
		systray.SetIcon(embedded.IconActive)
	}
	title := t.statusTitle(state)
	systray.SetTooltip(i18n.T("app_name") + " - " + title)
	t.status.SetTitle(title)
}

// SetHotkey показывает текущее сочетание клавиш в строке статуса.
func (t *Tray) SetHotkey(hotkey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hotkey = hotkey
	if t.ready {
		t.status.SetTitle(t.statusTitle(t.state))
	}
}

// SetNotifications обновляет галочку уведомлений.
func (t *Tray) SetNotifications(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifyEnabled = enabled
	if !t.ready {
		return
	}
	if enabled {
		t.notifyOn.Check()
	} else {
		t.notifyOn.Uncheck()
	}
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}

	systray.SetTooltip(i18n.T("app_tooltip"))
	t.status.SetTitle(t.statusTitle(t.state))
	t.openBtn.SetTitle(i18n.T("tray_open"))
	t.openBtn.SetTooltip(i18n.T("tray_open_hint"))
	t.settingsBtn.SetTitle(i18n.T("tray_settings"))
	t.settingsBtn.SetTooltip(i18n.T("tray_settings_hint"))
	t.notifyOn.SetTitle(i18n.T("tray_notifications"))
	t.notifyOn.SetTooltip(i18n.T("tray_notifications_hint"))
	t.quitBtn.SetTitle(i18n.T("tray_quit"))
	t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

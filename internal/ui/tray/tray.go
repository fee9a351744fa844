package tray

import (
	"fmt"

	"focustimer/internal/core/timer"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnShowTimer   func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are swapped when the timer starts or stops.
type Icons struct {
	Running fyne.Resource
	Stopped fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         App
	icons       Icons
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
	hasIcon     bool
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		icons:       icons,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))

	manager.refreshStatus()
	manager.refreshIcon()
	return manager
}

// Update reflects a timer state in the menu and icon.
func (manager *Manager) Update(state timer.State) {
	manager.statusLabel = fmt.Sprintf("%s %s", state.Phase.Label(), state.Clock())
	if !state.Running {
		manager.statusLabel += " (stopped)"
	}
	if manager.running != state.Running || !manager.hasIcon {
		manager.running = state.Running
		manager.refreshIcon()
	}
	if state.Running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshStatus()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Stopped
	if manager.running {
		icon = manager.icons.Running
	}
	if icon == nil || manager.app == nil {
		return
	}
	manager.app.SetSystemTrayIcon(icon)
	manager.hasIcon = true
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Focus Timer",
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShowTimer)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}

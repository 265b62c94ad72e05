package tray

import (
	"fmt"

	"countdown/internal/core/timekeeper"

	"fyne.io/fyne/v2"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow               func()
	OnStartOrReset       func()
	OnToggleAlwaysOnTop  func()
	OnChangeTime         func()
	OnToggleAutoContinue func()
	OnQuit               func()
}

// Manager handles system tray state.
type Manager struct {
	app          MenuSetter
	statusItem   *fyne.MenuItem
	startItem    *fyne.MenuItem
	topItem      *fyne.MenuItem
	autoItem     *fyne.MenuItem
	callbacks    Callbacks
	status       timekeeper.Status
	lastRendered string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStartOrReset != nil {
			manager.callbacks.OnStartOrReset()
		}
	})
	manager.topItem = fyne.NewMenuItem("Always on Top", func() {
		if manager.callbacks.OnToggleAlwaysOnTop != nil {
			manager.callbacks.OnToggleAlwaysOnTop()
		}
	})
	manager.autoItem = fyne.NewMenuItem("Auto Continue", func() {
		if manager.callbacks.OnToggleAutoContinue != nil {
			manager.callbacks.OnToggleAutoContinue()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line and toggle marks.
func (manager *Manager) SetStatus(status timekeeper.Status) {
	manager.status = status
	manager.statusItem.Label = statusLabel(status)
	if status.State == timekeeper.StateRunning {
		manager.startItem.Label = "Reset"
	} else {
		manager.startItem.Label = "Start"
	}
	manager.topItem.Checked = status.AlwaysOnTop
	manager.autoItem.Checked = status.AutoContinue
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	rendered := fmt.Sprintf("%s|%s|%t|%t", manager.statusItem.Label, manager.startItem.Label, manager.topItem.Checked, manager.autoItem.Checked)
	if rendered == manager.lastRendered {
		return
	}
	manager.lastRendered = rendered
	manager.app.SetSystemTrayMenu(manager.buildMenu())
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("Countdown",
		manager.statusItem,
		fyne.NewMenuItem("Show Timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.startItem,
		fyne.NewMenuItemSeparator(),
		manager.topItem,
		fyne.NewMenuItem("Change Countdown Time", func() {
			if manager.callbacks.OnChangeTime != nil {
				manager.callbacks.OnChangeTime()
			}
		}),
		manager.autoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func statusLabel(status timekeeper.Status) string {
	return fmt.Sprintf("Status: %s %s", status.State, timekeeper.FormatRemaining(status.Remaining))
}

package tray

import (
	"testing"

	"countdown/internal/core/timekeeper"

	"fyne.io/fyne/v2"
)

type fakeTray struct {
	menu    *fyne.Menu
	updates int
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) {
	tray.menu = menu
	tray.updates++
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestNewInstallsMenu(t *testing.T) {
	tray := &fakeTray{}
	New(tray, Callbacks{})

	if tray.menu == nil {
		t.Fatal("expected tray menu installed")
	}
	if !findItem(t, tray.menu, "Status: starting...").Disabled {
		t.Errorf("expected status item disabled")
	}
}

func TestSetStatusUpdatesLabels(t *testing.T) {
	tray := &fakeTray{}
	manager := New(tray, Callbacks{})

	manager.SetStatus(timekeeper.Status{State: timekeeper.StateRunning, Remaining: 75, AutoContinue: true})

	findItem(t, tray.menu, "Status: running 01:15")
	findItem(t, tray.menu, "Reset")
	if !findItem(t, tray.menu, "Auto Continue").Checked {
		t.Errorf("expected auto continue checked")
	}
	if findItem(t, tray.menu, "Always on Top").Checked {
		t.Errorf("expected always on top unchecked")
	}

	manager.SetStatus(timekeeper.Status{State: timekeeper.StateAlert, Remaining: 0})
	findItem(t, tray.menu, "Status: alert 00:00")
	findItem(t, tray.menu, "Start")
}

func TestSetStatusSkipsUnchangedMenu(t *testing.T) {
	tray := &fakeTray{}
	manager := New(tray, Callbacks{})
	status := timekeeper.Status{State: timekeeper.StateIdle, Remaining: 10}

	manager.SetStatus(status)
	before := tray.updates
	manager.SetStatus(status)

	if tray.updates != before {
		t.Errorf("expected no menu rebuild for identical status")
	}
}

func TestCallbacks(t *testing.T) {
	tray := &fakeTray{}
	var fired []string
	New(tray, Callbacks{
		OnShow:               func() { fired = append(fired, "show") },
		OnStartOrReset:       func() { fired = append(fired, "start") },
		OnToggleAlwaysOnTop:  func() { fired = append(fired, "top") },
		OnChangeTime:         func() { fired = append(fired, "time") },
		OnToggleAutoContinue: func() { fired = append(fired, "auto") },
		OnQuit:               func() { fired = append(fired, "quit") },
	})

	for _, label := range []string{"Show Timer", "Start", "Always on Top", "Change Countdown Time", "Auto Continue", "Quit"} {
		findItem(t, tray.menu, label).Action()
	}

	want := []string{"show", "start", "top", "time", "auto", "quit"}
	if len(fired) != len(want) {
		t.Fatalf("expected %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("callback %d: expected %s, got %s", i, want[i], fired[i])
		}
	}
}

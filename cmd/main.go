package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"countdown/internal/core/model"
	"countdown/internal/core/timekeeper"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/ui/display"
	"countdown/internal/ui/preferences"
	"countdown/internal/ui/sound"
	"countdown/internal/ui/terminal"
	"countdown/internal/ui/tray"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	appName = "Countdown"
	appID   = "com.countdown.timer"

	startPrompt = "Enter countdown time in seconds:"
)

func main() {
	configFlag := flag.String("config", "", "path to the settings YAML file")
	tuiFlag := flag.Bool("tui", false, "run in the terminal instead of a window")
	flag.Parse()

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	configPath := resolveConfigPath(*configFlag)
	settings := loadSettings(configPath)

	if *tuiFlag {
		if err := runTerminal(settings, configPath); err != nil {
			log.Printf("terminal: %v", err)
		}
		return
	}
	runDesktop(settings, configPath)
}

func runDesktop(settings preferences.Settings, configPath string) {
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo("icon.png"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	window := display.New(fyneApp, display.Config{
		Width:  settings.WindowWidth,
		Height: settings.WindowHeight,
	})
	alertSound := newAlertSound(settings)

	var controller *timekeeper.Controller
	whenReady := func(action func(*timekeeper.Controller)) func() {
		return func() {
			if controller != nil {
				action(controller)
			}
		}
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:               window.Show,
			OnStartOrReset:       whenReady((*timekeeper.Controller).StartOrReset),
			OnToggleAlwaysOnTop:  whenReady((*timekeeper.Controller).ToggleAlwaysOnTop),
			OnChangeTime:         whenReady((*timekeeper.Controller).ChangeDuration),
			OnToggleAutoContinue: whenReady((*timekeeper.Controller).ToggleAutoContinue),
			OnQuit:               fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(fyneApp.Icon())
	} else {
		log.Printf("tray: system tray unsupported on this platform")
	}

	window.SetOnClosed(func() {
		if controller != nil {
			controller.Close()
		}
		fyneApp.Quit()
	})

	window.Show()
	window.PromptInteger(startPrompt, model.MinDuration, model.MaxDuration, func(value int, ok bool) {
		if !ok {
			value = settings.FallbackDuration
		}
		controller = timekeeper.New(settings.CountdownConfig(value), window)
		window.SetMenu(display.Commands{
			OnToggleAlwaysOnTop:  controller.ToggleAlwaysOnTop,
			OnChangeTime:         controller.ChangeDuration,
			OnToggleAutoContinue: controller.ToggleAutoContinue,
		})

		controller.Subscribe(func(event timekeeper.Event) {
			handleEvent(event, alertSound)
			if trayManager != nil {
				trayManager.SetStatus(event.Status)
			}
		})
		if trayManager != nil {
			trayManager.SetStatus(controller.Snapshot())
		}

		startWatcher(ctx, configPath, func(updated preferences.Settings) {
			fyne.Do(func() {
				controller.ApplyAppearance(updated.Appearance())
			})
		})
	})

	fyneApp.Run()
}

func runTerminal(settings preferences.Settings, configPath string) error {
	logFile, err := tea.LogToFile(filepath.Join(os.TempDir(), "countdown.log"), "countdown")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shell := terminal.New()
	alertSound := newAlertSound(settings)

	var controller *timekeeper.Controller
	shell.PromptInteger(startPrompt, model.MinDuration, model.MaxDuration, func(value int, ok bool) {
		if !ok {
			value = settings.FallbackDuration
		}
		controller = timekeeper.New(settings.CountdownConfig(value), shell)
		shell.SetCommands(terminal.Commands{
			OnToggleAlwaysOnTop:  controller.ToggleAlwaysOnTop,
			OnChangeTime:         controller.ChangeDuration,
			OnToggleAutoContinue: controller.ToggleAutoContinue,
		})
		controller.Subscribe(func(event timekeeper.Event) {
			handleEvent(event, alertSound)
		})
	})

	program := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseCellMotion())
	shell.Attach(program)

	startWatcher(ctx, configPath, func(updated preferences.Settings) {
		shell.Do(func() {
			if controller != nil {
				controller.ApplyAppearance(updated.Appearance())
			}
		})
	})

	_, runErr := program.Run()
	if controller != nil {
		controller.Close()
	}
	if runErr != nil {
		return fmt.Errorf("run program: %w", runErr)
	}
	return nil
}

func handleEvent(event timekeeper.Event, alertSound *sound.Player) {
	if event.Type != timekeeper.EventStateChange {
		return
	}
	log.Printf("timer: %s %s", event.Status.State, timekeeper.FormatRemaining(event.Status.Remaining))
	if event.Status.State != timekeeper.StateAlert || alertSound == nil {
		return
	}
	go func() {
		if err := alertSound.Play(); err != nil {
			log.Printf("sound: %v", err)
		}
	}()
}

func resolveConfigPath(override string) string {
	if override != "" {
		return override
	}

	configPath, err := storage.ResolveConfigPath(appName)
	if err != nil {
		log.Printf("settings: %v", err)
		return ""
	}
	if err := storage.EnsureSettingsFile(configPath); err != nil {
		log.Printf("settings: %v", err)
	}
	return configPath
}

func loadSettings(configPath string) preferences.Settings {
	if configPath == "" {
		return preferences.DefaultSettings()
	}
	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		log.Printf("settings: %v", err)
		return preferences.DefaultSettings()
	}
	return settings
}

func startWatcher(ctx context.Context, configPath string, onChange func(preferences.Settings)) {
	if configPath == "" {
		return
	}
	watcher, err := storage.NewWatcher(configPath, 0, onChange)
	if err != nil {
		log.Printf("settings: %v", err)
		return
	}
	go watcher.Start(ctx)
}

func newAlertSound(settings preferences.Settings) *sound.Player {
	if !settings.AlertSound {
		return nil
	}
	data, err := resources.Sound("alert.wav")
	if err != nil {
		log.Printf("sound: %v", err)
		return nil
	}
	return sound.New(data, 0)
}

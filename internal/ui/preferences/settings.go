package preferences

import (
	"image/color"

	"countdown/internal/core/model"
)

// Settings defines user preferences read from the settings file.
type Settings struct {
	FallbackDuration int

	Background color.Color
	Alert      color.Color
	Foreground color.Color
	FontFamily model.FontFamily
	FontSize   float32

	WindowWidth  float32
	WindowHeight float32

	AutoContinue bool
	AlwaysOnTop  bool
	AlertSound   bool
}

// DefaultSettings returns default settings for the countdown widget.
func DefaultSettings() Settings {
	return Settings{
		FallbackDuration: model.DefaultDuration,
		Background:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Alert:            color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		Foreground:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		FontFamily:       model.FontDefault,
		FontSize:         60,
		WindowWidth:      400,
		WindowHeight:     400,
		AutoContinue:     true,
		AlwaysOnTop:      false,
		AlertSound:       false,
	}
}

// Appearance converts settings to the controller's visual configuration.
func (settings Settings) Appearance() model.Appearance {
	return model.Appearance{
		Background: settings.Background,
		Alert:      settings.Alert,
		Foreground: settings.Foreground,
		FontFamily: settings.FontFamily,
		FontSize:   settings.FontSize,
	}
}

// CountdownConfig converts settings to a controller configuration for duration seconds.
func (settings Settings) CountdownConfig(duration int) model.CountdownConfig {
	return model.CountdownConfig{
		Duration:     duration,
		Appearance:   settings.Appearance(),
		AutoContinue: settings.AutoContinue,
		AlwaysOnTop:  settings.AlwaysOnTop,
	}
}

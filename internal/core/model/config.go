package model

import "image/color"

const (
	// MinDuration and MaxDuration bound the countdown length in seconds.
	MinDuration = 1
	MaxDuration = 3600

	// DefaultDuration is used when the startup prompt is cancelled.
	DefaultDuration = 10

	// MinFontSize is the smallest size the display text may shrink to.
	MinFontSize = 10
)

// FontFamily selects the face used for the countdown text.
type FontFamily string

const (
	FontDefault   FontFamily = "default"
	FontMonospace FontFamily = "monospace"
)

// Appearance holds the visual part of the countdown configuration.
type Appearance struct {
	Background color.Color
	Alert      color.Color
	Foreground color.Color
	FontFamily FontFamily
	FontSize   float32
}

// CountdownConfig contains runtime settings for the countdown controller.
type CountdownConfig struct {
	Duration     int
	Appearance   Appearance
	AutoContinue bool
	AlwaysOnTop  bool
}

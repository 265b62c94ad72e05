package storage

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"countdown/internal/core/model"
	"countdown/internal/core/timekeeper"
	"countdown/internal/platform"
	"countdown/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	CountdownSeconds int     `yaml:"countdown_seconds"`
	BackgroundColor  string  `yaml:"background_color"`
	AlertColor       string  `yaml:"alert_color"`
	TextColor        string  `yaml:"text_color"`
	FontFamily       string  `yaml:"font_family"`
	FontSize         float32 `yaml:"font_size"`
	WindowWidth      float32 `yaml:"window_width"`
	WindowHeight     float32 `yaml:"window_height"`
	AutoContinue     *bool   `yaml:"auto_continue"`
	AlwaysOnTop      *bool   `yaml:"always_on_top"`
	AlertSound       *bool   `yaml:"alert_sound"`
}

// ResolveConfigPath returns the default settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at configPath.
// If the file does not exist, default settings are returned.
func LoadSettings(configPath string) (preferences.Settings, error) {
	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return preferences.DefaultSettings(), nil
		}
		return preferences.DefaultSettings(), fmt.Errorf("read settings file: %w", err)
	}
	return ParseSettings(rawData)
}

// ParseSettings decodes YAML settings on top of the defaults.
// Fields that are missing or invalid keep their default value.
func ParseSettings(rawData []byte) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		CountdownSeconds: settings.FallbackDuration,
		BackgroundColor:  preferences.HexColor(settings.Background),
		AlertColor:       preferences.HexColor(settings.Alert),
		TextColor:        preferences.HexColor(settings.Foreground),
		FontFamily:       string(settings.FontFamily),
		FontSize:         settings.FontSize,
		WindowWidth:      settings.WindowWidth,
		WindowHeight:     settings.WindowHeight,
		AutoContinue:     &settings.AutoContinue,
		AlwaysOnTop:      &settings.AlwaysOnTop,
		AlertSound:       &settings.AlertSound,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// EnsureSettingsFile writes the defaults to configPath unless a file exists.
func EnsureSettingsFile(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat settings file: %w", err)
	}
	return SaveSettings(configPath, preferences.DefaultSettings())
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if timekeeper.ValidDuration(fileData.CountdownSeconds) {
		settings.FallbackDuration = fileData.CountdownSeconds
	}

	applyColor(&settings.Background, "background_color", fileData.BackgroundColor)
	applyColor(&settings.Alert, "alert_color", fileData.AlertColor)
	applyColor(&settings.Foreground, "text_color", fileData.TextColor)

	switch model.FontFamily(fileData.FontFamily) {
	case model.FontDefault, model.FontMonospace:
		settings.FontFamily = model.FontFamily(fileData.FontFamily)
	}
	if fileData.FontSize >= model.MinFontSize {
		settings.FontSize = fileData.FontSize
	}
	if fileData.WindowWidth > 0 {
		settings.WindowWidth = fileData.WindowWidth
	}
	if fileData.WindowHeight > 0 {
		settings.WindowHeight = fileData.WindowHeight
	}

	if fileData.AutoContinue != nil {
		settings.AutoContinue = *fileData.AutoContinue
	}
	if fileData.AlwaysOnTop != nil {
		settings.AlwaysOnTop = *fileData.AlwaysOnTop
	}
	if fileData.AlertSound != nil {
		settings.AlertSound = *fileData.AlertSound
	}
}

func applyColor(target *color.Color, field, value string) {
	if value == "" {
		return
	}
	parsed, err := preferences.ParseColor(value)
	if err != nil {
		log.Printf("settings: ignoring %s: %v", field, err)
		return
	}
	*target = parsed
}

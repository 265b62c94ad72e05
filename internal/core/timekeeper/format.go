package timekeeper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"countdown/internal/core/model"
)

var (
	// ErrNotInteger indicates prompt input that is not a whole number.
	ErrNotInteger = errors.New("not an integer")
	// ErrDurationOutOfRange indicates a value outside the accepted bounds.
	ErrDurationOutOfRange = errors.New("value out of range")
)

// FormatRemaining renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DisplayFontSize returns the text size for a display area of the given size.
func DisplayFontSize(width, height float32) float32 {
	size := min(int(height/3), int(width/6))
	if size < model.MinFontSize {
		size = model.MinFontSize
	}
	return float32(size)
}

// ValidDuration reports whether seconds is an accepted countdown length.
func ValidDuration(seconds int) bool {
	return seconds >= model.MinDuration && seconds <= model.MaxDuration
}

// ParseInteger parses prompt input and checks it against [minValue, maxValue].
func ParseInteger(text string, minValue, maxValue int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", text, ErrNotInteger)
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("%d not in [%d, %d]: %w", value, minValue, maxValue, ErrDurationOutOfRange)
	}
	return value, nil
}

// ParseDuration parses a countdown length in seconds.
func ParseDuration(text string) (int, error) {
	return ParseInteger(text, model.MinDuration, model.MaxDuration)
}

package preferences

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor indicates a colour string that is neither hex nor a known name.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts "#RGB", "#RRGGBB" or a CSS colour name such as "black".
func ParseColor(value string) (color.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil, fmt.Errorf("empty value: %w", ErrInvalidColor)
	}

	if strings.HasPrefix(value, "#") {
		if len(value) != 4 && len(value) != 7 {
			return nil, fmt.Errorf("%s: %w", value, ErrInvalidColor)
		}
		parsed, err := colorful.Hex(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", value, ErrInvalidColor)
		}
		r, g, b := parsed.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	named, ok := colornames.Map[value]
	if !ok {
		return nil, fmt.Errorf("%s: %w", value, ErrInvalidColor)
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: 255}, nil
}

// HexColor formats a colour as "#rrggbb", dropping alpha.
func HexColor(value color.Color) string {
	if value == nil {
		return "#000000"
	}
	converted, _ := colorful.MakeColor(value)
	return converted.Hex()
}

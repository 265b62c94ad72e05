//go:build !linux && !windows

package platform

import "fyne.io/fyne/v2"

func SetAlwaysOnTop(fyne.Window, bool) error {
	return ErrTopmostUnsupported
}

package platform

import (
	"fmt"
	"os/exec"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

// SetAlwaysOnTop uses wmctrl to toggle the EWMH "above" state.
func SetAlwaysOnTop(window fyne.Window, enabled bool) error {
	path, err := exec.LookPath("wmctrl")
	if err != nil {
		return fmt.Errorf("wmctrl not found: %w", ErrTopmostUnsupported)
	}

	action := "remove,above"
	if enabled {
		action = "add,above"
	}
	args := []string{"-r", window.Title(), "-b", action}
	if handle := x11Handle(window); handle != 0 {
		args = []string{"-i", "-r", fmt.Sprintf("0x%x", handle), "-b", action}
	}

	output, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("wmctrl: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func x11Handle(window fyne.Window) uintptr {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return 0
	}

	var handle uintptr
	nativeWindow.RunNative(func(context any) {
		switch value := context.(type) {
		case driver.X11WindowContext:
			handle = value.WindowHandle
		case *driver.X11WindowContext:
			handle = value.WindowHandle
		}
	})
	return handle
}

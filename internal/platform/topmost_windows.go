//go:build windows

package platform

import (
	"fmt"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

var (
	hwndTopmost   = ^uintptr(0)
	hwndNoTopmost = ^uintptr(1)

	user32DLL        = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos = user32DLL.NewProc("SetWindowPos")
)

func SetAlwaysOnTop(window fyne.Window, enabled bool) error {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return ErrTopmostUnsupported
	}

	insertAfter := hwndNoTopmost
	if enabled {
		insertAfter = hwndTopmost
	}

	var callErr error
	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			callErr = ErrTopmostUnsupported
			return
		}
		if hwnd == 0 {
			callErr = ErrTopmostUnsupported
			return
		}

		result, _, err := procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
		if result == 0 {
			callErr = fmt.Errorf("set window pos: %w", err)
		}
	})
	return callErr
}

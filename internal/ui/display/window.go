package display

import (
	"errors"
	"image/color"
	"log"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/core/timekeeper"
	"countdown/internal/platform"
	"countdown/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Title is the countdown window title.
const Title = "Countdown Timer"

// Config defines the initial window geometry.
type Config struct {
	Width  float32
	Height float32
}

// Commands defines handlers for the Settings menu.
type Commands struct {
	OnToggleAlwaysOnTop  func()
	OnChangeTime         func()
	OnToggleAutoContinue func()
}

// Window is the fyne implementation of the countdown shell.
type Window struct {
	app        fyne.App
	window     fyne.Window
	background *canvas.Rectangle
	text       *canvas.Text
	textBox    *fyne.Container
	surface    *tapSurface
	layout     *resizeLayout
	content    *fyne.Container

	onClick  func()
	onResize func(width, height float32)

	topmost       func(fyne.Window, bool) error
	topmostWarned bool
}

// New creates the countdown window. It is not shown until Show is called.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.Black)

	text := canvas.NewText(timekeeper.FormatRemaining(0), color.White)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = 60

	display := &Window{
		app:        app,
		window:     window,
		background: background,
		text:       text,
		textBox:    container.NewCenter(text),
		topmost:    platform.SetAlwaysOnTop,
	}

	display.surface = newTapSurface(container.NewStack(background, display.textBox), func() {
		if display.onClick != nil {
			display.onClick()
		}
	})
	display.layout = &resizeLayout{onResize: func(size fyne.Size) {
		if display.onResize != nil {
			display.onResize(size.Width, size.Height)
		}
	}}
	display.content = container.New(display.layout, display.surface)

	window.SetContent(display.content)
	window.Resize(fyne.NewSize(config.Width, config.Height))
	return display
}

// SetMenu installs the Settings menu.
func (display *Window) SetMenu(commands Commands) {
	settings := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Toggle Always on Top", func() {
			if commands.OnToggleAlwaysOnTop != nil {
				commands.OnToggleAlwaysOnTop()
			}
		}),
		fyne.NewMenuItem("Change Countdown Time", func() {
			if commands.OnChangeTime != nil {
				commands.OnChangeTime()
			}
		}),
		fyne.NewMenuItem("Toggle Auto Continue", func() {
			if commands.OnToggleAutoContinue != nil {
				commands.OnToggleAutoContinue()
			}
		}),
	)
	display.window.SetMainMenu(fyne.NewMainMenu(settings))
}

// Show displays the window and brings it to the front.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// SetOnClosed sets the handler run when the window is closed.
func (display *Window) SetOnClosed(handler func()) {
	display.window.SetOnClosed(handler)
}

// Window exposes the underlying fyne window.
func (display *Window) Window() fyne.Window {
	return display.window
}

// PromptInteger opens a modal integer prompt over the countdown window.
func (display *Window) PromptInteger(message string, minValue, maxValue int, onResult func(int, bool)) {
	prompt := preferences.NewPrompt(display.window, message, minValue, maxValue, onResult)
	prompt.Show(display.window)
}

// SetBackground fills the window with fill.
func (display *Window) SetBackground(fill color.Color) {
	display.background.FillColor = fill
	display.background.Refresh()
}

// SetText replaces the countdown text.
func (display *Window) SetText(value string) {
	display.text.Text = value
	display.refreshText()
}

// SetTextSize changes the countdown font size.
func (display *Window) SetTextSize(size float32) {
	display.text.TextSize = size
	display.refreshText()
}

// SetTextStyle changes the countdown text colour and face.
func (display *Window) SetTextStyle(foreground color.Color, family model.FontFamily) {
	display.text.Color = foreground
	display.text.TextStyle = fyne.TextStyle{Monospace: family == model.FontMonospace}
	display.refreshText()
}

// SetAlwaysOnTop asks the window manager to keep the window above others.
func (display *Window) SetAlwaysOnTop(enabled bool) {
	err := display.topmost(display.window, enabled)
	switch {
	case err == nil:
	case errors.Is(err, platform.ErrTopmostUnsupported):
		if !display.topmostWarned {
			display.topmostWarned = true
			log.Printf("display: %v", err)
		}
	default:
		log.Printf("display: set always on top: %v", err)
	}
}

// ScheduleAfter runs callback on the fyne main goroutine after delay.
func (display *Window) ScheduleAfter(delay time.Duration, callback func()) timekeeper.Cancel {
	cancelled := false
	timer := time.AfterFunc(delay, func() {
		fyne.Do(func() {
			if !cancelled {
				callback()
			}
		})
	})
	return func() {
		cancelled = true
		timer.Stop()
	}
}

// OnClick sets the handler for a primary click anywhere in the window.
func (display *Window) OnClick(handler func()) {
	display.onClick = handler
}

// OnResize sets the handler for display area size changes. A size already
// laid out is reported straight away.
func (display *Window) OnResize(handler func(width, height float32)) {
	display.onResize = handler
	if last := display.layout.last; handler != nil && last.Width > 0 && last.Height > 0 {
		handler(last.Width, last.Height)
	}
}

func (display *Window) refreshText() {
	display.text.Refresh()
	display.textBox.Refresh()
}

// tapSurface forwards primary taps on its content.
type tapSurface struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onTap   func()
}

func newTapSurface(content fyne.CanvasObject, onTap func()) *tapSurface {
	surface := &tapSurface{content: content, onTap: onTap}
	surface.ExtendBaseWidget(surface)
	return surface
}

func (surface *tapSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(surface.content)
}

func (surface *tapSurface) Tapped(*fyne.PointEvent) {
	if surface.onTap != nil {
		surface.onTap()
	}
}

// resizeLayout stretches its objects and reports every new size.
type resizeLayout struct {
	onResize func(fyne.Size)
	last     fyne.Size
}

func (layout *resizeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}
	if size == layout.last {
		return
	}
	layout.last = size
	if layout.onResize != nil {
		layout.onResize(size)
	}
}

func (layout *resizeLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}

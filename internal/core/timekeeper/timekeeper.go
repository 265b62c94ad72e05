package timekeeper

import (
	"image/color"
	"log"
	"time"

	"countdown/internal/core/model"
)

// TickInterval is the delay between two countdown updates.
const TickInterval = time.Second

// Cancel stops a scheduled callback. Calling it more than once is harmless.
type Cancel func()

// Shell is the set of toolkit capabilities the controller drives.
// Every method and every handler is invoked on the shell's event loop.
type Shell interface {
	PromptInteger(message string, minValue, maxValue int, onResult func(value int, ok bool))
	SetBackground(fill color.Color)
	SetText(text string)
	SetTextSize(size float32)
	SetTextStyle(foreground color.Color, family model.FontFamily)
	SetAlwaysOnTop(enabled bool)
	ScheduleAfter(delay time.Duration, callback func()) Cancel
	OnClick(handler func())
	OnResize(handler func(width, height float32))
}

// Controller is the countdown state machine behind the widget window.
type Controller struct {
	shell     Shell
	config    model.CountdownConfig
	remaining int
	active    bool
	alerted   bool
	pending   Cancel
	observers []func(Event)
}

// New creates a Controller and binds it to the shell's input events.
func New(config model.CountdownConfig, shell Shell) *Controller {
	if !ValidDuration(config.Duration) {
		config.Duration = model.DefaultDuration
	}

	controller := &Controller{
		shell:     shell,
		config:    config,
		remaining: config.Duration,
	}

	shell.SetTextStyle(config.Appearance.Foreground, config.Appearance.FontFamily)
	shell.SetTextSize(config.Appearance.FontSize)
	shell.SetBackground(config.Appearance.Background)
	shell.SetText(FormatRemaining(controller.remaining))
	if config.AlwaysOnTop {
		shell.SetAlwaysOnTop(true)
	}

	shell.OnClick(controller.StartOrReset)
	shell.OnResize(controller.OnResize)
	return controller
}

// Subscribe registers an observer. Observers run synchronously on the event loop.
func (controller *Controller) Subscribe(observer func(Event)) {
	controller.observers = append(controller.observers, observer)
}

// Snapshot returns the current controller status.
func (controller *Controller) Snapshot() Status {
	state := StateIdle
	switch {
	case controller.active:
		state = StateRunning
	case controller.alerted:
		state = StateAlert
	}
	return Status{
		State:        state,
		Remaining:    controller.remaining,
		Duration:     controller.config.Duration,
		AutoContinue: controller.config.AutoContinue,
		AlwaysOnTop:  controller.config.AlwaysOnTop,
	}
}

// Config returns the current countdown configuration.
func (controller *Controller) Config() model.CountdownConfig {
	return controller.config
}

// StartOrReset handles a click on the widget.
//
// The countdown always returns to its full duration. It then runs unless
// auto-continue is off and it was already running, in which case the click
// stops it.
func (controller *Controller) StartOrReset() {
	controller.alerted = false
	controller.shell.SetBackground(controller.config.Appearance.Background)
	controller.cancelPending()

	controller.remaining = controller.config.Duration
	controller.shell.SetText(FormatRemaining(controller.remaining))

	if controller.config.AutoContinue || !controller.active {
		controller.active = true
		controller.schedule()
	} else {
		controller.active = false
	}
	controller.emit(EventStateChange)
}

// SetDuration replaces the countdown length. Values outside [1, 3600] are ignored.
func (controller *Controller) SetDuration(seconds int) bool {
	if !ValidDuration(seconds) {
		return false
	}
	controller.config.Duration = seconds
	controller.remaining = seconds
	controller.shell.SetText(FormatRemaining(controller.remaining))
	controller.emit(EventSettings)
	return true
}

// ChangeDuration asks the user for a new countdown length.
func (controller *Controller) ChangeDuration() {
	controller.shell.PromptInteger("Enter new countdown time in seconds:", model.MinDuration, model.MaxDuration, func(value int, ok bool) {
		if ok {
			controller.SetDuration(value)
		}
	})
}

// ToggleAlwaysOnTop flips the window stacking hint.
func (controller *Controller) ToggleAlwaysOnTop() {
	controller.config.AlwaysOnTop = !controller.config.AlwaysOnTop
	controller.shell.SetAlwaysOnTop(controller.config.AlwaysOnTop)
	controller.emit(EventSettings)
}

// ToggleAutoContinue flips whether a click restarts a running countdown.
func (controller *Controller) ToggleAutoContinue() {
	controller.config.AutoContinue = !controller.config.AutoContinue
	if controller.config.AutoContinue {
		log.Printf("Auto Continue: Enabled")
	} else {
		log.Printf("Auto Continue: Disabled")
	}
	controller.emit(EventSettings)
}

// OnResize scales the countdown text to the display area.
func (controller *Controller) OnResize(width, height float32) {
	controller.shell.SetTextSize(DisplayFontSize(width, height))
}

// ApplyAppearance replaces colours and font without touching the countdown.
func (controller *Controller) ApplyAppearance(appearance model.Appearance) {
	controller.config.Appearance = appearance
	controller.shell.SetTextStyle(appearance.Foreground, appearance.FontFamily)
	if controller.alerted {
		controller.shell.SetBackground(appearance.Alert)
	} else {
		controller.shell.SetBackground(appearance.Background)
	}
	controller.emit(EventSettings)
}

// Close cancels any pending tick. The controller stays usable.
func (controller *Controller) Close() {
	controller.cancelPending()
	controller.active = false
}

func (controller *Controller) tick() {
	controller.pending = nil
	if controller.remaining > 0 && controller.active {
		controller.remaining--
		controller.shell.SetText(FormatRemaining(controller.remaining))
		controller.schedule()
		controller.emit(EventProgress)
	} else if controller.remaining == 0 {
		controller.alert()
	}
}

func (controller *Controller) alert() {
	controller.shell.SetBackground(controller.config.Appearance.Alert)
	controller.shell.SetText(FormatRemaining(0))
	controller.active = false
	controller.alerted = true
	controller.cancelPending()
	controller.emit(EventStateChange)
}

func (controller *Controller) schedule() {
	controller.cancelPending()
	controller.pending = controller.shell.ScheduleAfter(TickInterval, controller.tick)
}

func (controller *Controller) cancelPending() {
	if controller.pending != nil {
		controller.pending()
		controller.pending = nil
	}
}

func (controller *Controller) emit(eventType EventType) {
	event := Event{Type: eventType, Status: controller.Snapshot()}
	for _, observer := range controller.observers {
		observer(event)
	}
}

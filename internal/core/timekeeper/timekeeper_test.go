package timekeeper

import (
	"image/color"
	"testing"
	"time"

	"countdown/internal/core/model"
)

var (
	testBackground = color.NRGBA{A: 255}
	testAlert      = color.NRGBA{R: 255, A: 255}
)

type scheduled struct {
	delay     time.Duration
	callback  func()
	cancelled bool
}

type fakeShell struct {
	background  color.Color
	text        string
	textSize    float32
	alwaysOnTop bool
	topmostSets int
	onClick     func()
	onResize    func(width, height float32)
	timers      []*scheduled

	promptValue int
	promptOK    bool
	prompts     int
}

func (shell *fakeShell) PromptInteger(message string, minValue, maxValue int, onResult func(int, bool)) {
	shell.prompts++
	onResult(shell.promptValue, shell.promptOK)
}

func (shell *fakeShell) SetBackground(fill color.Color) { shell.background = fill }
func (shell *fakeShell) SetText(text string) { shell.text = text }
func (shell *fakeShell) SetTextSize(size float32) { shell.textSize = size }
func (shell *fakeShell) SetTextStyle(color.Color, model.FontFamily) {}
func (shell *fakeShell) OnClick(handler func()) { shell.onClick = handler }
func (shell *fakeShell) OnResize(handler func(width, height float32)) { shell.onResize = handler }

func (shell *fakeShell) SetAlwaysOnTop(enabled bool) {
	shell.alwaysOnTop = enabled
	shell.topmostSets++
}

func (shell *fakeShell) ScheduleAfter(delay time.Duration, callback func()) Cancel {
	entry := &scheduled{delay: delay, callback: callback}
	shell.timers = append(shell.timers, entry)
	return func() { entry.cancelled = true }
}

// live returns the scheduled callbacks that have not fired or been cancelled.
func (shell *fakeShell) live() []*scheduled {
	var result []*scheduled
	for _, entry := range shell.timers {
		if !entry.cancelled {
			result = append(result, entry)
		}
	}
	return result
}

// fire runs the single pending callback, failing if there is not exactly one.
func (shell *fakeShell) fire(t *testing.T) {
	t.Helper()
	pending := shell.live()
	if len(pending) != 1 {
		t.Fatalf("expected exactly one pending tick, got %d", len(pending))
	}
	pending[0].cancelled = true
	pending[0].callback()
}

func newTestController(duration int, autoContinue bool) (*Controller, *fakeShell) {
	shell := &fakeShell{}
	controller := New(model.CountdownConfig{
		Duration: duration,
		Appearance: model.Appearance{
			Background: testBackground,
			Alert:      testAlert,
			Foreground: color.White,
			FontFamily: model.FontDefault,
			FontSize:   60,
		},
		AutoContinue: autoContinue,
	}, shell)
	return controller, shell
}

func TestNewInitialDisplay(t *testing.T) {
	controller, shell := newTestController(65, true)

	if shell.text != "01:05" {
		t.Errorf("expected initial text 01:05, got %s", shell.text)
	}
	if shell.background != testBackground {
		t.Errorf("expected default background")
	}
	if shell.textSize != 60 {
		t.Errorf("expected initial font size 60, got %v", shell.textSize)
	}
	if len(shell.timers) != 0 {
		t.Errorf("expected no tick scheduled before the first click")
	}
	if shell.onClick == nil || shell.onResize == nil {
		t.Fatal("expected click and resize handlers to be bound")
	}
	if status := controller.Snapshot(); status.State != StateIdle || status.Remaining != 65 {
		t.Errorf("unexpected initial status %+v", status)
	}
}

func TestNewInvalidDurationFallsBack(t *testing.T) {
	controller, _ := newTestController(0, true)
	if controller.Config().Duration != model.DefaultDuration {
		t.Errorf("expected fallback duration %d, got %d", model.DefaultDuration, controller.Config().Duration)
	}
}

func TestStartOrResetSchedulesOneTick(t *testing.T) {
	controller, shell := newTestController(5, true)

	shell.onClick()

	status := controller.Snapshot()
	if status.Remaining != 5 {
		t.Errorf("expected remaining 5 after click, got %d", status.Remaining)
	}
	if status.State != StateRunning {
		t.Errorf("expected running, got %s", status.State)
	}
	pending := shell.live()
	if len(pending) != 1 {
		t.Fatalf("expected one pending tick, got %d", len(pending))
	}
	if pending[0].delay != TickInterval {
		t.Errorf("expected tick after %v, got %v", TickInterval, pending[0].delay)
	}
}

func TestTickCountsDownToAlert(t *testing.T) {
	controller, shell := newTestController(3, true)
	controller.StartOrReset()

	expected := []string{"00:02", "00:01", "00:00"}
	for i, want := range expected {
		shell.fire(t)
		if shell.text != want {
			t.Fatalf("tick %d: expected %s, got %s", i+1, want, shell.text)
		}
		if controller.Snapshot().Remaining != 2-i {
			t.Fatalf("tick %d: expected remaining %d, got %d", i+1, 2-i, controller.Snapshot().Remaining)
		}
	}
	if shell.background != testBackground {
		t.Errorf("expected default background while the last second is shown")
	}

	shell.fire(t)

	status := controller.Snapshot()
	if status.State != StateAlert {
		t.Errorf("expected alert state, got %s", status.State)
	}
	if status.Remaining != 0 {
		t.Errorf("remaining must never go below zero, got %d", status.Remaining)
	}
	if shell.text != "00:00" {
		t.Errorf("expected 00:00, got %s", shell.text)
	}
	if shell.background != testAlert {
		t.Errorf("expected alert background")
	}
	if len(shell.live()) != 0 {
		t.Errorf("expected no pending tick after alert")
	}
}

func TestAlertAfterSingleSecond(t *testing.T) {
	controller, shell := newTestController(1, true)
	controller.StartOrReset()
	shell.fire(t)
	shell.fire(t)

	if controller.Snapshot().State != StateAlert || shell.text != "00:00" {
		t.Errorf("expected alert with 00:00, got %s / %s", controller.Snapshot().State, shell.text)
	}
}

func TestClickAfterAlertRestarts(t *testing.T) {
	controller, shell := newTestController(1, false)
	controller.StartOrReset()
	shell.fire(t)
	shell.fire(t)

	controller.StartOrReset()

	if shell.background != testBackground {
		t.Errorf("expected background restored after click")
	}
	if controller.Snapshot().State != StateRunning {
		t.Errorf("expected click after alert to start the countdown, got %s", controller.Snapshot().State)
	}
	if shell.text != "00:01" {
		t.Errorf("expected 00:01, got %s", shell.text)
	}
}

func TestClickWithAutoContinueRestarts(t *testing.T) {
	controller, shell := newTestController(10, true)
	controller.StartOrReset()
	shell.fire(t)
	shell.fire(t)

	controller.StartOrReset()

	status := controller.Snapshot()
	if status.State != StateRunning || status.Remaining != 10 {
		t.Errorf("expected running at 10, got %+v", status)
	}
	if len(shell.live()) != 1 {
		t.Errorf("expected exactly one pending tick, got %d", len(shell.live()))
	}
}

// With auto-continue off, a click on a running countdown resets and stops it.
func TestClickWithoutAutoContinueStops(t *testing.T) {
	controller, shell := newTestController(10, false)
	controller.StartOrReset()
	shell.fire(t)

	controller.StartOrReset()

	status := controller.Snapshot()
	if status.State != StateIdle {
		t.Errorf("expected idle after second click, got %s", status.State)
	}
	if status.Remaining != 10 || shell.text != "00:10" {
		t.Errorf("expected display reset to 00:10, got %d / %s", status.Remaining, shell.text)
	}
	if len(shell.live()) != 0 {
		t.Errorf("expected no pending tick, got %d", len(shell.live()))
	}

	controller.StartOrReset()
	if controller.Snapshot().State != StateRunning {
		t.Errorf("expected third click to start again")
	}
}

func TestSetDurationBounds(t *testing.T) {
	controller, shell := newTestController(10, true)

	for _, value := range []int{0, -5, 3601} {
		if controller.SetDuration(value) {
			t.Errorf("expected %d to be rejected", value)
		}
		if controller.Config().Duration != 10 || shell.text != "00:10" {
			t.Errorf("rejected %d changed configuration", value)
		}
	}

	if !controller.SetDuration(3600) {
		t.Fatal("expected 3600 to be accepted")
	}
	if controller.Snapshot().Remaining != 3600 || shell.text != "60:00" {
		t.Errorf("expected 60:00, got %s", shell.text)
	}
	if len(shell.timers) != 0 {
		t.Errorf("SetDuration must not start ticking")
	}
}

func TestSetDurationWhileRunningKeepsTicking(t *testing.T) {
	controller, shell := newTestController(10, true)
	controller.StartOrReset()

	controller.SetDuration(20)

	if controller.Snapshot().State != StateRunning {
		t.Errorf("expected countdown to keep running")
	}
	shell.fire(t)
	if shell.text != "00:19" {
		t.Errorf("expected 00:19, got %s", shell.text)
	}
}

func TestChangeDurationPrompt(t *testing.T) {
	controller, shell := newTestController(10, true)

	shell.promptValue, shell.promptOK = 42, false
	controller.ChangeDuration()
	if controller.Config().Duration != 10 {
		t.Errorf("cancelled prompt changed duration")
	}

	shell.promptValue, shell.promptOK = 42, true
	controller.ChangeDuration()
	if controller.Config().Duration != 42 || shell.text != "00:42" {
		t.Errorf("expected duration 42, got %d", controller.Config().Duration)
	}
	if shell.prompts != 2 {
		t.Errorf("expected two prompts, got %d", shell.prompts)
	}
}

func TestToggles(t *testing.T) {
	controller, shell := newTestController(10, true)

	controller.ToggleAlwaysOnTop()
	if !shell.alwaysOnTop || !controller.Snapshot().AlwaysOnTop {
		t.Errorf("expected always on top enabled")
	}
	controller.ToggleAlwaysOnTop()
	if shell.alwaysOnTop || shell.topmostSets != 2 {
		t.Errorf("expected always on top disabled after second toggle")
	}

	controller.ToggleAutoContinue()
	if controller.Snapshot().AutoContinue {
		t.Errorf("expected auto continue disabled")
	}
	if len(shell.timers) != 0 {
		t.Errorf("toggling auto continue must not affect ticking")
	}
}

func TestOnResize(t *testing.T) {
	_, shell := newTestController(10, true)

	shell.onResize(300, 300)
	if shell.textSize != 50 {
		t.Errorf("expected 50, got %v", shell.textSize)
	}
	shell.onResize(30, 300)
	if shell.textSize != 10 {
		t.Errorf("expected minimum 10, got %v", shell.textSize)
	}
}

func TestCloseCancelsPendingTick(t *testing.T) {
	controller, shell := newTestController(10, true)
	controller.StartOrReset()

	controller.Close()

	if len(shell.live()) != 0 {
		t.Errorf("expected pending tick cancelled")
	}
	if controller.Snapshot().State != StateIdle {
		t.Errorf("expected idle after close")
	}
}

func TestApplyAppearanceKeepsAlertColour(t *testing.T) {
	controller, shell := newTestController(1, true)
	controller.StartOrReset()
	shell.fire(t)
	shell.fire(t)

	newAlert := color.NRGBA{R: 200, G: 100, A: 255}
	appearance := controller.Config().Appearance
	appearance.Alert = newAlert
	controller.ApplyAppearance(appearance)

	if shell.background != newAlert {
		t.Errorf("expected new alert colour while alerted")
	}
	if controller.Snapshot().State != StateAlert {
		t.Errorf("appearance reload must not change state")
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	controller, shell := newTestController(2, true)
	var events []Event
	controller.Subscribe(func(event Event) {
		events = append(events, event)
	})

	controller.StartOrReset()
	shell.fire(t)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventStateChange || events[0].Status.State != StateRunning {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Type != EventProgress || events[1].Status.Remaining != 1 {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

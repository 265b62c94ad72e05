package preferences

import (
	"fmt"

	"countdown/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Prompt is a modal dialog asking for a whole number within bounds.
type Prompt struct {
	dialog   dialog.Dialog
	entry    *widget.Entry
	minValue int
	maxValue int
	onResult func(int, bool)
	done     bool
}

// NewPrompt builds an integer prompt over parent. onResult is called once;
// it receives ok=false when the dialog is dismissed or the input is rejected.
func NewPrompt(parent fyne.Window, message string, minValue, maxValue int, onResult func(value int, ok bool)) *Prompt {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(fmt.Sprintf("%d-%d", minValue, maxValue))

	prompt := &Prompt{
		entry:    entry,
		minValue: minValue,
		maxValue: maxValue,
		onResult: onResult,
	}
	entry.Validator = prompt.validate

	items := []*widget.FormItem{
		widget.NewFormItem("Seconds", entry),
	}
	prompt.dialog = dialog.NewForm(message, "OK", "Cancel", items, prompt.handleClose, parent)
	prompt.dialog.Resize(fyne.NewSize(320, 160))
	entry.OnSubmitted = func(string) {
		if prompt.validate(entry.Text) == nil {
			prompt.finish(true)
			prompt.dialog.Hide()
		}
	}
	return prompt
}

// Show displays the prompt and focuses the entry.
func (prompt *Prompt) Show(parent fyne.Window) {
	prompt.dialog.Show()
	parent.Canvas().Focus(prompt.entry)
}

// Submit confirms the prompt with text as the entered value.
func (prompt *Prompt) Submit(text string) {
	prompt.entry.SetText(text)
	prompt.finish(true)
	prompt.dialog.Hide()
}

// Dismiss closes the prompt as cancelled.
func (prompt *Prompt) Dismiss() {
	prompt.dialog.Hide()
	prompt.finish(false)
}

func (prompt *Prompt) validate(text string) error {
	_, err := timekeeper.ParseInteger(text, prompt.minValue, prompt.maxValue)
	return err
}

func (prompt *Prompt) handleClose(confirmed bool) {
	prompt.finish(confirmed)
}

func (prompt *Prompt) finish(confirmed bool) {
	if prompt.done {
		return
	}
	prompt.done = true
	if prompt.onResult == nil {
		return
	}
	if !confirmed {
		prompt.onResult(0, false)
		return
	}
	value, err := timekeeper.ParseInteger(prompt.entry.Text, prompt.minValue, prompt.maxValue)
	if err != nil {
		prompt.onResult(0, false)
		return
	}
	prompt.onResult(value, true)
}

package terminal

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/core/timekeeper"
	"countdown/internal/ui/preferences"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// A terminal cell is reported to the controller as 8x16 nominal pixels.
	cellWidth  = 8
	cellHeight = 16

	// Text sizes at or above blockTextSize use the block font.
	blockTextSize = 40
)

// Commands defines handlers for the keyboard equivalents of the Settings menu.
type Commands struct {
	OnToggleAlwaysOnTop  func()
	OnChangeTime         func()
	OnToggleAutoContinue func()
}

type fireMsg struct{ id int }

type callMsg struct{ fn func() }

type promptState struct {
	message  string
	input    textinput.Model
	minValue int
	maxValue int
	onResult func(int, bool)
	errText  string
}

// Model is the bubbletea implementation of the countdown shell.
type Model struct {
	send func(tea.Msg)

	background color.Color
	foreground color.Color
	text       string
	textSize   float32
	monospace  bool

	onClick  func()
	onResize func(width, height float32)
	commands Commands

	timers    map[int]*time.Timer
	callbacks map[int]func()
	nextID    int

	prompt        *promptState
	width         int
	height        int
	topmostWarned bool
}

// New creates an empty terminal shell. Call Attach before running the program.
func New() *Model {
	return &Model{
		background: color.Black,
		foreground: color.White,
		text:       timekeeper.FormatRemaining(0),
		timers:     make(map[int]*time.Timer),
		callbacks:  make(map[int]func()),
	}
}

// Attach connects the shell to the program that runs it.
func (m *Model) Attach(program *tea.Program) {
	m.send = program.Send
}

// SetCommands installs the keyboard command handlers.
func (m *Model) SetCommands(commands Commands) {
	m.commands = commands
}

// Do runs fn inside the program's update loop.
func (m *Model) Do(fn func()) {
	if m.send != nil {
		m.send(callMsg{fn: fn})
	}
}

// PromptInteger shows an inline prompt; input is ignored until it is answered.
func (m *Model) PromptInteger(message string, minValue, maxValue int, onResult func(int, bool)) {
	input := textinput.New()
	input.Placeholder = fmt.Sprintf("%d-%d", minValue, maxValue)
	input.CharLimit = len(fmt.Sprint(maxValue)) + 1
	input.Width = 8
	input.Focus()

	m.prompt = &promptState{
		message:  message,
		input:    input,
		minValue: minValue,
		maxValue: maxValue,
		onResult: onResult,
	}
}

func (m *Model) SetBackground(fill color.Color) { m.background = fill }

func (m *Model) SetText(text string) { m.text = text }

func (m *Model) SetTextSize(size float32) { m.textSize = size }

func (m *Model) SetTextStyle(foreground color.Color, family model.FontFamily) {
	m.foreground = foreground
	m.monospace = family == model.FontMonospace
}

// SetAlwaysOnTop has no terminal equivalent.
func (m *Model) SetAlwaysOnTop(bool) {
	if !m.topmostWarned {
		m.topmostWarned = true
		log.Printf("terminal: always on top is not supported")
	}
}

// ScheduleAfter delivers callback through the update loop after delay.
func (m *Model) ScheduleAfter(delay time.Duration, callback func()) timekeeper.Cancel {
	id := m.nextID
	m.nextID++
	m.callbacks[id] = callback
	m.timers[id] = time.AfterFunc(delay, func() {
		if m.send != nil {
			m.send(fireMsg{id: id})
		}
	})
	return func() {
		if timer, ok := m.timers[id]; ok {
			timer.Stop()
		}
		delete(m.timers, id)
		delete(m.callbacks, id)
	}
}

func (m *Model) OnClick(handler func()) { m.onClick = handler }

// OnResize sets the resize handler and reports the current size if known.
func (m *Model) OnResize(handler func(width, height float32)) {
	m.onResize = handler
	if handler != nil && m.width > 0 && m.height > 0 {
		handler(float32(m.width*cellWidth), float32(m.height*cellHeight))
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.prompt != nil {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fireMsg:
		callback, ok := m.callbacks[msg.id]
		delete(m.callbacks, msg.id)
		delete(m.timers, msg.id)
		if ok {
			callback()
		}
		return m, nil
	case callMsg:
		msg.fn()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.onResize != nil {
			m.onResize(float32(msg.Width*cellWidth), float32(msg.Height*cellHeight))
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompt != nil {
			return m, m.updatePrompt(msg)
		}
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if m.prompt == nil && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click()
		}
		return m, nil
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case " ", "enter":
		m.click()
	case "t":
		if m.commands.OnToggleAlwaysOnTop != nil {
			m.commands.OnToggleAlwaysOnTop()
		}
	case "c":
		if m.commands.OnChangeTime != nil {
			m.commands.OnChangeTime()
			if m.prompt != nil {
				return textinput.Blink
			}
		}
	case "a":
		if m.commands.OnToggleAutoContinue != nil {
			m.commands.OnToggleAutoContinue()
		}
	}
	return nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	prompt := m.prompt
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		if prompt.onResult != nil {
			prompt.onResult(0, false)
		}
		return nil
	case tea.KeyEnter:
		value, err := timekeeper.ParseInteger(prompt.input.Value(), prompt.minValue, prompt.maxValue)
		if err != nil {
			prompt.errText = fmt.Sprintf("enter a whole number from %d to %d", prompt.minValue, prompt.maxValue)
			return nil
		}
		m.prompt = nil
		if prompt.onResult != nil {
			prompt.onResult(value, true)
		}
		return nil
	}

	var cmd tea.Cmd
	prompt.input, cmd = prompt.input.Update(msg)
	prompt.errText = ""
	return cmd
}

func (m *Model) click() {
	if m.onClick != nil {
		m.onClick()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	background := lipgloss.Color(preferences.HexColor(m.background))
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(preferences.HexColor(m.foreground))).
		Background(background).
		Bold(!m.monospace)

	var body string
	if m.prompt != nil {
		body = m.viewPrompt(style)
	} else {
		body = style.Render(m.displayText())
	}

	help := style.Faint(true).Render("click/space start·reset  t on top  c change time  a auto continue  q quit")
	content := lipgloss.JoinVertical(lipgloss.Center, body, "", help)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(background))
}

func (m *Model) displayText() string {
	if m.textSize >= blockTextSize {
		return renderBlock(m.text)
	}
	return m.text
}

func (m *Model) viewPrompt(style lipgloss.Style) string {
	lines := []string{
		style.Render(m.prompt.message),
		m.prompt.input.View(),
	}
	if m.prompt.errText != "" {
		lines = append(lines, style.Render(m.prompt.errText))
	}
	lines = append(lines, style.Faint(true).Render("enter confirm  esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Package tui is the interactive terminal calculator
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/exact/internal/calc/service"
)

// EvaluateTimeout bounds one evaluation, which may be remote
const EvaluateTimeout = 10 * time.Second

// maxRecall is the number of input lines kept for recall
const maxRecall = 100

// Evaluator runs calculations; both the local service and the gRPC client
// satisfy it
type Evaluator interface {
	Evaluate(ctx context.Context, req service.Request) (*service.Response, error)
}

// View represents different views in the TUI
type View int

const (
	ViewCalc View = iota
	ViewOperations
)

// Entry is one evaluated line in the history
type Entry struct {
	Input    string
	Response *service.Response
	Err      error
}

// Model is the main TUI model
type Model struct {
	view    View
	width   int
	height  int
	ready   bool
	loading bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	evaluator Evaluator
	target    string
	history   []Entry

	recall    []string
	recallPos int
}

// NewModel creates a new TUI model. target names where evaluations run
// and is shown in the status bar.
func NewModel(evaluator Evaluator, target string) Model {
	ti := textinput.New()
	ti.Placeholder = "sum 0.1 0.2"
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		view:      ViewCalc,
		input:     ti,
		spinner:   sp,
		evaluator: evaluator,
		target:    target,
		history:   []Entry{},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.view = (m.view + 1) % 2
			m.updateContent()
			return m, nil

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" || m.loading {
				return m, nil
			}
			m.input.Reset()
			m.remember(line)
			if line == "clear" {
				m.history = []Entry{}
				m.updateContent()
				return m, nil
			}
			m.view = ViewCalc
			m.loading = true
			return m, tea.Batch(m.evaluate(line), m.spinner.Tick)

		case "ctrl+l":
			m.history = []Entry{}
			m.updateContent()
			return m, nil

		case "up":
			m.recallLine(-1)
			return m, nil

		case "down":
			m.recallLine(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 8
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = msg.Width - 8
		m.updateContent()

	case resultMsg:
		m.loading = false
		m.history = append(m.history, Entry(msg))
		m.updateContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// History returns the evaluated lines, oldest first
func (m Model) History() []Entry {
	return m.history
}

func (m *Model) remember(line string) {
	if n := len(m.recall); n == 0 || m.recall[n-1] != line {
		m.recall = append(m.recall, line)
		if len(m.recall) > maxRecall {
			m.recall = m.recall[1:]
		}
	}
	m.recallPos = len(m.recall)
}

func (m *Model) recallLine(delta int) {
	pos := m.recallPos + delta
	if pos < 0 || pos > len(m.recall) {
		return
	}
	m.recallPos = pos
	if pos == len(m.recall) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.recall[pos])
	m.input.CursorEnd()
}

// resultMsg carries a finished evaluation
type resultMsg Entry

// evaluate parses and evaluates line off the update loop
func (m *Model) evaluate(line string) tea.Cmd {
	evaluator := m.evaluator
	return func() tea.Msg {
		req, err := service.ParseCommand(line)
		if err != nil {
			return resultMsg{Input: line, Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), EvaluateTimeout)
		defer cancel()

		resp, err := evaluator.Evaluate(ctx, req)
		return resultMsg{Input: line, Response: resp, Err: err}
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" evaluating...\n")
	}

	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	tabs := []string{"Calculator", "Operations"}
	renderedTabs := make([]string, len(tabs))

	for i, tab := range tabs {
		if View(i) == m.view {
			renderedTabs[i] = ActiveTabStyle.Render(tab)
		} else {
			renderedTabs[i] = TabStyle.Render(tab)
		}
	}

	title := TitleStyle.Render("exact")
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", tabLine)
}

func (m *Model) renderFooter() string {
	status := StatusBarStyle.Render(fmt.Sprintf("%s | %d results", m.target, len(m.history)))
	help := RenderHelp("enter: evaluate | tab: operations | up/down: recall | ctrl+l: clear | esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	var content string
	switch m.view {
	case ViewOperations:
		content = renderOperations()
	default:
		content = renderHistory(m.history)
	}

	m.viewport.SetContent(content)
	if m.view == ViewCalc {
		m.viewport.GotoBottom()
	} else {
		m.viewport.GotoTop()
	}
}

func renderHistory(history []Entry) string {
	if len(history) == 0 {
		return SubtitleStyle.Render("Type an operation and its operands, e.g. \"sum 0.1 0.2\" or \"power 2 10\".")
	}

	var s strings.Builder
	for _, e := range history {
		s.WriteString(InputLineStyle.Render("> " + e.Input))
		s.WriteString("\n  ")
		s.WriteString(renderOutcome(e))
		s.WriteString("\n")
	}
	return s.String()
}

func renderOutcome(e Entry) string {
	switch {
	case e.Err != nil:
		return RenderError(e.Err.Error())
	case e.Response == nil:
		return RenderError("no response")
	case e.Response.Outcome == service.OutcomeError:
		return RenderError(e.Response.Error)
	case e.Response.Outcome == service.OutcomeExcluded:
		return ExcludedStyle.Render(e.Response.String())
	default:
		return ResultStyle.Render("= " + e.Response.String())
	}
}

func renderOperations() string {
	var s strings.Builder
	for _, op := range service.ListOperations() {
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			OperationNameStyle.Render(op.Name),
			ArityStyle.Render(op.Arity),
			op.Description,
		))
		s.WriteString("\n")
	}
	return BoxStyle.Render(strings.TrimRight(s.String(), "\n"))
}

// Run starts the TUI on the terminal
func Run(evaluator Evaluator, target string) error {
	p := tea.NewProgram(NewModel(evaluator, target), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

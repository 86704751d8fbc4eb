package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252"))

	activeButtonStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("39"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

type keyMap struct {
	Toggle key.Binding
	Yes    key.Binding
	No     key.Binding
	Accept key.Binding
	Abort  key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
		key.WithHelp("←/→", "toggle"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "abort"),
	),
}

// confirmModel is the bubbletea model for one question.
type confirmModel struct {
	question Question
	value    bool
	done     bool
	aborted  bool
}

func newConfirmModel(q Question) confirmModel {
	return confirmModel{question: q, value: q.Default}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Toggle):
		m.value = !m.value
	case key.Matches(keyMsg, keys.Yes):
		m.value = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.No):
		m.value = false
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Accept):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	q := m.question

	if m.done {
		return fmt.Sprintf("%s %s\n", labelStyle.Render(q.Label), answerStyle.Render(q.Answer(m.value)))
	}
	if m.aborted {
		return fmt.Sprintf("%s %s\n", labelStyle.Render(q.Label), hintStyle.Render("aborted"))
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(q.Label))
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString(hintStyle.Render(q.Hint))
		b.WriteString("\n")
	}

	yes, no := buttonStyle, buttonStyle
	if m.value {
		yes = activeButtonStyle
	} else {
		no = activeButtonStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render(q.yesLabel()),
		"  ",
		no.Render(q.noLabel()),
	))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%s toggle • %s • %s • %s",
		keys.Toggle.Help().Key,
		keys.Yes.Help().Key+"/"+keys.No.Help().Key,
		keys.Accept.Help().Key+" "+keys.Accept.Help().Desc,
		keys.Abort.Help().Key+" "+keys.Abort.Help().Desc,
	)))
	b.WriteString("\n")
	return b.String()
}

// Terminal asks questions with an inline bubbletea program.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a terminal confirmer. Nil streams default to the
// process stdin and stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{in: in, out: out}
}

// Confirm runs the prompt until the user answers or aborts.
func (t *Terminal) Confirm(ctx context.Context, q Question) (bool, error) {
	p := tea.NewProgram(newConfirmModel(q),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return false, ErrAborted
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok || m.aborted || !m.done {
		return false, ErrAborted
	}
	return m.value, nil
}

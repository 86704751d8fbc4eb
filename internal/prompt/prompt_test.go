package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m confirmModel, msgs ...tea.Msg) (confirmModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(confirmModel)
	}
	return m, cmd
}

func TestConfirmModel_Keys(t *testing.T) {
	tests := []struct {
		name      string
		def       bool
		msgs      []tea.Msg
		wantValue bool
		wantDone  bool
		wantAbort bool
	}{
		{"enter keeps default yes", true, []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}}, true, true, false},
		{"enter keeps default no", false, []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}}, false, true, false},
		{"toggle then accept", true, []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter}}, false, true, false},
		{"double toggle", false, []tea.Msg{tea.KeyMsg{Type: tea.KeyTab}, runes("h"), tea.KeyMsg{Type: tea.KeyEnter}}, false, true, false},
		{"y answers yes", false, []tea.Msg{runes("y")}, true, true, false},
		{"n answers no", true, []tea.Msg{runes("n")}, false, true, false},
		{"esc aborts", true, []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}}, true, false, true},
		{"ctrl+c aborts", true, []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlC}}, true, false, true},
		{"other keys ignored", true, []tea.Msg{runes("x"), tea.WindowSizeMsg{Width: 80}}, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := send(newConfirmModel(Question{Label: "Use it?", Default: tt.def}), tt.msgs...)
			assert.Equal(t, tt.wantValue, m.value)
			assert.Equal(t, tt.wantDone, m.done)
			assert.Equal(t, tt.wantAbort, m.aborted)
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	q := Question{Label: "Use 'Release'?", Hint: "Creates a release on every push", Yes: "Oui", No: "Non"}
	m := newConfirmModel(q)

	view := m.View()
	assert.Contains(t, view, "Use 'Release'?")
	assert.Contains(t, view, "Creates a release on every push")
	assert.Contains(t, view, "Oui")
	assert.Contains(t, view, "Non")

	m, _ = send(m, runes("y"))
	view = m.View()
	assert.Contains(t, view, "Oui")
	assert.NotContains(t, view, "Creates a release")
}

func TestQuestion_Answer(t *testing.T) {
	assert.Equal(t, "Yes", Question{}.Answer(true))
	assert.Equal(t, "No", Question{}.Answer(false))
	assert.Equal(t, "Oui", Question{Yes: "Oui"}.Answer(true))
	assert.Equal(t, "Use it? [No]", Question{Label: "Use it?"}.String())
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()

	v, err := Defaults{}.Confirm(ctx, Question{Default: true})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Defaults{}.Confirm(ctx, Question{Default: false})
	require.NoError(t, err)
	assert.False(t, v)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Defaults{}.Confirm(cancelled, Question{Default: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScripted(t *testing.T) {
	s := NewScripted(map[string]bool{"a": false})
	s.Fail("c", ErrAborted)
	ctx := context.Background()

	v, err := s.Confirm(ctx, Question{Label: "a", Default: true})
	require.NoError(t, err)
	assert.False(t, v)

	v, err = s.Confirm(ctx, Question{Label: "b", Default: true})
	require.NoError(t, err)
	assert.True(t, v)

	_, err = s.Confirm(ctx, Question{Label: "c"})
	assert.True(t, errors.Is(err, ErrAborted))

	assert.Equal(t, []string{"a", "b", "c"}, s.Labels())
}

func TestTerminal_Confirm(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("n"), &out)

	v, err := term.Confirm(context.Background(), Question{Label: "Use it?", Default: true})
	require.NoError(t, err)
	assert.False(t, v)
}

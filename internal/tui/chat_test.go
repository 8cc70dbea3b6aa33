package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAsker struct {
	questions []string
	answer    string
	err       error
}

func (r *recordingAsker) Ask(ctx context.Context, question string) (string, error) {
	r.questions = append(r.questions, question)
	return r.answer, r.err
}

func TestIsQuitCommand(t *testing.T) {
	for _, in := range []string{"quit", "Quit", "QUIT", "exit", "Exit", "q", "Q", "  q  "} {
		assert.True(t, IsQuitCommand(in), "%q should quit", in)
	}
	for _, in := range []string{"", "quite", "exiting", "qq", "what is hdfs?"} {
		assert.False(t, IsQuitCommand(in), "%q should not quit", in)
	}
}

func pressEnter(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestQuitCommandTerminatesWithoutAsking(t *testing.T) {
	for _, in := range []string{"quit", "Quit", "q", "exit"} {
		asker := &recordingAsker{answer: "unused"}
		m := New(asker)

		_, cmd := pressEnter(t, m, in)
		require.NotNil(t, cmd, "%q must produce a quit command", in)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit, "%q must quit", in)
		assert.Empty(t, asker.questions, "%q must not reach the engine", in)
	}
}

func TestBlankInputIsNoOp(t *testing.T) {
	asker := &recordingAsker{answer: "unused"}
	m := New(asker)

	next, cmd := pressEnter(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, asker.questions)
	assert.Empty(t, next.Transcript())
}

func TestQuestionReachesEngineAndTranscript(t *testing.T) {
	asker := &recordingAsker{answer: "HDFS stores data in blocks."}
	m := New(asker)

	next, cmd := pressEnter(t, m, "What is HDFS?")
	assert.Nil(t, cmd)
	require.Equal(t, []string{"What is HDFS?"}, asker.questions)
	require.Len(t, next.Transcript(), 2)
	assert.Contains(t, next.Transcript()[0], "What is HDFS?")
	assert.Contains(t, next.Transcript()[1], "HDFS stores data in blocks.")
}

func TestEngineErrorKeepsSessionAlive(t *testing.T) {
	asker := &recordingAsker{err: errors.New("api unreachable")}
	m := New(asker)

	next, cmd := pressEnter(t, m, "What is HDFS?")
	assert.Nil(t, cmd, "an engine error must not terminate the session")
	assert.Contains(t, next.status, "api unreachable")
	assert.Empty(t, next.Transcript())

	// the session still answers once the engine recovers
	asker.err = nil
	asker.answer = "recovered"
	next, _ = pressEnter(t, next, "Again?")
	assert.Len(t, next.Transcript(), 2)
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&recordingAsker{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

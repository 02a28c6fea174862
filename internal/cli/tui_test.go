package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

func inspectFixture(t *testing.T) InspectModel {
	t.Helper()
	doc, err := document.Read(strings.NewReader(etlDoc), document.FormatJSON)
	require.NoError(t, err)
	res, err := pipeline.NewRunner(pipeline.DefaultOptions(), nil).Execute(context.Background(), "etl", doc)
	require.NoError(t, err)
	return NewInspectModel(res)
}

func press(m InspectModel, key string) InspectModel {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(InspectModel)
}

func TestInspectModelStartsAtTopLevel(t *testing.T) {
	m := inspectFixture(t)
	require.Len(t, m.Passes, 2)
	assert.Equal(t, 1, m.Pass)
	assert.Contains(t, m.View(), "top level")
}

func TestInspectModelNavigation(t *testing.T) {
	m := inspectFixture(t)

	m = press(m, "left")
	assert.Equal(t, 0, m.Pass)
	assert.Contains(t, m.View(), "container etl")

	m = press(m, "left")
	assert.Equal(t, 0, m.Pass, "left stops at the first pass")

	m = press(m, "down")
	assert.Equal(t, 1, m.Cursor)
	m = press(m, "down")
	assert.Equal(t, 1, m.Cursor, "cursor stops at the last row")
	m = press(m, "k")
	assert.Equal(t, 0, m.Cursor)

	m = press(m, "j")
	m = press(m, "right")
	assert.Equal(t, 1, m.Pass)
	assert.Equal(t, 0, m.Cursor, "switching pass resets the cursor")
}

func TestInspectModelScrolls(t *testing.T) {
	m := inspectFixture(t)
	m.Pass = 0
	m.Height = 1

	m = press(m, "down")
	assert.Equal(t, 1, m.Offset)
	m = press(m, "up")
	assert.Equal(t, 0, m.Offset)
}

func TestInspectModelQuit(t *testing.T) {
	m := inspectFixture(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInspectModelWindowSize(t *testing.T) {
	m := inspectFixture(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 5, next.(InspectModel).Height)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Equal(t, 32, next.(InspectModel).Height)
}

func TestInspectModelEmpty(t *testing.T) {
	m := NewInspectModel(&pipeline.Result{})
	assert.Contains(t, m.View(), "nothing to lay out")
	m = press(m, "down")
	assert.Equal(t, 0, m.Cursor)
}

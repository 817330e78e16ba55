package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/hayeah/lstree/tree"
)

func testNodes() []tree.Node {
	return []tree.Node{
		{Path: "/r/src", Rel: "src", Name: "src", Depth: 1, IsDir: true},
		{Path: "/r/src/lib", Rel: "src/lib", Name: "lib", Depth: 2, IsDir: true},
		{Path: "/r/src/lib/util.go", Rel: "src/lib/util.go", Name: "util.go", Depth: 3},
		{Path: "/r/src/main.go", Rel: "src/main.go", Name: "main.go", Depth: 2},
		{Path: "/r/README.md", Rel: "README.md", Name: "README.md", Depth: 1},
	}
}

func newTestModel(expandLevels int) Model {
	m := NewModel(tree.NewNav(testNodes(), expandLevels), Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func press(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelCursorMovement(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	// Collapsed root: src and README.md.
	assert.Equal(2, m.nav.Len())
	assert.Equal("src", m.nav.Selected().Name)

	m, _ = press(m, keyRunes("j"))
	assert.Equal("README.md", m.nav.Selected().Name)

	m, _ = press(m, keyRunes("k"))
	assert.Equal("src", m.nav.Selected().Name)
}

func TestModelEnterTogglesDirectory(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(cmd)
	assert.True(m.nav.Selected().Expanded)
	assert.Equal(4, m.nav.Len()) // src, lib, main.go, README.md

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(m.nav.Selected().Expanded)
	assert.Equal(2, m.nav.Len())
}

func TestModelEnterOnFileOpens(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, _ = press(m, keyRunes("j")) // README.md
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(cmd)
	assert.IsType(tea.QuitMsg{}, cmd())
	assert.Equal(Outcome{Action: ActionOpen, Path: "/r/README.md"}, m.outcome)
}

func TestModelPrintPath(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.NotNil(cmd)
	assert.IsType(tea.QuitMsg{}, cmd())
	assert.Equal(Outcome{Action: ActionPrint, Path: "/r/src"}, m.outcome)
}

func TestModelQuit(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, cmd := press(m, keyRunes("q"))
	assert.NotNil(cmd)
	assert.IsType(tea.QuitMsg{}, cmd())
	assert.Equal(Outcome{}, m.outcome)
}

func TestModelFilterReveal(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, _ = press(m, keyRunes("/"))
	assert.True(m.filtering)
	assert.Len(m.matches, len(testNodes())) // empty term matches everything

	m, _ = press(m, keyRunes("util"))
	assert.NotEmpty(m.matches)
	assert.Equal("src/lib/util.go", m.nav.Master()[m.matches[0]].Rel)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(m.filtering)
	assert.Equal("util.go", m.nav.Selected().Name)

	// Reveal expanded the ancestors, so the whole chain is visible.
	assert.Equal(len(testNodes()), m.nav.Len())
}

func TestModelFilterCancel(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, _ = press(m, keyRunes("/"))
	m, _ = press(m, keyRunes("main"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(m.filtering)
	assert.Equal("src", m.nav.Selected().Name)
	assert.Equal(2, m.nav.Len())
}

func TestModelPageKeysScrollFullPage(t *testing.T) {
	assert := assert.New(t)

	nodes := make([]tree.Node, 30)
	for i := range nodes {
		name := fmt.Sprintf("file%02d.txt", i)
		nodes[i] = tree.Node{Path: "/r/" + name, Rel: name, Name: name, Depth: 1}
	}
	m := NewModel(tree.NewNav(nodes, 0), Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(Model)
	assert.Equal(10, m.viewport.Height)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(10, m.viewport.YOffset)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(0, m.viewport.YOffset)
}

func TestModelFilterReopenStartsAtTop(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	m, _ = press(m, keyRunes("/"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(1, m.fcursor)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = press(m, keyRunes("/"))
	assert.Equal(0, m.fcursor)
}

func TestModelViewShowsCounts(t *testing.T) {
	assert := assert.New(t)
	m := newTestModel(0)

	out := m.View()
	assert.Contains(out, "2/5 entries")
	assert.Contains(out, "q quit")
}

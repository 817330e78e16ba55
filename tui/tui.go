// Package tui implements the interactive tree browser: a bubbletea
// session over a tree.Nav, with viewport scrolling, a fuzzy path filter
// and an exit outcome for the caller to act on after teardown.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/hayeah/lstree/gitstatus"
	"github.com/hayeah/lstree/icons"
	"github.com/hayeah/lstree/tree"
)

// Action is what the caller should do after the session ends.
type Action int

const (
	ActionNone  Action = iota
	ActionOpen         // open Path in an external editor
	ActionPrint        // write Path to stdout
)

// Outcome is the result of an interactive session.
type Outcome struct {
	Action Action
	Path   string
}

// Options controls the optional display columns.
type Options struct {
	GitStatus   bool
	Permissions bool
	Size        bool
	Icons       bool
}

var (
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// Model is the bubbletea model for the tree browser.
type Model struct {
	nav  *tree.Nav
	opts Options

	viewport viewport.Model
	ready    bool
	width    int

	// Fuzzy filter state. While filtering, the list shows ranked
	// matches over the master sequence instead of the visible tree.
	filterInput textinput.Model
	filtering   bool
	relPaths    []string
	matches     []int // master indices, ranked
	fcursor     int

	outcome Outcome
}

// NewModel wraps a Nav for an interactive session.
func NewModel(nav *tree.Nav, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter paths..."
	ti.Prompt = "/ "
	ti.CharLimit = 0

	master := nav.Master()
	relPaths := make([]string, len(master))
	for i := range master {
		relPaths[i] = master[i].Rel
	}

	return Model{
		nav:         nav,
		opts:        opts,
		filterInput: ti,
		relPaths:    relPaths,
	}
}

// Run starts the interactive session and returns its outcome. The TUI
// renders to stderr when stdout is not a terminal, so a printed path can
// still be piped.
func Run(nav *tree.Nav, opts Options) (Outcome, error) {
	m := NewModel(nav, opts)

	out := io.Writer(os.Stdout)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		out = os.Stderr
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("could not get final model state")
	}
	return fm.outcome, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - footerHeight
		if !m.ready {
			m.ready = true
		}
		m.updateContent()
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

const footerHeight = 2 // status (or filter input) line + hint line

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.outcome = Outcome{}
		return m, tea.Quit

	case "down", "j":
		m.nav.Next()
		m.updateContent()
		m.ensureCursorVisible()

	case "up", "k":
		m.nav.Prev()
		m.updateContent()
		m.ensureCursorVisible()

	case "enter":
		sel := m.nav.Selected()
		if sel == nil {
			return m, nil
		}
		if sel.IsDir {
			m.nav.ToggleSelected()
			m.updateContent()
			m.ensureCursorVisible()
			return m, nil
		}
		m.outcome = Outcome{Action: ActionOpen, Path: sel.Path}
		return m, tea.Quit

	case "ctrl+s":
		if sel := m.nav.Selected(); sel != nil {
			m.outcome = Outcome{Action: ActionPrint, Path: sel.Path}
			return m, tea.Quit
		}

	case "pgup":
		m.viewport.ViewUp()

	case "pgdown":
		m.viewport.ViewDown()

	case "/":
		m.filtering = true
		m.fcursor = 0
		m.filterInput.SetValue("")
		m.filterInput.Focus()
		m.refilter()
		m.updateContent()
		m.ensureCursorVisible()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.stopFiltering()
		return m, nil

	case "enter":
		if len(m.matches) > 0 {
			target := m.nav.Master()[m.matches[m.fcursor]].Path
			m.nav.Reveal(target)
		}
		m.stopFiltering()
		return m, nil

	case "down":
		if m.fcursor < len(m.matches)-1 {
			m.fcursor++
			m.updateContent()
			m.ensureCursorVisible()
		}
		return m, nil

	case "up":
		if m.fcursor > 0 {
			m.fcursor--
			m.updateContent()
			m.ensureCursorVisible()
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.refilter()
		m.updateContent()
		m.ensureCursorVisible()
	}
	return m, cmd
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.filterInput.Blur()
	m.updateContent()
	m.ensureCursorVisible()
}

// refilter recomputes the ranked matches for the current filter term.
// An empty term matches the whole master sequence in order.
func (m *Model) refilter() {
	term := m.filterInput.Value()
	m.matches = m.matches[:0]
	if term == "" {
		for i := range m.relPaths {
			m.matches = append(m.matches, i)
		}
	} else {
		for _, match := range fuzzy.Find(term, m.relPaths) {
			m.matches = append(m.matches, match.Index)
		}
	}
	if m.fcursor >= len(m.matches) {
		m.fcursor = len(m.matches) - 1
	}
	if m.fcursor < 0 {
		m.fcursor = 0
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var status, hints string
	if m.filtering {
		status = m.filterInput.View()
		hints = "(↑/↓ select, enter reveal, esc cancel)"
	} else {
		status = fmt.Sprintf("%d/%d entries", m.nav.Len(), len(m.nav.Master()))
		hints = "(j/k navigate, enter expand/open, / filter, ctrl+s print path, q quit)"
	}
	return m.viewport.View() + "\n" + status + "\n" + dimStyle.Render(hints)
}

// updateContent rebuilds the viewport content from the current state.
func (m *Model) updateContent() {
	var sb strings.Builder
	if m.filtering {
		master := m.nav.Master()
		for i, mi := range m.matches {
			line := master[mi].Rel
			if master[mi].IsDir {
				line += "/"
			}
			if i == m.fcursor {
				line = selectedStyle.Render(line)
			}
			sb.WriteString(line + "\n")
		}
	} else {
		for i := 0; i < m.nav.Len(); i++ {
			sb.WriteString(m.renderRow(m.nav.Node(i), i == m.nav.Cursor()) + "\n")
		}
	}
	m.viewport.SetContent(sb.String())
}

// cursorLine is the viewport line of the current selection.
func (m *Model) cursorLine() int {
	if m.filtering {
		return m.fcursor
	}
	return m.nav.Cursor()
}

// ensureCursorVisible scrolls the viewport so the cursor line is on
// screen.
func (m *Model) ensureCursorVisible() {
	line := m.cursorLine()
	if line < 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1
	if line < top {
		m.viewport.SetYOffset(line)
	} else if line > bottom {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// renderRow formats one visible node. The selected row is rendered
// reversed and unstyled inside, so the reverse video is not broken by
// inner color resets.
func (m *Model) renderRow(n *tree.Node, selected bool) string {
	type segment struct {
		text  string
		style lipgloss.Style
	}
	var segs []segment

	if m.opts.GitStatus {
		if n.Status != gitstatus.StatusNone {
			segs = append(segs, segment{
				text:  string(n.Status.Rune()) + " ",
				style: lipgloss.NewStyle().Foreground(n.Status.Color()),
			})
		} else {
			segs = append(segs, segment{text: "  "})
		}
	}
	if m.opts.Permissions {
		perm := n.Perm
		if perm == "" {
			perm = "----------"
		}
		segs = append(segs, segment{text: perm + " ", style: dimStyle})
	}

	indent := strings.Repeat("    ", n.Depth-1)
	branch := "  "
	if n.IsDir {
		if n.Expanded {
			branch = "▼ "
		} else {
			branch = "▶ "
		}
	}
	segs = append(segs, segment{text: indent + branch})

	if m.opts.Icons {
		icon, color := icons.ForPath(n.Path, n.IsDir)
		segs = append(segs, segment{text: icon + " ", style: lipgloss.NewStyle().Foreground(color)})
	}

	nameStyle := lipgloss.NewStyle()
	if n.IsDir {
		nameStyle = dirStyle
	}
	segs = append(segs, segment{text: n.Name, style: nameStyle})

	if m.opts.Size && n.HasSize {
		sizeStr := humanize.IBytes(uint64(n.Size))
		used := 0
		for _, s := range segs {
			used += runewidth.StringWidth(s.text)
		}
		if pad := m.width - used - runewidth.StringWidth(sizeStr); pad > 0 {
			segs = append(segs, segment{text: strings.Repeat(" ", pad)})
		} else {
			segs = append(segs, segment{text: " "})
		}
		segs = append(segs, segment{text: sizeStr, style: dimStyle})
	}

	var b strings.Builder
	if selected {
		for _, s := range segs {
			b.WriteString(s.text)
		}
		return selectedStyle.Render(b.String())
	}
	for _, s := range segs {
		b.WriteString(s.style.Render(s.text))
	}
	return b.String()
}

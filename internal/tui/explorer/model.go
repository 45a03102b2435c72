// Package explorer is an interactive viewer for one compilation result.
package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glebzikunov/MTRAN/internal/ast"
	"github.com/glebzikunov/MTRAN/internal/compiler"
	"github.com/glebzikunov/MTRAN/internal/diag"
)

type pane int

const (
	paneTree pane = iota
	paneDiagnostics
	paneSource
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneTree:
		return "Tree"
	case paneDiagnostics:
		return "Diagnostics"
	case paneSource:
		return "Source"
	default:
		return "?"
	}
}

// Config holds explorer configuration.
type Config struct {
	// Reload re-runs the compiler; nil disables the reload key.
	Reload func() (*compiler.Result, error)
	Indent string
}

type reloadedMsg struct {
	result *compiler.Result
	err    error
}

// Model is the Bubbletea model for the explorer.
type Model struct {
	width  int
	height int
	ready  bool
	pane   pane
	err    error

	viewport viewport.Model
	result   *compiler.Result
	cfg      Config
}

func New(r *compiler.Result, cfg Config) Model {
	if cfg.Indent == "" {
		cfg.Indent = ast.DefaultPrinter.Indent
	}
	m := Model{result: r, cfg: cfg}
	// Open on the diagnostics when there is no tree to show.
	if r.Program == nil {
		m.pane = paneDiagnostics
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // title + tabs
		footerHeight := 2 // status + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		return m, nil

	case reloadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
		}
		m.updateViewportContent()
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.pane = (m.pane + 1) % paneCount
	case "shift+tab", "left", "h":
		m.pane = (m.pane + paneCount - 1) % paneCount
	case "1":
		m.pane = paneTree
	case "2":
		m.pane = paneDiagnostics
	case "3":
		m.pane = paneSource
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "r":
		if m.cfg.Reload == nil {
			return m, nil
		}
		reload := m.cfg.Reload
		return m, func() tea.Msg {
			r, err := reload()
			return reloadedMsg{result: r, err: err}
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.updateViewportContent()
	m.viewport.GotoTop()
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(PanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("mtran") + " " + FileStyle.Render(m.result.Filename)
	var tabs []string
	for p := pane(0); p < paneCount; p++ {
		label := fmt.Sprintf("%d %s", int(p)+1, p)
		if p == m.pane {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.err != nil:
		status = StatusErrorStyle.Render("reload failed: " + m.err.Error())
	case m.result.OK():
		status = StatusOKStyle.Render("OK")
	default:
		n := len(m.result.Diagnostics) + m.result.Truncated
		status = StatusErrorStyle.Render(fmt.Sprintf("%s failed: %d error(s)", m.result.Stage, n))
	}
	return StatusBarStyle.Width(m.width - 2).Render(status)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("tab", "Pane"),
		RenderKeyHint("g/G", "Top/Bottom"),
	}
	if m.cfg.Reload != nil {
		items = append(items, RenderKeyHint("r", "Reload"))
	}
	items = append(items, RenderKeyHint("q", "Quit"))
	return strings.Join(items, "  ")
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	r := m.result
	switch m.pane {
	case paneTree:
		if r.Program == nil {
			return "No tree: the program did not parse.\n"
		}
		return ast.Printer{Indent: m.cfg.Indent}.Sprint(r.Program)

	case paneDiagnostics:
		if len(r.Diagnostics) == 0 {
			return StatusOKStyle.Render("no errors") + "\n"
		}
		var b strings.Builder
		rr := diag.Renderer{Color: true}
		_ = rr.Render(&b, r.Filename, r.Source, r.Diagnostics)
		b.WriteString(rr.Summary(len(r.Diagnostics), r.Truncated))
		b.WriteString("\n")
		return b.String()

	default:
		lines := strings.Split(r.Source, "\n")
		var b strings.Builder
		for i, line := range lines {
			b.WriteString(LineNumberStyle.Render(fmt.Sprintf("%4d ", i+1)))
			b.WriteString(line)
			b.WriteString("\n")
		}
		return b.String()
	}
}

// Run starts the explorer in the alternate screen.
func Run(r *compiler.Result, cfg Config) error {
	p := tea.NewProgram(New(r, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

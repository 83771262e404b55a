package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// chromeLines is the height taken by the header and status bar.
const chromeLines = 3

// browseLoader fetches the rows to show.
type browseLoader func(ctx context.Context) ([]types.DriftEntry, error)

// loadedMsg carries the result of a browseLoader run.
type loadedMsg struct {
	rows []types.DriftEntry
	err  error
}

// browseModel is the interactive entry list.
type browseModel struct {
	file     string
	load     browseLoader
	copyFn   func(string) error
	keys     browseKeyMap
	viewport viewport.Model

	rows     []types.DriftEntry
	cursor   int
	status   string
	err      error
	loading  bool
	showHelp bool
}

func newBrowseModel(file string, load browseLoader, copyFn func(string) error) browseModel {
	return browseModel{
		file:     file,
		load:     load,
		copyFn:   copyFn,
		keys:     defaultBrowseKeyMap(),
		viewport: viewport.New(0, 0),
		loading:  true,
		status:   "loading…",
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.reload()
}

func (m browseModel) reload() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		rows, err := load(context.Background())
		return loadedMsg{rows: rows, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeLines)

	case loadedMsg:
		m.loading = false
		m.rows, m.err = msg.rows, msg.err
		m.cursor = min(m.cursor, max(0, len(m.rows)-1))
		if m.err == nil {
			m.status = fmt.Sprintf("%d entries, %d out of sync", len(m.rows), countDrifted(m.rows))
			if n := countUnreadable(m.rows); n > 0 {
				m.status += fmt.Sprintf(", %d unreadable", n)
			}
		}

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Esc, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(max(0, len(m.rows)-1), m.cursor+1)
		case key.Matches(msg, m.keys.PageUp):
			m.cursor = max(0, m.cursor-m.viewport.Height)
		case key.Matches(msg, m.keys.PageDown):
			m.cursor = min(max(0, len(m.rows)-1), m.cursor+m.viewport.Height)
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			m.cursor = max(0, len(m.rows)-1)
		case key.Matches(msg, m.keys.Copy):
			m.status = m.copySelected()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.status = "reloading…"
			return m, m.reload()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
	}

	m.updateViewport()
	return m, nil
}

// copySelected puts the selected entry on the clipboard and returns the
// status line to show.
func (m browseModel) copySelected() string {
	if m.cursor >= len(m.rows) {
		return "nothing to copy"
	}
	r := m.rows[m.cursor]
	line := r.Name + " = " + r.Value
	if err := m.copyFn(line); err != nil {
		return "copy failed: " + err.Error()
	}
	return "copied: " + line
}

// updateViewport re-renders the rows and keeps the cursor visible.
func (m *browseModel) updateViewport() {
	var b strings.Builder
	for i, r := range m.rows {
		line := renderRow(r)
		if i == m.cursor {
			line = paint(selectedStyle, "> "+line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.rows)-1 {
			b.WriteByte('\n')
		}
	}
	m.viewport.SetContent(b.String())

	visible := max(1, m.viewport.Height)
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	} else if m.cursor >= m.viewport.YOffset+visible {
		m.viewport.YOffset = m.cursor - visible + 1
	}
}

func renderRow(r types.DriftEntry) string {
	var mark string
	switch {
	case r.Err != "":
		mark = paint(warnStyle, "? live unavailable")
	case r.InSync:
		mark = paint(okStyle, "✓")
	default:
		mark = paint(driftStyle, "✗ live "+r.Live)
	}
	line := fmt.Sprintf("%s = %s  %s", paint(keyStyle, r.Name), r.Value, mark)
	if r.Comment != "" {
		line += "  " + paint(commentStyle, "# "+r.Comment)
	}
	return line
}

func (m browseModel) View() string {
	if m.showHelp {
		return overlay.New(
			browseHelp{keys: m.keys},
			browseBackground{model: &m},
			overlay.Center,
			overlay.Center,
			0,
			0,
		).View()
	}
	return m.mainView()
}

func (m browseModel) mainView() string {
	header := paint(headerStyle, "sysctlctl browse") + "  " + m.file
	status := m.status
	if m.err != nil {
		status = paint(driftStyle, "Error: "+m.err.Error())
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		paint(commentStyle, status+"  ·  ? help  q quit"),
	)
}

// browseBackground renders the list behind the help overlay.
type browseBackground struct {
	model *browseModel
}

func (b browseBackground) Init() tea.Cmd                       { return nil }
func (b browseBackground) Update(tea.Msg) (tea.Model, tea.Cmd) { return b, nil }
func (b browseBackground) View() string                        { return b.model.mainView() }

// browseHelp is the keyboard shortcut box.
type browseHelp struct {
	keys browseKeyMap
}

func (h browseHelp) Init() tea.Cmd                       { return nil }
func (h browseHelp) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h browseHelp) View() string {
	const keyWidth = 10
	var b strings.Builder
	b.WriteString(paint(headerStyle, "Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, binding := range h.keys.helpBindings() {
		help := binding.Help()
		b.WriteString(fmt.Sprintf("%-*s  %s\n", keyWidth, help.Key, help.Desc))
	}
	return helpBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

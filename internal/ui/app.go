// Package ui provides the Bubble Tea dashboard that renders the mirrored
// daemon state: a sensor grid built from the recent-value projection and a
// history sparkline for the selected sensor.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coolview/coolview/internal/prefs"
	"github.com/coolview/coolview/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// rowRef ties a table row back to the device and sensor it renders.
type rowRef struct {
	uid    string
	sensor string
	series int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	prefsPath string
	pollTick  time.Duration

	theme    Theme
	table    table.Model
	rowRefs  []rowRef
	snapshot state.Snapshot

	width  int
	height int
	ready  bool
}

const sparklineHeight = 4

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.ThemeName)

	t := table.New(
		table.WithColumns(sensorColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles(theme))

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     theme,
		table:     t,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeTable()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.updateRows()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Connecting to daemon..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderSparkline())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.table.SetStyles(tableStyles(m.theme))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "g", "home":
		m.table.GotoTop()
		return m, nil

	case "G", "end":
		m.table.GotoBottom()
		return m, nil
	}

	// Remaining keys (j/k/up/down/pgup/pgdn) drive table navigation.
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) resizeTable() {
	if m.width > 0 {
		m.table.SetWidth(m.width)
	}
	// Header, sparkline pane, and footer share the vertical space.
	rows := m.height - sparklineHeight - 4
	if rows < 3 {
		rows = 3
	}
	m.table.SetHeight(rows)
}

func (m Model) renderFooter() string {
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	return hint.Render("j/k move · g/G top/bottom · T theme · q quit")
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/beastmode/internal/dashboard"
	"github.com/julianstephens/beastmode/internal/progress"
	"github.com/julianstephens/beastmode/internal/tui/components/goals"
	"github.com/julianstephens/beastmode/internal/tui/components/history"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateGoals
)

var tabTitles = []string{"Today", "History", "Goals"}

type Model struct {
	dash     *dashboard.Dashboard
	now      func() time.Time
	state    SessionState
	keys     KeyMap
	help     help.Model
	history  history.Model
	goals    goals.Model
	report   progress.Report
	cursor   int
	status   string
	err      error
	quitting bool
	width    int
	height   int
}

type Option func(*Model)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New builds the dashboard view. dash must already be loaded.
func New(dash *dashboard.Dashboard, opts ...Option) Model {
	m := Model{
		dash:    dash,
		now:     time.Now,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		history: history.New(nil, 0, 0),
		goals:   goals.New(0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.sync()
	return m
}

// sync recomputes the report and pushes fresh data into the sub-views.
func (m *Model) sync() {
	m.report = m.dash.Progress(m.now())
	m.history.SetEntries(m.dash.History())
	m.goals.SetData(m.dash.Goals(), m.report.Achievements)
}

func (m *Model) refresh() {
	if err := m.dash.Load(context.Background(), m.now()); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "Refreshed"
	m.sync()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state == StateToday {
		keys = append(keys, m.keys.Sessions, m.keys.Toggle)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Sessions, m.keys.Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

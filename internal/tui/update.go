package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/beastmode/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.history.SetSize(msg.Width-h, msg.Height-v-4)
		m.goals.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		}

		if m.state == StateToday {
			m.updateToday(msg)
			return m, nil
		}
	}

	switch m.state {
	case StateHistory:
		m.history, cmd = m.history.Update(msg)
	case StateGoals:
		m.goals, cmd = m.goals.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateToday(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(models.Sessions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(models.Sessions[m.cursor])
	case key.Matches(msg, m.keys.Sessions):
		s, err := models.ParseSession(msg.String())
		if err != nil {
			return
		}
		for i, candidate := range models.Sessions {
			if candidate == s {
				m.cursor = i
			}
		}
		m.toggle(s)
	}
}

func (m *Model) toggle(s models.Session) {
	entry, err := m.dash.ToggleSession(context.Background(), s)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	if entry.SessionDone(s) {
		m.status = fmt.Sprintf("Completed %s session", s)
	} else {
		m.status = fmt.Sprintf("Unchecked %s session", s)
	}
	m.sync()
}

package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/beastmode/internal/models"
)

type Item struct {
	Entry models.DailyEntry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Entry.Date, i.Entry.DailyStatus.Label())
}

func (i Item) Description() string {
	var b strings.Builder
	for _, s := range models.Sessions {
		if i.Entry.SessionDone(s) {
			b.WriteString("■")
		} else {
			b.WriteString("□")
		}
	}
	fmt.Fprintf(&b, " %d%%", i.Entry.CompletionPercentage)
	if i.Entry.JobApplications > 0 {
		fmt.Fprintf(&b, " | %d applications", i.Entry.JobApplications)
	}
	if i.Entry.StudyHours > 0 {
		fmt.Fprintf(&b, " | %.1fh study", i.Entry.StudyHours)
	}
	return b.String()
}

func (i Item) FilterValue() string { return i.Entry.Date }

type Model struct {
	list list.Model
}

func New(entries []models.DailyEntry, width, height int) Model {
	l := list.New(items(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func items(entries []models.DailyEntry) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e}
	}
	return out
}

func (m *Model) SetEntries(entries []models.DailyEntry) {
	m.list.SetItems(items(entries))
}

// Selected returns the highlighted entry, if any.
func (m Model) Selected() (models.DailyEntry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No entries yet.\n  Check off a session on the Today tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

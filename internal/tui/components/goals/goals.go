package goals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/beastmode/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Model struct {
	viewport     viewport.Model
	bar          progress.Model
	goals        []models.Goal
	achievements []string
	width        int
	height       int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.bar.Width = min(40, max(10, width-30))
	m.Render()
}

// SetData replaces the goals and unlocked achievement titles shown.
func (m *Model) SetData(goals []models.Goal, achievements []string) {
	m.goals = goals
	m.achievements = achievements
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Goals") + "\n\n")
	if len(m.goals) == 0 {
		b.WriteString(metaStyle.Render("No goals yet. Add one with 'beastmode goal add'.") + "\n")
	}
	for _, g := range m.goals {
		pct := g.ProgressPercentage()
		fmt.Fprintf(&b, "%s %s %3d%%\n", titleStyle.Render(g.Title), m.bar.ViewAs(float64(pct)/100), pct)
		meta := fmt.Sprintf("%g / %g", g.CurrentValue, g.TargetValue)
		if g.Category != "" {
			meta += " | " + g.Category
		}
		if g.TargetDate != "" {
			meta += " | due " + g.TargetDate
		}
		b.WriteString("  " + metaStyle.Render(meta) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Achievements") + "\n\n")
	if len(m.achievements) == 0 {
		b.WriteString(lockedStyle.Render("None unlocked yet.") + "\n")
	}
	for _, a := range m.achievements {
		b.WriteString(unlockedStyle.Render("★ "+a) + "\n")
	}
	m.viewport.SetContent(b.String())
}

package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard(context.Background())
	if err != nil {
		return err
	}
	// Backups only make sense for real data.
	if !dash.Demo() {
		ctx.PerformAutomaticBackup()
	}

	p := tea.NewProgram(tui.New(dash, tui.WithClock(ctx.Time)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}

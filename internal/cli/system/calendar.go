package system

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/beastmode/internal/calendar"
	"github.com/julianstephens/beastmode/internal/cli"
)

type CalendarCmd struct {
	Out string `short:"o" help:"Write the .ics file here instead of stdout." type:"path"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard(context.Background())
	if err != nil {
		return err
	}
	ics := calendar.Build(dash.Settings(), dash.Goals(), ctx.Time())

	if c.Out == "" {
		ctx.Printf("%s", ics)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	ctx.Printf("✓ Calendar written to %s\n", c.Out)
	return nil
}

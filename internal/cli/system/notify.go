package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/beastmode/internal/cli"
	apperrors "github.com/julianstephens/beastmode/internal/errors"
	"github.com/julianstephens/beastmode/internal/notify"
)

type NotifyCmd struct {
	Type        string `arg:"" help:"Message type: daily_reminder, accountability_alert or celebration."`
	DryRun      bool   `help:"Print the notification instead of sending it."`
	Achievement string `help:"Achievement name for celebrations."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	t, err := notify.ParseMessageType(c.Type)
	if err != nil {
		return err
	}

	bg := context.Background()
	dash, err := ctx.LoadDashboard(bg)
	if err != nil {
		return err
	}
	if dash.Demo() {
		return apperrors.WithHint(fmt.Errorf("storage unavailable: %w", dash.Err()),
			"notifications are never sent from demo data; run `beastmode doctor`")
	}
	p := dash.Progress(ctx.Time()).Progress

	if c.DryRun {
		if !notify.ShouldSend(t, p) {
			ctx.Printf("Suppressed: %d missed day(s) is below the alert threshold.\n", p.MissedDays)
			return nil
		}
		m := notify.Compose(p, t, c.Achievement)
		ctx.Printf("[%s] %s\n\n%s\n", m.Tone, m.Title, m.Body)
		for _, h := range m.Highlights {
			ctx.Printf("  %s: %s\n", h.Label, h.Value)
		}
		channels := ctx.Dispatcher(dash.Settings()).Channels()
		ctx.Printf("\nWould send to: %s\n", orNone(channels))
		return nil
	}

	d := ctx.Dispatcher(dash.Settings())
	if len(d.Channels()) == 0 {
		ctx.Println("No notification channels are enabled. See 'beastmode settings show'.")
		return nil
	}

	report := d.Dispatch(bg, p, t, c.Achievement)
	if report.Suppressed {
		ctx.Printf("Suppressed: %d missed day(s) is below the alert threshold.\n", p.MissedDays)
		return nil
	}
	for _, r := range report.Results {
		if r.OK {
			ctx.Printf("✓ %s (%v)\n", r.Channel, r.Duration.Round(time.Millisecond))
		} else {
			ctx.Printf("❌ %s: %s\n", r.Channel, r.Error)
		}
	}
	ctx.Printf("Delivered to %d of %d channel(s).\n", report.Succeeded(), len(report.Results))
	return nil
}

func orNone(names []string) string {
	if len(names) == 0 {
		return "(no channels enabled)"
	}
	return strings.Join(names, ", ")
}

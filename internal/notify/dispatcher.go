package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/beastmode/internal/logger"
	"github.com/julianstephens/beastmode/internal/models"
)

// Result is the settled outcome of one channel.
type Result struct {
	Channel  string        `json:"channel"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report is the outcome of one dispatch across every channel.
type Report struct {
	Type       MessageType `json:"type"`
	Suppressed bool        `json:"suppressed"`
	Results    []Result    `json:"results"`
}

// Succeeded counts channels that accepted the message.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

// Dispatcher fans a notification out to a fixed set of channels.
type Dispatcher struct {
	channels []Channel
	metrics  *Metrics
}

func NewDispatcher(channels []Channel, metrics *Metrics) *Dispatcher {
	return &Dispatcher{channels: channels, metrics: metrics}
}

// Channels returns the names of the configured channels.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.channels))
	for i, c := range d.channels {
		names[i] = c.Name()
	}
	return names
}

// Dispatch sends to every channel concurrently and waits for all of them to
// settle. A failing or panicking channel only affects its own Result.
// Accountability alerts below the missed-day minimum are suppressed without
// any request being made.
func (d *Dispatcher) Dispatch(ctx context.Context, p models.UserProgress, t MessageType, achievement string) Report {
	report := Report{Type: t}
	if !ShouldSend(t, p) {
		logger.Debug("Notification suppressed", "type", t, "missed_days", p.MissedDays)
		d.metrics.suppressed(t)
		report.Suppressed = true
		return report
	}

	report.Results = make([]Result, len(d.channels))
	var wg sync.WaitGroup
	for i, ch := range d.channels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Results[i] = send(ctx, ch, p, t, achievement)
		}()
	}
	wg.Wait()

	for _, r := range report.Results {
		d.metrics.observe(r, t)
		if !r.OK {
			logger.Warn("Notification failed", "channel", r.Channel, "type", t, "error", r.Error)
		} else {
			logger.Info("Notification sent", "channel", r.Channel, "type", t)
		}
	}
	return report
}

func send(ctx context.Context, ch Channel, p models.UserProgress, t MessageType, achievement string) (res Result) {
	start := time.Now()
	res.Channel = ch.Name()
	defer func() {
		if v := recover(); v != nil {
			res.OK = false
			res.Error = fmt.Sprintf("panic: %v", v)
		}
		res.Duration = time.Since(start)
	}()

	if err := ch.Send(ctx, p, t, achievement); err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}

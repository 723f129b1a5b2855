package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/julianstephens/beastmode/internal/models"
)

type fakeChannel struct {
	name  string
	err   error
	panic bool
	calls atomic.Int32
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(ctx context.Context, p models.UserProgress, t MessageType, achievement string) error {
	f.calls.Add(1)
	if f.panic {
		panic("boom")
	}
	return f.err
}

func TestDispatchIsolatesFailures(t *testing.T) {
	a := &fakeChannel{name: "a"}
	b := &fakeChannel{name: "b", err: errors.New("webhook rejected")}
	c := &fakeChannel{name: "c"}

	d := NewDispatcher([]Channel{a, b, c}, nil)
	report := d.Dispatch(context.Background(), models.UserProgress{TotalTasks: 4}, TypeDailyReminder, "")

	if report.Suppressed {
		t.Fatal("daily reminder should not be suppressed")
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(report.Results))
	}
	for i, want := range []bool{true, false, true} {
		r := report.Results[i]
		if r.OK != want {
			t.Errorf("%s: expected ok=%v, got %v (%s)", r.Channel, want, r.OK, r.Error)
		}
	}
	if report.Results[1].Error != "webhook rejected" {
		t.Errorf("unexpected error %q", report.Results[1].Error)
	}
	if report.Succeeded() != 2 {
		t.Errorf("expected 2 successes, got %d", report.Succeeded())
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	a := &fakeChannel{name: "a"}
	b := &fakeChannel{name: "b", panic: true}
	c := &fakeChannel{name: "c"}

	report := NewDispatcher([]Channel{a, b, c}, nil).
		Dispatch(context.Background(), models.UserProgress{}, TypeCelebration, "")

	if report.Succeeded() != 2 {
		t.Errorf("expected 2 successes, got %d", report.Succeeded())
	}
	if report.Results[1].OK || report.Results[1].Error != "panic: boom" {
		t.Errorf("expected recovered panic, got %+v", report.Results[1])
	}
}

func TestDispatchSuppressesQuietAlerts(t *testing.T) {
	a := &fakeChannel{name: "a"}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d := NewDispatcher([]Channel{a}, m)

	report := d.Dispatch(context.Background(), models.UserProgress{MissedDays: 1}, TypeAccountabilityAlert, "")
	if !report.Suppressed {
		t.Error("expected alert to be suppressed")
	}
	if a.calls.Load() != 0 {
		t.Errorf("expected no sends, got %d", a.calls.Load())
	}
	if got := testutil.ToFloat64(m.sends.WithLabelValues("all", string(TypeAccountabilityAlert), "suppressed")); got != 1 {
		t.Errorf("expected suppressed counter 1, got %v", got)
	}

	report = d.Dispatch(context.Background(), models.UserProgress{MissedDays: 2}, TypeAccountabilityAlert, "")
	if report.Suppressed || a.calls.Load() != 1 {
		t.Errorf("expected alert to be sent at 2 missed days")
	}
	if got := testutil.ToFloat64(m.sends.WithLabelValues("a", string(TypeAccountabilityAlert), "ok")); got != 1 {
		t.Errorf("expected ok counter 1, got %v", got)
	}
}

func TestDispatchNoChannels(t *testing.T) {
	report := NewDispatcher(nil, nil).Dispatch(context.Background(), models.UserProgress{}, TypeDailyReminder, "")
	if len(report.Results) != 0 || report.Suppressed {
		t.Errorf("expected empty report, got %+v", report)
	}
}

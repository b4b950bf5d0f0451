package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/engine"
	"github.com/jogru0/save-the-planet/internal/world"
)

// autoplay takes one action per frame: hand out a flyer if there is one,
// otherwise put an idle supporter into research, otherwise try to print.
func autoplay(w *world.World) world.Action {
	for _, a := range []world.Action{world.ActionHandout, world.ActionAssignResearcher} {
		if w.Act(a) {
			return a
		}
	}
	w.Act(world.ActionPrint)
	return world.ActionPrint
}

// statusReporter logs the world status every interval of simulated time.
type statusReporter struct {
	every duration.Duration
	next  duration.Duration
	lines int
}

func newStatusReporter(every duration.Duration) *statusReporter {
	return &statusReporter{every: every}
}

// Report logs the status if the next report is due.
func (r *statusReporter) Report(w *world.World) {
	if r.every.IsZero() || w.TotalTime().Less(r.next) {
		return
	}
	for !w.TotalTime().Less(r.next) {
		r.next = r.next.Add(r.every)
	}
	r.log("status", w.Snapshot())
}

// Final logs the status unconditionally.
func (r *statusReporter) Final(w *world.World) {
	r.log("final status", w.Snapshot())
}

func (r *statusReporter) log(msg string, s world.Status) {
	r.lines++
	attrs := []any{
		"time", engine.SimTime(s.At),
		"saved", s.Saved.Text(2),
		"rate", s.SaveRate.Text(4),
		"flyers", s.Flyers.Text(0),
		"supporters", s.Supporting.Humanize(0),
		"population", s.Population.Humanize(0),
		"research", s.Research.Text(2),
		"cards", len(s.Cards),
	}
	if s.Prompt != "" {
		attrs = append(attrs, "prompt", s.Prompt)
	}
	if s.Message != "" {
		attrs = append(attrs, "message", s.Message)
	}
	if s.HasMilestoneETA {
		attrs = append(attrs, "milestones_in", relative(s.MilestoneETA))
	}
	slog.Info(msg, attrs...)
}

// relative renders d like "3 days".
func relative(d duration.Duration) string {
	start := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(start, start.Add(d.Std()), "", ""))
}

package world

import (
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// Status is a read-only snapshot of the values the game displays.
type Status struct {
	At         duration.Duration
	Saved      quantity.SignedQuantity[quantity.Emission]
	Flyers     quantity.Quantity[quantity.Flyer]
	SaveRate   quantity.Rate[quantity.Emission]
	Supporting quantity.Quantity[quantity.Person]
	Population quantity.Quantity[quantity.Person]
	Research   quantity.Quantity[quantity.ResearchPoint]
	Prompt     string
	Message    string
	Cards      []Card

	// MilestoneETA is the simulated time until milestones unlock. It is only set while
	// they are hidden and the save rate is positive.
	MilestoneETA    duration.Duration
	HasMilestoneETA bool
}

// Snapshot returns the current status.
func (w *World) Snapshot() Status {
	a := &w.cards.activism
	s := Status{
		At:         w.total,
		Saved:      a.emission.Net(),
		Flyers:     a.flyers,
		SaveRate:   a.saveRate,
		Supporting: a.supporting,
		Population: a.supporting.Add(a.unsupporting),
		Research:   w.cards.research.progress,
		Prompt:     w.Prompt(),
		Cards:      w.AvailableCards(),
	}
	if m, ok := w.messages.Current(); ok {
		s.Message = m.Text
	}
	if !w.cards.milestones.visible {
		s.MilestoneETA, s.HasMilestoneETA = a.saveRate.ETA(w.milestoneGap())
	}
	return s
}

// milestoneGap is how much more must be saved to unlock milestones.
func (w *World) milestoneGap() quantity.Quantity[quantity.Emission] {
	threshold := quantity.New[quantity.Emission](w.balance.MilestoneThreshold)
	net := w.cards.activism.emission.Net()
	switch {
	case net.IsNegative():
		return threshold.Add(net.Magnitude())
	case net.Magnitude().Less(threshold):
		return threshold.Sub(net.Magnitude())
	}
	return quantity.Quantity[quantity.Emission]{}
}

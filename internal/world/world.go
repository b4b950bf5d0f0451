// Package world is the game progression layer. It owns the cards, the
// message queue and the simulated clock, and advances them with exact
// quantity arithmetic each time the engine reports a new total time.
package world

import (
	"log/slog"

	"github.com/jogru0/save-the-planet/internal/config"
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// World holds the complete game state.
type World struct {
	cards    Cards
	total    duration.Duration
	messages Messages

	balance  config.Balance
	recorder Recorder
	log      *slog.Logger
}

// Option configures a World.
type Option func(*World)

// WithRecorder sends every ledger posting to r.
func WithRecorder(r Recorder) Option {
	return func(w *World) { w.recorder = r }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithBalance replaces the default balance. The balance must be valid.
func WithBalance(b config.Balance) Option {
	return func(w *World) { w.balance = b }
}

// New creates a world at the start of the prolog.
func New(opts ...Option) *World {
	w := &World{
		balance: config.Default(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cards = newCards(w.balance)
	return w
}

// TotalTime returns the simulated time processed so far.
func (w *World) TotalTime() duration.Duration {
	return w.total
}

// Simulate advances the world to total. total must not be earlier than the
// last value passed in.
func (w *World) Simulate(total duration.Duration) {
	delta := duration.Since(w.total, total)
	w.total = total

	w.simulateCards(delta)
	w.messages.Simulate(delta)
}

func (w *World) simulateCards(delta duration.Duration) {
	threshold := quantity.New[quantity.Emission](w.balance.MilestoneThreshold)
	if !w.cards.milestones.visible && w.cards.activism.emission.Net().AtLeast(threshold) {
		w.cards.milestones.discover()
		w.log.Info("milestones discovered", "saved", w.cards.activism.emission.Net().Text(2), "at", w.total)
	}

	for _, card := range allCards {
		switch card {
		case CardActivism:
			w.simulateActivism(delta)
		case CardMilestones:
		case CardResearch:
			w.simulateResearch(delta)
		case CardStaff:
		}
	}
}

// CurrentMessage returns the message to show, if any.
func (w *World) CurrentMessage() (Message, bool) {
	return w.messages.Current()
}

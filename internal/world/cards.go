package world

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/jogru0/save-the-planet/internal/config"
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// Card identifies one of the game's cards.
type Card int

const (
	CardActivism Card = iota
	CardMilestones
	CardResearch
	CardStaff
)

// allCards is the simulation order.
var allCards = [...]Card{CardActivism, CardMilestones, CardResearch, CardStaff}

// menuOrder is the order cards appear in the menu.
var menuOrder = [...]Card{CardActivism, CardResearch, CardMilestones, CardStaff}

// Card colors.
var (
	Cyan   = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	Yellow = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	Red    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	White  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// MenuLabel returns the card's menu entry.
func (c Card) MenuLabel() string {
	switch c {
	case CardActivism:
		return "CO2"
	case CardMilestones:
		return "Milestones"
	case CardResearch:
		return "Research"
	case CardStaff:
		return "Staff"
	}
	panic(fmt.Sprintf("world: unknown card %d", int(c)))
}

// Color returns the card's accent color.
func (c Card) Color() color.RGBA {
	switch c {
	case CardActivism:
		return Cyan
	case CardMilestones:
		return Yellow
	case CardResearch:
		return Red
	case CardStaff:
		return White
	}
	panic(fmt.Sprintf("world: unknown card %d", int(c)))
}

func (c Card) String() string {
	return c.MenuLabel()
}

// Cards holds the state of every card and the current selection.
type Cards struct {
	selected   Card
	activism   activism
	milestones milestones
	research   research
	staff      staff
}

func newCards(b config.Balance) Cards {
	return Cards{
		selected: CardActivism,
		activism: newActivism(b),
		research: newResearch(b),
	}
}

// IsVisible reports whether card is shown in the menu.
func (w *World) IsVisible(card Card) bool {
	switch card {
	case CardActivism:
		return true
	case CardMilestones:
		return w.cards.milestones.visible
	case CardResearch, CardStaff:
		return false
	}
	panic(fmt.Sprintf("world: unknown card %d", int(card)))
}

// AvailableCards returns the visible cards in menu order.
func (w *World) AvailableCards() []Card {
	var cards []Card
	for _, c := range menuOrder {
		if w.IsVisible(c) {
			cards = append(cards, c)
		}
	}
	return cards
}

// Selected returns the selected card.
func (w *World) Selected() Card {
	return w.cards.selected
}

// SelectNext moves the selection one visible card forward. It stays on the
// last card.
func (w *World) SelectNext() Card {
	return w.moveSelection(1)
}

// SelectPrevious moves the selection one visible card back. It stays on the
// first card.
func (w *World) SelectPrevious() Card {
	return w.moveSelection(-1)
}

func (w *World) moveSelection(step int) Card {
	cards := w.AvailableCards()
	i := slices.Index(cards, w.cards.selected)
	if i < 0 {
		w.cards.selected = cards[0]
		return w.cards.selected
	}
	i = min(max(i+step, 0), len(cards)-1)
	w.cards.selected = cards[i]
	return w.cards.selected
}

type milestones struct {
	visible bool
}

func (m *milestones) discover() {
	if m.visible {
		panic("world: milestones discovered twice")
	}
	m.visible = true
}

type staff struct {
	researchers quantity.Quantity[quantity.Person]
}

type research struct {
	progress      quantity.Quantity[quantity.ResearchPoint]
	perResearcher quantity.Rate[quantity.ResearchPoint]
}

func newResearch(b config.Balance) research {
	return research{
		perResearcher: quantity.NewRate(quantity.New[quantity.ResearchPoint](b.ResearchPerResearcher), duration.Hour),
	}
}

func (w *World) simulateResearch(delta duration.Duration) {
	r := &w.cards.research
	n := w.cards.staff.researchers.Whole()
	if n.IsZero() {
		return
	}
	r.progress = r.progress.Add(r.perResearcher.Integrate(delta).Mul128(n))
}

// AssignResearchers asks n more supporters to do research. Researchers keep
// supporting, so the save rate is unaffected. It reports false and changes
// nothing if fewer than n supporters are unassigned.
func (w *World) AssignResearchers(n uint64) bool {
	assigned := w.cards.staff.researchers.AddWhole(n)
	if w.cards.activism.supporting.Less(assigned) {
		return false
	}
	w.cards.staff.researchers = assigned
	return true
}

// ResearchProgress returns the research points accumulated so far.
func (w *World) ResearchProgress() quantity.Quantity[quantity.ResearchPoint] {
	return w.cards.research.progress
}

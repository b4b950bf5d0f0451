package world

import (
	"strconv"

	"github.com/jogru0/save-the-planet/internal/config"
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// Action is a player command. It replaces raw key input.
type Action int

const (
	ActionHandout          Action = iota // hand out one flyer
	ActionPrint                          // print one flyer
	ActionAssignResearcher               // move one more supporter into research
)

func (a Action) String() string {
	switch a {
	case ActionHandout:
		return "handout"
	case ActionPrint:
		return "print"
	case ActionAssignResearcher:
		return "assign researcher"
	}
	return "action(" + strconv.Itoa(int(a)) + ")"
}

const prologSteps = 6

var prologPrintTexts = [prologSteps]string{
	"need to print more",
	"oh no, not enough saved",
	"still need to wait xyz minutes",
	"dont be impatient",
	"on the other hand",
	"maybe its fine to",
}

type activism struct {
	// Print attempts made during the prolog; prologSteps means the main
	// stage has started.
	prologStep int

	emission     quantity.Balance[quantity.Emission]
	flyers       quantity.Quantity[quantity.Flyer]
	supporting   quantity.Quantity[quantity.Person]
	unsupporting quantity.Quantity[quantity.Person]
	saveRate     quantity.Rate[quantity.Emission]

	persuasiveness quantity.Quantity[quantity.Person] // per flyer
	effectiveness  quantity.Rate[quantity.Emission]   // per supporter
	printCost      quantity.Quantity[quantity.Emission]
	maxDeficit     quantity.Quantity[quantity.Emission]
}

func newActivism(b config.Balance) activism {
	return activism{
		flyers:         quantity.New[quantity.Flyer](b.InitialFlyers),
		unsupporting:   quantity.New[quantity.Person](b.Population),
		saveRate:       quantity.ZeroRate[quantity.Emission](),
		persuasiveness: quantity.Fraction[quantity.Person](1, b.InitialFlyers),
		effectiveness:  quantity.NewRate(quantity.New[quantity.Emission](b.SavedPerSupporter), duration.Year),
		printCost:      quantity.New[quantity.Emission](b.FlyerPrintCost),
	}
}

func (a *activism) inProlog() bool {
	return a.prologStep < prologSteps
}

// InProlog reports whether the scripted opening is still running.
func (w *World) InProlog() bool {
	return w.cards.activism.inProlog()
}

// Act applies a player action and reports whether it had an effect.
func (w *World) Act(action Action) bool {
	if w.cards.activism.inProlog() {
		return w.actProlog(action)
	}
	switch action {
	case ActionHandout:
		return w.HandoutFlyer()
	case ActionPrint:
		return w.PrintFlyer()
	case ActionAssignResearcher:
		return w.AssignResearchers(1)
	}
	return false
}

// actProlog runs the opening: hand out every flyer, then keep trying to
// print until the emission deficit allowance is raised.
func (w *World) actProlog(action Action) bool {
	a := &w.cards.activism
	if !a.flyers.IsZero() {
		return action == ActionHandout && w.HandoutFlyer()
	}
	if action != ActionPrint {
		return false
	}

	step := a.prologStep
	printed := w.PrintFlyer()
	a.prologStep++
	if step == prologSteps-2 {
		w.setMaximalEmissionDeficit(quantity.New[quantity.Emission](w.balance.MaximalDeficit))
	}
	if !a.inProlog() {
		w.log.Info("prolog finished", "at", w.total)
	}
	return printed
}

// Prompt returns the prolog text for the current step, or "" once the main
// stage has started.
func (w *World) Prompt() string {
	a := &w.cards.activism
	if !a.inProlog() {
		return ""
	}
	if !a.flyers.IsZero() {
		if a.flyers.Whole().Equals64(1) {
			return "Last Hope"
		}
		return a.flyers.Text(0)
	}
	return prologPrintTexts[a.prologStep]
}

// HandoutFlyer spends one flyer to persuade part of a person. Every whole
// person persuaded adds one supporter's worth to the save rate.
func (w *World) HandoutFlyer() bool {
	a := &w.cards.activism
	if a.unsupporting.IsZero() || !a.flyers.TryPay(quantity.New[quantity.Flyer](1)) {
		return false
	}

	before := a.supporting.Whole()
	a.supporting = a.supporting.Add(a.unsupporting.SaturatingSub(a.persuasiveness))
	recruited := a.supporting.Whole().Sub(before)
	if !recruited.IsZero() {
		a.saveRate = a.saveRate.Add(a.effectiveness.Mul(recruited.Lo))
		w.log.Info("supporter recruited", "supporters", a.supporting.Text(0), "rate", a.saveRate.Text(4))
	}
	return true
}

// PrintFlyer prints a flyer if its emissions keep the balance within the
// allowed deficit.
func (w *World) PrintFlyer() bool {
	a := &w.cards.activism

	projected := a.emission
	projected.Debit(a.printCost)
	projected.Credit(a.maxDeficit)
	if projected.Net().IsNegative() {
		return false
	}

	a.emission.Debit(a.printCost)
	w.post(SideDebit, a.printCost)
	a.flyers = a.flyers.AddWhole(1)
	return true
}

func (w *World) setMaximalEmissionDeficit(limit quantity.Quantity[quantity.Emission]) {
	a := &w.cards.activism
	if !a.maxDeficit.Less(limit) {
		panic("world: maximal emission deficit can only grow")
	}
	a.maxDeficit = limit
	w.messages.Queue(NewMessage("Increased maximal emission deficit to "+limit.Text(2), duration.Second.Mul(10)))
}

func (w *World) simulateActivism(delta duration.Duration) {
	a := &w.cards.activism
	saved := a.saveRate.Integrate(delta)
	a.emission.Credit(saved)
	w.post(SideCredit, saved)
}

// Emission returns the saved-emissions ledger.
func (w *World) Emission() quantity.Balance[quantity.Emission] {
	return w.cards.activism.emission
}

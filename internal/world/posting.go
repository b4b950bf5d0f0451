package world

import (
	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
)

// LedgerEmission names the saved-emissions ledger.
const LedgerEmission = "emission"

// Side is the ledger side a posting goes to.
type Side string

const (
	SideCredit Side = "credit"
	SideDebit  Side = "debit"
)

// Posting is a single credit or debit to a ledger.
type Posting struct {
	At     duration.Duration
	Ledger string
	Side   Side
	Amount quantity.Quantity[quantity.Emission]
}

// Recorder receives every posting made by the world.
type Recorder interface {
	Record(p Posting) error
}

func (w *World) post(side Side, amount quantity.Quantity[quantity.Emission]) {
	if w.recorder == nil || amount.IsZero() {
		return
	}
	p := Posting{At: w.total, Ledger: LedgerEmission, Side: side, Amount: amount}
	if err := w.recorder.Record(p); err != nil {
		w.log.Error("failed to record posting", "error", err, "side", side, "amount", amount.Text(6), "at", w.total)
	}
}

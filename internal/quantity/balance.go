package quantity

// Balance is a two-sided ledger of lifetime credits and lifetime debits.
// Both sides only ever grow; the signed net is derived on demand.
// The zero value is an empty ledger.
type Balance[U Unit] struct {
	pos Quantity[U]
	neg Quantity[U]
}

// NewBalance returns an empty ledger.
func NewBalance[U Unit]() Balance[U] {
	return Balance[U]{}
}

// Credit posts amount to the credit side.
func (b *Balance[U]) Credit(amount Quantity[U]) {
	b.pos = b.pos.Add(amount)
}

// Debit posts amount to the debit side.
func (b *Balance[U]) Debit(amount Quantity[U]) {
	b.neg = b.neg.Add(amount)
}

// Credits returns the lifetime credits.
func (b Balance[U]) Credits() Quantity[U] { return b.pos }

// Debits returns the lifetime debits.
func (b Balance[U]) Debits() Quantity[U] { return b.neg }

// Net returns credits minus debits.
func (b Balance[U]) Net() SignedQuantity[U] {
	if b.neg.LessOrEqual(b.pos) {
		return SignedQuantity[U]{magnitude: b.pos.Sub(b.neg), nonNegative: true}
	}
	return SignedQuantity[U]{magnitude: b.neg.Sub(b.pos)}
}

// SignedQuantity is the signed net of a Balance. It is never stored; it
// exists to be compared against thresholds and displayed.
type SignedQuantity[U Unit] struct {
	magnitude   Quantity[U]
	nonNegative bool
}

// Magnitude returns the absolute value.
func (s SignedQuantity[U]) Magnitude() Quantity[U] {
	return s.magnitude
}

// IsNegative reports whether debits exceed credits.
func (s SignedQuantity[U]) IsNegative() bool {
	return !s.nonNegative
}

// CmpQuantity compares s with q. A negative s is less than every quantity.
func (s SignedQuantity[U]) CmpQuantity(q Quantity[U]) int {
	if !s.nonNegative {
		return -1
	}
	return s.magnitude.Cmp(q)
}

// AtLeast reports whether s >= q.
func (s SignedQuantity[U]) AtLeast(q Quantity[U]) bool {
	return s.CmpQuantity(q) >= 0
}

// Less reports whether s < q.
func (s SignedQuantity[U]) Less(q Quantity[U]) bool {
	return s.CmpQuantity(q) < 0
}

// Equals reports whether s == q.
func (s SignedQuantity[U]) Equals(q Quantity[U]) bool {
	return s.CmpQuantity(q) == 0
}

// Text renders s with an explicit sign.
func (s SignedQuantity[U]) Text(precision int) string {
	sign := "+"
	if !s.nonNegative {
		sign = "-"
	}
	return sign + s.magnitude.Text(precision)
}

func (s SignedQuantity[U]) String() string {
	return s.Text(2)
}

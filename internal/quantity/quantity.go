// Package quantity implements exact, unit-tagged fixed-point arithmetic for
// simulated resources.
//
// A Quantity is a whole part plus a residual counted in 1/Granularity
// fractions of a unit. Every operation is integer-only, so integrating a Rate
// over any split of the same elapsed time always yields the same total.
//
// Broken preconditions (underflow, inexact division, unsupported
// denominators) are defects at the call site and panic with an error wrapping
// one of the sentinel errors below. Running short of a resource is an
// ordinary outcome and is reported through TryPay and SaturatingSub instead.
package quantity

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"lukechampine.com/uint128"

	"github.com/jogru0/save-the-planet/internal/duration"
)

var (
	ErrUnderflow       = errors.New("quantity: subtraction underflow")
	ErrInexactDivision = errors.New("quantity: inexact division")
	ErrBadDenominator  = errors.New("quantity: denominator does not divide granularity")
	ErrResidualRange   = errors.New("quantity: residual out of range")
)

var granularity = uint128.From64(duration.Granularity)

// Quantity is a non-negative amount of unit U. The zero value is zero.
type Quantity[U Unit] struct {
	whole uint128.Uint128
	// invariant: residual < granularity
	residual uint128.Uint128
}

// New returns whole units of U.
func New[U Unit](whole uint64) Quantity[U] {
	return Quantity[U]{whole: uint128.From64(whole)}
}

// NewWhole returns whole units of U.
func NewWhole[U Unit](whole uint128.Uint128) Quantity[U] {
	return Quantity[U]{whole: whole}
}

// Fraction returns exactly n/d units of U. d must be non-zero and divide
// duration.Granularity.
func Fraction[U Unit](n, d uint64) Quantity[U] {
	if d == 0 || duration.Granularity%d != 0 {
		panic(fmt.Errorf("%w: %d", ErrBadDenominator, d))
	}
	return Quantity[U]{
		whole:    uint128.From64(n / d),
		residual: uint128.From64(duration.Granularity / d).Mul64(n % d),
	}
}

// FromParts rebuilds a quantity from the values returned by Parts.
func FromParts[U Unit](whole, residual uint128.Uint128) (Quantity[U], error) {
	if residual.Cmp(granularity) >= 0 {
		return Quantity[U]{}, fmt.Errorf("%w: %s", ErrResidualRange, residual)
	}
	return Quantity[U]{whole: whole, residual: residual}, nil
}

// Parts returns the whole part and the residual in 1/Granularity units.
func (q Quantity[U]) Parts() (whole, residual uint128.Uint128) {
	return q.whole, q.residual
}

// Whole returns the whole part, dropping the residual.
func (q Quantity[U]) Whole() uint128.Uint128 {
	return q.whole
}

// IsZero reports whether q is zero.
func (q Quantity[U]) IsZero() bool {
	return q.whole.IsZero() && q.residual.IsZero()
}

func (q *Quantity[U]) increaseResidual(inc uint128.Uint128) {
	carry, rest := q.residual.Add(inc).QuoRem(granularity)
	q.whole = q.whole.Add(carry)
	q.residual = rest
}

// Add returns q + rhs.
func (q Quantity[U]) Add(rhs Quantity[U]) Quantity[U] {
	q.whole = q.whole.Add(rhs.whole)
	q.increaseResidual(rhs.residual)
	return q
}

// AddWhole returns q plus n whole units.
func (q Quantity[U]) AddWhole(n uint64) Quantity[U] {
	q.whole = q.whole.Add64(n)
	return q
}

// Sub returns q - rhs. rhs must not exceed q.
func (q Quantity[U]) Sub(rhs Quantity[U]) Quantity[U] {
	if q.Less(rhs) {
		panic(fmt.Errorf("%w: %s - %s", ErrUnderflow, q.Text(6), rhs.Text(6)))
	}
	var borrow uint64
	if rhs.residual.Cmp(q.residual) <= 0 {
		q.residual = q.residual.Sub(rhs.residual)
	} else {
		borrow = 1
		q.residual = granularity.Add(q.residual).Sub(rhs.residual)
	}
	q.whole = q.whole.Sub(rhs.whole).Sub64(borrow)
	return q
}

// TryPay subtracts amount if q can afford it and reports whether it did.
// On failure q is left untouched.
func (q *Quantity[U]) TryPay(amount Quantity[U]) bool {
	if q.Less(amount) {
		return false
	}
	*q = q.Sub(amount)
	return true
}

// SaturatingSub subtracts as much of amount as q holds and returns the
// amount actually subtracted.
func (q *Quantity[U]) SaturatingSub(amount Quantity[U]) Quantity[U] {
	if amount.LessOrEqual(*q) {
		*q = q.Sub(amount)
		return amount
	}
	actual := *q
	*q = Quantity[U]{}
	return actual
}

// Mul returns q * n.
func (q Quantity[U]) Mul(n uint64) Quantity[U] {
	return q.Mul128(uint128.From64(n))
}

// Mul128 returns q * n.
func (q Quantity[U]) Mul128(n uint128.Uint128) Quantity[U] {
	// Split n so the residual product stays below granularity².
	multiples, rest := n.QuoRem(granularity)

	residual := q.residual
	q.residual = uint128.Zero
	q.whole = q.whole.Mul(n).Add(residual.Mul(multiples))
	q.increaseResidual(residual.Mul(rest))
	return q
}

// divideExactly returns q / divisor and panics unless the division is exact
// at Granularity resolution.
func (q Quantity[U]) divideExactly(divisor uint128.Uint128) Quantity[U] {
	if divisor.IsZero() {
		panic(fmt.Errorf("%w: division by zero", ErrInexactDivision))
	}
	whole, carried := q.whole.QuoRem(divisor)
	residual, rest := q.residual.Add(carried.Mul(granularity)).QuoRem(divisor)
	if !rest.IsZero() {
		panic(fmt.Errorf("%w: %s / %s leaves %s", ErrInexactDivision, q.Text(6), divisor, rest))
	}
	return Quantity[U]{whole: whole, residual: residual}
}

// Cmp compares q and o and returns -1, 0 or +1.
func (q Quantity[U]) Cmp(o Quantity[U]) int {
	if c := q.whole.Cmp(o.whole); c != 0 {
		return c
	}
	return q.residual.Cmp(o.residual)
}

// Less reports whether q < o.
func (q Quantity[U]) Less(o Quantity[U]) bool {
	return q.Cmp(o) < 0
}

// LessOrEqual reports whether q <= o.
func (q Quantity[U]) LessOrEqual(o Quantity[U]) bool {
	return q.Cmp(o) <= 0
}

// Text renders q with at most precision decimal places followed by the unit
// suffix. The value is truncated, never rounded up, and trailing zeros are
// dropped.
func (q Quantity[U]) Text(precision int) string {
	var u U
	whole, frac := q.decimal(precision)
	return joinDecimal(whole.String(), frac) + u.Suffix()
}

// Humanize is like Text but groups thousands.
func (q Quantity[U]) Humanize(precision int) string {
	var u U
	whole, frac := q.decimal(precision)
	return joinDecimal(humanize.BigComma(whole), frac) + u.Suffix()
}

func (q Quantity[U]) String() string {
	return q.Text(2)
}

// decimal splits q, truncated to precision decimal places, into its integer
// part and its fractional digits without trailing zeros. The arithmetic is
// exact for any magnitude and precision.
func (q Quantity[U]) decimal(precision int) (*big.Int, string) {
	precision = max(precision, 0)
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)

	digits := new(big.Int).Mul(scaled(q), factor)
	digits.Quo(digits, granularity.Big())
	whole, frac := digits.QuoRem(digits, factor, new(big.Int))
	if precision == 0 {
		return whole, ""
	}

	f := frac.String()
	f = strings.Repeat("0", precision-len(f)) + f
	return whole, strings.TrimRight(f, "0")
}

func joinDecimal(whole, frac string) string {
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

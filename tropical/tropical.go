package tropical

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNegativeWeight is the panic payload of Finite for a negative weight.
var ErrNegativeWeight = errors.New("tropical: finite weight must be non-negative")

// Value is an element of the tropical semiring: a finite non-negative weight
// or +∞. The zero Value is Infinite.
type Value struct {
	w *big.Int // nil ⇔ Infinite
}

// Infinite returns the +∞ element.
func Infinite() Value { return Value{} }

// Zero returns Finite(0), the multiplicative identity of the semiring.
func Zero() Value { return Value{w: new(big.Int)} }

// Finite returns the finite element with weight w. The argument is copied.
// Panics with ErrNegativeWeight if w < 0 and on a nil w.
func Finite(w *big.Int) Value {
	if w == nil {
		panic("tropical: nil weight")
	}
	if w.Sign() < 0 {
		panic(fmt.Errorf("%w: %s", ErrNegativeWeight, w))
	}

	return Value{w: new(big.Int).Set(w)}
}

// FiniteInt64 is Finite for a machine integer.
func FiniteInt64(w int64) Value {
	if w < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeWeight, w))
	}

	return Value{w: big.NewInt(w)}
}

// IsInfinite reports whether v is +∞.
func (v Value) IsInfinite() bool { return v.w == nil }

// IsFinite reports whether v carries a weight.
func (v Value) IsFinite() bool { return v.w != nil }

// Weight returns a copy of the finite weight and true, or nil and false for
// Infinite.
func (v Value) Weight() (*big.Int, bool) {
	if v.w == nil {
		return nil, false
	}

	return new(big.Int).Set(v.w), true
}

// String renders the weight in base 10, or "∞".
func (v Value) String() string {
	if v.w == nil {
		return "∞"
	}

	return v.w.String()
}

// Compare returns -1, 0 or +1 as a is less than, equal to, or greater than b.
func Compare(a, b Value) int {
	switch {
	case a.w == nil && b.w == nil:
		return 0
	case a.w == nil:
		return 1
	case b.w == nil:
		return -1
	default:
		return a.w.Cmp(b.w)
	}
}

// Less reports a < b. Infinite is never less than anything.
func Less(a, b Value) bool { return Compare(a, b) < 0 }

// LessOrEqual reports a ≤ b. Everything is ≤ Infinite.
func LessOrEqual(a, b Value) bool { return Compare(a, b) <= 0 }

// Equal reports a == b.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// Add is the semiring product: Finite(a)+Finite(b) = Finite(a+b), and any
// sum involving Infinite is Infinite.
func Add(a, b Value) Value {
	if a.w == nil || b.w == nil {
		return Value{}
	}

	return Value{w: new(big.Int).Add(a.w, b.w)}
}

// Min is the semiring sum. When a and b are equal, a is returned.
func Min(a, b Value) Value {
	if LessOrEqual(a, b) {
		return a
	}

	return b
}

// MinOf folds Min over vs starting from Infinite.
func MinOf(vs ...Value) Value {
	acc := Infinite()
	for _, v := range vs {
		acc = Min(acc, v)
	}

	return acc
}

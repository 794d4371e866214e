// Package rational provides exact fractional arithmetic for league and game
// points, avoiding the rounding drift that floating point would introduce
// when ranked points are split between tied teams (e.g. two teams splitting
// 8+6 points share 7 each, not 6.999999...).
package rational

import "math/big"

// Rat is an exact rational number.
type Rat struct {
	r *big.Rat
}

// Zero returns the rational 0.
func Zero() Rat {
	return Rat{big.NewRat(0, 1)}
}

// FromInt builds a rational from an integer.
func FromInt(n int64) Rat {
	return Rat{big.NewRat(n, 1)}
}

// FromFraction builds a rational num/den.
func FromFraction(num, den int64) Rat {
	return Rat{big.NewRat(num, den)}
}

func (a Rat) ratOrZero() *big.Rat {
	if a.r == nil {
		return big.NewRat(0, 1)
	}
	return a.r
}

// Add returns a + b.
func (a Rat) Add(b Rat) Rat {
	return Rat{new(big.Rat).Add(a.ratOrZero(), b.ratOrZero())}
}

// DivInt returns a / n.
func (a Rat) DivInt(n int64) Rat {
	return Rat{new(big.Rat).Quo(a.ratOrZero(), big.NewRat(n, 1))}
}

// Cmp compares a to b: -1, 0 or 1.
func (a Rat) Cmp(b Rat) int {
	return a.ratOrZero().Cmp(b.ratOrZero())
}

// Equal reports whether a == b.
func (a Rat) Equal(b Rat) bool {
	return a.Cmp(b) == 0
}

// Float64 returns the nearest float64 approximation, for display purposes
// only -- never for scoring comparisons.
func (a Rat) Float64() float64 {
	f, _ := a.ratOrZero().Float64()
	return f
}

// String renders in decimal form with legacy 0.1-granularity data in mind.
func (a Rat) String() string {
	return a.ratOrZero().FloatString(3)
}

// Package rhythm implements the exact rational duration model for music
// elements and the structural codec between a node's Rhythm child and an
// explicit numerator/denominator pair. It is usable standalone, e.g. by
// formatters that need duration-aware layout.
package rhythm

// Rational is an exact rational number. The zero value is 0/1. Values
// are kept normalized: gcd(Num, Den) == 1 and Den > 0.
type Rational struct {
	Num int64
	Den int64
}

// New returns the normalized rational num/den. A zero den is treated as 1.
func New(num, den int64) Rational {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g > 1 {
		num /= g
		den /= g
	}
	return Rational{Num: num, Den: den}
}

// One is the rational 1/1, the implicit default duration.
func One() Rational { return Rational{Num: 1, Den: 1} }

// Zero is the rational 0/1.
func Zero() Rational { return Rational{Num: 0, Den: 1} }

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return New(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

// Mul returns r × o.
func (r Rational) Mul(o Rational) Rational {
	return New(r.Num*o.Num, r.Den*o.Den)
}

// Div returns r ÷ o. Division by zero returns Zero.
func (r Rational) Div(o Rational) Rational {
	if o.Num == 0 {
		return Zero()
	}
	return New(r.Num*o.Den, r.Den*o.Num)
}

// MulInt returns r × k.
func (r Rational) MulInt(k int64) Rational {
	return New(r.Num*k, r.Den)
}

// DivInt returns r ÷ k. k must be nonzero.
func (r Rational) DivInt(k int64) Rational {
	return New(r.Num, r.Den*k)
}

// Cmp returns -1, 0, or +1 as r is less than, equal to, or greater
// than o.
func (r Rational) Cmp(o Rational) int {
	lhs := r.Num * o.Den
	rhs := o.Num * r.Den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	}
	return 0
}

// Min returns the smaller of r and o.
func (r Rational) Min(o Rational) Rational {
	if r.Cmp(o) <= 0 {
		return r
	}
	return o
}

// IsOne reports whether r equals 1/1.
func (r Rational) IsOne() bool { return r.Num == 1 && r.Den == 1 }

// IsZero reports whether r equals 0.
func (r Rational) IsZero() bool { return r.Num == 0 }

// RoundToInt returns r rounded to the nearest integer, halves away from
// zero.
func (r Rational) RoundToInt() int64 {
	if r.Num >= 0 {
		return (2*r.Num + r.Den) / (2 * r.Den)
	}
	return -((-2*r.Num + r.Den) / (2 * r.Den))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

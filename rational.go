// Package symdiff implements a symbolic differentiator: a small expression
// language over rational constants, variables, arithmetic operators, and a
// fixed set of transcendental functions, differentiated term-by-term and
// reduced by a multi-pass algebraic simplifier.
package symdiff

import "fmt"

// Rational is a reduced fraction with machine-word numerator and
// denominator. Den is always > 0 after construction; reduction to lowest
// terms happens eagerly so that two equal values always compare byte-equal.
//
// There is no arbitrary-precision fallback: overflow is not checked beyond
// what int64 arithmetic naturally allows.
type Rational struct {
	Num, Den int64
}

// RatZero, RatOne and RatNegOne are the identities most rewrite rules compare against.
var (
	RatZero   = Rational{0, 1}
	RatOne    = Rational{1, 1}
	RatNegOne = Rational{-1, 1}
)

func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// NewRational reduces num/den to lowest terms with a positive denominator.
// den == 0 sets the round's divide-by-zero flag and returns the zero value;
// callers that care must check r separately via the round context.
func (r *Round) NewRational(num, den int64) Rational {
	if den == 0 {
		r.DividedByZero = true
		return Rational{0, 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Rational{0, 1}
	}
	g := gcd64(num, den)
	return Rational{num / g, den / g}
}

// NewRationalInt builds an integer rational; never fails.
func NewRationalInt(n int64) Rational { return Rational{n, 1} }

func (a Rational) IsZero() bool   { return a.Num == 0 }
func (a Rational) IsOne() bool    { return a.Num == a.Den }
func (a Rational) IsNegOne() bool { return a.Num == -a.Den }
func (a Rational) IsInteger() bool {
	return a.Den == 1
}
func (a Rational) IsNegative() bool { return a.Num < 0 }
func (a Rational) IsPositive() bool { return a.Num > 0 }

func (a Rational) Neg() Rational { return Rational{-a.Num, a.Den} }

func (a Rational) Abs() Rational {
	if a.Num < 0 {
		return Rational{-a.Num, a.Den}
	}
	return a
}

func (r *Round) RatAdd(a, b Rational) Rational {
	return r.NewRational(a.Num*b.Den+b.Num*a.Den, a.Den*b.Den)
}

func (r *Round) RatSub(a, b Rational) Rational {
	return r.NewRational(a.Num*b.Den-b.Num*a.Den, a.Den*b.Den)
}

func (r *Round) RatMul(a, b Rational) Rational {
	return r.NewRational(a.Num*b.Num, a.Den*b.Den)
}

func (r *Round) RatDiv(a, b Rational) Rational {
	return r.NewRational(a.Num*b.Den, a.Den*b.Num)
}

func RatEqual(a, b Rational) bool { return a.Num == b.Num && a.Den == b.Den }

func RatCmp(a, b Rational) int {
	l := a.Num * b.Den
	rr := b.Num * a.Den
	switch {
	case l < rr:
		return -1
	case l > rr:
		return 1
	default:
		return 0
	}
}

func (a Rational) String() string {
	if a.Den == 1 {
		return fmt.Sprintf("%d", a.Num)
	}
	return fmt.Sprintf("%d/%d", a.Num, a.Den)
}

// lcm64 is used by the finalization pass's polynomial-GCD extraction:
// gcd(num)/lcm(den) over the term list.
func lcm64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd64(a, b) * b
}

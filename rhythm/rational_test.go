package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Normalizes(t *testing.T) {
	assert.Equal(t, Rational{Num: 1, Den: 2}, New(2, 4))
	assert.Equal(t, Rational{Num: 3, Den: 2}, New(3, 2))
	assert.Equal(t, Rational{Num: -1, Den: 2}, New(1, -2))
	assert.Equal(t, Rational{Num: 1, Den: 2}, New(-1, -2))
	assert.Equal(t, Rational{Num: 0, Den: 1}, New(0, 7))
	// Zero denominator treated as 1.
	assert.Equal(t, Rational{Num: 5, Den: 1}, New(5, 0))
}

func TestArithmetic(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)

	assert.Equal(t, New(5, 6), half.Add(third))
	assert.Equal(t, New(1, 6), half.Mul(third))
	assert.Equal(t, New(3, 2), half.Div(third))
	assert.Equal(t, New(3, 2), half.MulInt(3))
	assert.Equal(t, New(1, 6), half.DivInt(3))
	assert.Equal(t, Zero(), half.Div(Zero()))
}

func TestCmpAndMin(t *testing.T) {
	assert.Equal(t, -1, New(1, 3).Cmp(New(1, 2)))
	assert.Equal(t, 0, New(2, 4).Cmp(New(1, 2)))
	assert.Equal(t, 1, New(3, 4).Cmp(New(1, 2)))
	assert.Equal(t, New(1, 3), New(1, 2).Min(New(1, 3)))
}

func TestRoundToInt_HalvesAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(0), New(1, 3).RoundToInt())
	assert.Equal(t, int64(1), New(1, 2).RoundToInt())
	assert.Equal(t, int64(2), New(3, 2).RoundToInt())
	assert.Equal(t, int64(-1), New(-1, 2).RoundToInt())
	assert.Equal(t, int64(-2), New(-3, 2).RoundToInt())
	assert.Equal(t, int64(3), New(3, 1).RoundToInt())
}

func TestPredicates(t *testing.T) {
	assert.True(t, One().IsOne())
	assert.False(t, New(2, 2).IsZero())
	assert.True(t, New(2, 2).IsOne())
	assert.True(t, Zero().IsZero())
}

package ltv

import (
	"testing"

	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccrue(t *testing.T) {
	p := &core.Position{
		Principal:         decimal.NewFromInt(40),
		OriginalPrincipal: decimal.NewFromInt(40),
		AccrualMark:       100,
	}

	interest := Accrue(p, 500, 101)
	assert.True(t, decimal.NewFromInt(2).Equal(interest))
	assert.True(t, decimal.NewFromInt(42).Equal(p.Principal))
	assert.Equal(t, int64(101), p.AccrualMark)

	// idempotent within the same period
	interest = Accrue(p, 500, 101)
	assert.True(t, interest.IsZero())
	assert.True(t, decimal.NewFromInt(42).Equal(p.Principal))

	// original principal never catches up with capitalized debt
	assert.True(t, p.OriginalPrincipal.LessThanOrEqual(p.Principal))
}

func TestAccrueCompoundsPerTouch(t *testing.T) {
	coarse := &core.Position{Principal: decimal.NewFromInt(100), AccrualMark: 0}
	fine := &core.Position{Principal: decimal.NewFromInt(100), AccrualMark: 0}

	Accrue(coarse, 500, 2)

	Accrue(fine, 500, 1)
	Accrue(fine, 500, 2)

	// touching more often compounds more finely
	assert.True(t, fine.Principal.GreaterThan(coarse.Principal))
	assert.True(t, decimal.NewFromInt(110).Equal(coarse.Principal))
	assert.True(t, decimal.RequireFromString("110.25").Equal(fine.Principal))
}

func TestAccrueNoDebt(t *testing.T) {
	p := &core.Position{Collateral: decimal.NewFromInt(100), AccrualMark: 5}

	interest := Accrue(p, 500, 50)
	assert.True(t, interest.IsZero())
	assert.Equal(t, int64(5), p.AccrualMark)
}

func TestAccrueBackwardMark(t *testing.T) {
	p := &core.Position{Principal: decimal.NewFromInt(40), AccrualMark: 100}

	interest := Accrue(p, 500, 99)
	assert.True(t, interest.IsZero())
	assert.Equal(t, int64(100), p.AccrualMark)
}

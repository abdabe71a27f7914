package oracle

import (
	"testing"
	"time"

	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	now := time.Now()

	price, err := Validate(&core.PriceTicker{
		Price:     decimal.NewFromInt(2),
		UpdatedAt: now.Add(-time.Minute),
	}, time.Hour, now)
	require.Nil(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(price))

	_, err = Validate(&core.PriceTicker{
		Price:     decimal.NewFromInt(2),
		UpdatedAt: now.Add(-2 * time.Hour),
	}, time.Hour, now)
	assert.Equal(t, core.ErrStalePrice, err)

	_, err = Validate(&core.PriceTicker{
		Price:     decimal.Zero,
		UpdatedAt: now,
	}, time.Hour, now)
	assert.Equal(t, core.ErrInvalidPrice, err)

	_, err = Validate(&core.PriceTicker{
		Price:     decimal.NewFromInt(-1),
		UpdatedAt: now,
	}, time.Hour, now)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

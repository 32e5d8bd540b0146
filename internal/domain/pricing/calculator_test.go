//go:build unit

package pricing_test

import (
	"testing"

	"studio-booking/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func moneyPtr(m pricing.Money) *pricing.Money { return &m }

func mustRule(t *testing.T, category pricing.Category, minHours int, maxHours *int, flat, hourly *pricing.Money) pricing.RateRule {
	t.Helper()
	r, err := pricing.NewRateRule(uuid.New(), category, minHours, maxHours, flat, hourly)
	require.NoError(t, err)
	return r
}

func TestNewRateRule(t *testing.T) {
	t.Run("needs at least one price component", func(t *testing.T) {
		_, err := pricing.NewRateRule(uuid.New(), pricing.CategoryStandard, 0, nil, nil, nil)
		assert.ErrorIs(t, err, pricing.ErrRuleWithoutPrice)
	})

	t.Run("rejects inverted bracket", func(t *testing.T) {
		flat := pricing.NewMoneyFromUnits(5000)
		_, err := pricing.NewRateRule(uuid.New(), pricing.CategoryStandard, 4, intPtr(2), &flat, nil)
		assert.ErrorIs(t, err, pricing.ErrRuleBadBracket)
	})

	t.Run("single-hour bracket is valid", func(t *testing.T) {
		flat := pricing.NewMoneyFromUnits(5000)
		_, err := pricing.NewRateRule(uuid.New(), pricing.CategoryStandard, 2, intPtr(2), &flat, nil)
		assert.NoError(t, err)
	})
}

func TestComputeCharge(t *testing.T) {
	t.Run("hourly rate scales with duration", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryStandard, 0, nil,
			nil, moneyPtr(pricing.NewMoneyFromUnits(8500)))

		charge, err := pricing.ComputeCharge(pricing.CategoryStandard, 120, []pricing.RateRule{rule})
		require.NoError(t, err)
		assert.Equal(t, int64(1_700_000), charge.Cents())
	})

	t.Run("hourly rate prorates partial hours in integer cents", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryStandard, 0, nil,
			nil, moneyPtr(pricing.NewMoneyFromUnits(8500)))

		charge, err := pricing.ComputeCharge(pricing.CategoryStandard, 90, []pricing.RateRule{rule})
		require.NoError(t, err)
		assert.Equal(t, int64(1_275_000), charge.Cents())
	})

	t.Run("flat rate ignores duration within its bracket", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryExtended, 3, intPtr(5),
			moneyPtr(pricing.NewMoneyFromUnits(11000)), nil)

		for _, minutes := range []int{180, 240, 300} {
			charge, err := pricing.ComputeCharge(pricing.CategoryExtended, minutes, []pricing.RateRule{rule})
			require.NoError(t, err)
			assert.Equal(t, int64(1_100_000), charge.Cents())
		}
	})

	t.Run("mixed rule adds hourly on top of flat", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryStandard, 0, nil,
			moneyPtr(pricing.NewMoneyFromUnits(2000)),
			moneyPtr(pricing.NewMoneyFromUnits(8000)))

		charge, err := pricing.ComputeCharge(pricing.CategoryStandard, 60, []pricing.RateRule{rule})
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), charge.Cents())
	})

	t.Run("every matching rule contributes", func(t *testing.T) {
		base := mustRule(t, pricing.CategoryStandard, 0, nil,
			nil, moneyPtr(pricing.NewMoneyFromUnits(8500)))
		surcharge := mustRule(t, pricing.CategoryStandard, 2, nil,
			moneyPtr(pricing.NewMoneyFromUnits(1000)), nil)

		charge, err := pricing.ComputeCharge(pricing.CategoryStandard, 120, []pricing.RateRule{base, surcharge})
		require.NoError(t, err)
		assert.Equal(t, int64(1_800_000), charge.Cents())
	})

	t.Run("bracket bounds are inclusive", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryStandard, 2, intPtr(4),
			moneyPtr(pricing.NewMoneyFromUnits(9000)), nil)
		rules := []pricing.RateRule{rule}

		_, err := pricing.ComputeCharge(pricing.CategoryStandard, 119, rules)
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)

		charge, err := pricing.ComputeCharge(pricing.CategoryStandard, 120, rules)
		require.NoError(t, err)
		assert.Equal(t, int64(900_000), charge.Cents())

		charge, err = pricing.ComputeCharge(pricing.CategoryStandard, 240, rules)
		require.NoError(t, err)
		assert.Equal(t, int64(900_000), charge.Cents())

		_, err = pricing.ComputeCharge(pricing.CategoryStandard, 241, rules)
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)
	})

	t.Run("category must match", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryExtended, 0, nil,
			moneyPtr(pricing.NewMoneyFromUnits(11000)), nil)

		_, err := pricing.ComputeCharge(pricing.CategoryStandard, 120, []pricing.RateRule{rule})
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)
	})

	t.Run("no rules at all", func(t *testing.T) {
		_, err := pricing.ComputeCharge(pricing.CategoryStandard, 120, nil)
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		rule := mustRule(t, pricing.CategoryStandard, 0, nil,
			moneyPtr(pricing.NewMoneyFromUnits(11000)), nil)

		_, err := pricing.ComputeCharge(pricing.CategoryStandard, 0, []pricing.RateRule{rule})
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)
	})
}

func TestMoney(t *testing.T) {
	t.Run("negative cents rejected", func(t *testing.T) {
		_, err := pricing.NewMoneyFromCents(-1)
		assert.Error(t, err)
	})

	t.Run("string renders two fractional digits", func(t *testing.T) {
		assert.Equal(t, "8500.00", pricing.NewMoneyFromUnits(8500).String())
		assert.Equal(t, "12.05", pricing.NewMoney(1205).String())
	})
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"Standard", "Extended"} {
		c, err := pricing.ParseCategory(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, c.String())
	}

	_, err := pricing.ParseCategory("standard")
	assert.Error(t, err)
	_, err = pricing.ParseCategory("")
	assert.Error(t, err)
}

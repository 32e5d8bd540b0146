package pricing

import (
	"errors"
	"fmt"
)

// Money is an amount in integer cents. All charge arithmetic stays in
// cents so repeated hourly computations never accumulate float drift.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromUnits converts a whole-currency amount (e.g. 11000) to Money.
func NewMoneyFromUnits(units int64) Money {
	return Money{cents: units * 100}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// PerHourFor applies an hourly amount over a duration in minutes.
// Integer arithmetic: cents * minutes / 60.
func (m Money) PerHourFor(minutes int) Money {
	return Money{cents: m.cents * int64(minutes) / 60}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// String renders the amount with two fractional digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

type Category string

const (
	CategoryStandard Category = "Standard"
	CategoryExtended Category = "Extended"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryExtended:
		return true
	default:
		return false
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

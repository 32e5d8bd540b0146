package pricing

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRuleWithoutPrice = errors.New("rate rule needs a flat or hourly price")
	ErrRuleBadBracket   = errors.New("rate rule maximum must be >= minimum")
)

// RateRule prices reservations of a duration bracket for one client
// category. Either price component may be absent, but not both; when both
// are present the flat amount is a base and the hourly amount applies on
// top for the full duration.
type RateRule struct {
	id       uuid.UUID
	category Category
	minHours int
	maxHours *int // nil = unbounded
	flat     *Money
	hourly   *Money
}

func NewRateRule(id uuid.UUID, category Category, minHours int, maxHours *int, flat, hourly *Money) (RateRule, error) {
	if flat == nil && hourly == nil {
		return RateRule{}, ErrRuleWithoutPrice
	}
	if maxHours != nil && *maxHours < minHours {
		return RateRule{}, ErrRuleBadBracket
	}
	return RateRule{
		id:       id,
		category: category,
		minHours: minHours,
		maxHours: maxHours,
		flat:     flat,
		hourly:   hourly,
	}, nil
}

func (r RateRule) ID() uuid.UUID      { return r.id }
func (r RateRule) Category() Category { return r.category }
func (r RateRule) MinHours() int      { return r.minHours }
func (r RateRule) MaxHours() *int     { return r.maxHours }
func (r RateRule) Flat() *Money       { return r.flat }
func (r RateRule) Hourly() *Money     { return r.hourly }

// AppliesTo reports whether the bracket [min, max] contains the duration,
// inclusive on both ends.
func (r RateRule) AppliesTo(category Category, durationMinutes int) bool {
	if r.category != category {
		return false
	}
	if durationMinutes < r.minHours*60 {
		return false
	}
	if r.maxHours != nil && durationMinutes > *r.maxHours*60 {
		return false
	}
	return true
}

// chargeFor resolves this rule's contribution for a duration in minutes.
func (r RateRule) chargeFor(durationMinutes int) Money {
	var total Money
	if r.flat != nil {
		total = total.Add(*r.flat)
	}
	if r.hourly != nil {
		total = total.Add(r.hourly.PerHourFor(durationMinutes))
	}
	return total
}

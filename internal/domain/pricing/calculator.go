package pricing

import "errors"

var ErrNoRateRule = errors.New("no rate rule covers this duration")

// ComputeCharge resolves the total charge for a reservation of the given
// duration and client category. Every rule whose bracket contains the
// duration contributes; contributions are summed, so a flat-only rule and
// an hourly-only rule covering the same bracket combine additively, as do
// the two components of a single mixed rule.
func ComputeCharge(category Category, durationMinutes int, rules []RateRule) (Money, error) {
	if durationMinutes <= 0 {
		return Money{}, ErrNoRateRule
	}

	var total Money
	matched := false
	for _, r := range rules {
		if !r.AppliesTo(category, durationMinutes) {
			continue
		}
		matched = true
		total = total.Add(r.chargeFor(durationMinutes))
	}
	if !matched {
		return Money{}, ErrNoRateRule
	}
	return total, nil
}

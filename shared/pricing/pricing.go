// Package pricing computes booking totals. It is pure and side-effect free:
// the allocator calls it on every creation and on every re-price trigger
// (room change, date change, discount change).
package pricing

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Nights returns the number of billable nights for the half-open stay
// [from, to). Stays shorter than one full day are billed as a single night.
func Nights(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / hoursPerDay)
	if days < 1 {
		return 1
	}

	return days
}

// Total returns the price of a stay: basePrice per night, floored at one
// night, reduced by discountPercent. The result is rounded to cents.
func Total(basePrice float64, from, to time.Time, discountPercent float64) float64 {
	total := basePrice * float64(Nights(from, to)) * (1 - discountPercent/100)

	return math.Round(total*100) / 100
}

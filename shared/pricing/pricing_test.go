package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gostitut/shared/pricing"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "two nights", from: "2024-01-01", to: "2024-01-03", want: 2},
		{name: "single night", from: "2024-01-01", to: "2024-01-02", want: 1},
		{name: "same day floored to one", from: "2024-01-01", to: "2024-01-01", want: 1},
		{name: "week", from: "2024-02-01", to: "2024-02-08", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.Nights(date(tt.from), date(tt.to)))
		})
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		from     string
		to       string
		discount float64
		want     float64
	}{
		{name: "two nights with discount", base: 100, from: "2024-01-01", to: "2024-01-03", discount: 10, want: 180.00},
		{name: "same day floored to one night", base: 100, from: "2024-01-01", to: "2024-01-01", discount: 0, want: 100},
		{name: "full discount", base: 250, from: "2024-01-01", to: "2024-01-04", discount: 100, want: 0},
		{name: "no discount", base: 150, from: "2024-03-10", to: "2024-03-12", discount: 0, want: 300},
		{name: "fractional result rounded to cents", base: 99.99, from: "2024-01-01", to: "2024-01-02", discount: 33.33, want: 66.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Total(tt.base, date(tt.from), date(tt.to), tt.discount)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestTotalDeterministic(t *testing.T) {
	from, to := date("2024-01-01"), date("2024-01-05")

	first := pricing.Total(120, from, to, 15)
	for range 10 {
		assert.Equal(t, first, pricing.Total(120, from, to, 15))
	}
}

package report

import (
	"github.com/shopspring/decimal"
)

// DaySnapshot holds the raw counters of one calendar day.
type DaySnapshot struct {
	Bookings        int64
	Revenue         decimal.Decimal
	RevenueBookings int64
	DurationMinutes int64
	NewCustomers    int64
}

// AvgServiceMinutes is the mean estimated duration of revenue-countable
// bookings, zero when there were none.
func (s DaySnapshot) AvgServiceMinutes() decimal.Decimal {
	if s.RevenueBookings == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.DurationMinutes).
		Div(decimal.NewFromInt(s.RevenueBookings)).
		Round(2)
}

type Metric struct {
	Today         decimal.Decimal `json:"today"`
	Yesterday     decimal.Decimal `json:"yesterday"`
	Delta         decimal.Decimal `json:"delta"`
	GrowthPercent decimal.Decimal `json:"growth_percent"`
}

type Dashboard struct {
	Date           string `json:"date"`
	Bookings       Metric `json:"bookings"`
	Revenue        Metric `json:"revenue"`
	NewCustomers   Metric `json:"new_customers"`
	AvgServiceTime Metric `json:"avg_service_time"`
}

var hundred = decimal.NewFromInt(100)

// Compare builds a today-versus-yesterday metric. Growth is relative to
// yesterday; from a zero baseline any increase counts as 100%.
func Compare(today, yesterday decimal.Decimal) Metric {
	m := Metric{
		Today:     today,
		Yesterday: yesterday,
		Delta:     today.Sub(yesterday),
	}

	switch {
	case yesterday.IsZero() && today.IsPositive():
		m.GrowthPercent = hundred
	case yesterday.IsZero():
		m.GrowthPercent = decimal.Zero
	default:
		m.GrowthPercent = m.Delta.Div(yesterday).Mul(hundred).Round(2)
	}
	return m
}

func BuildDashboard(date string, today, yesterday DaySnapshot) Dashboard {
	return Dashboard{
		Date:           date,
		Bookings:       Compare(decimal.NewFromInt(today.Bookings), decimal.NewFromInt(yesterday.Bookings)),
		Revenue:        Compare(today.Revenue, yesterday.Revenue),
		NewCustomers:   Compare(decimal.NewFromInt(today.NewCustomers), decimal.NewFromInt(yesterday.NewCustomers)),
		AvgServiceTime: Compare(today.AvgServiceMinutes(), yesterday.AvgServiceMinutes()),
	}
}

package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingRevenue is the slice of a revenue-countable booking that the
// monthly report needs.
type BookingRevenue struct {
	AppointmentDate time.Time
	TotalPrice      decimal.Decimal
}

// ServiceLine is one booked service of a revenue-countable booking.
type ServiceLine struct {
	ServiceID   uint
	ServiceName string
	Price       decimal.Decimal
}

type MonthlyRevenue struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type ServiceRevenue struct {
	ServiceID uint            `json:"service_id"`
	Service   string          `json:"service"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// AggregateMonthly groups bookings by calendar month in loc. Months are
// labelled MM/YYYY, ascending, and months without bookings are omitted.
func AggregateMonthly(rows []BookingRevenue, loc *time.Location) []MonthlyRevenue {
	type bucket struct {
		first time.Time
		row   MonthlyRevenue
	}

	buckets := map[string]*bucket{}
	for _, r := range rows {
		t := r.AppointmentDate.In(loc)
		label := t.Format("01/2006")

		b, ok := buckets[label]
		if !ok {
			b = &bucket{
				first: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc),
				row:   MonthlyRevenue{Month: label, Total: decimal.Zero},
			}
			buckets[label] = b
		}
		b.row.Total = b.row.Total.Add(r.TotalPrice)
		b.row.Count++
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].first.Before(ordered[j].first)
	})

	out := make([]MonthlyRevenue, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.row)
	}
	return out
}

// AggregateByService sums pinned line prices per service, highest total
// first and then by name.
func AggregateByService(lines []ServiceLine) []ServiceRevenue {
	byID := map[uint]*ServiceRevenue{}
	for _, l := range lines {
		s, ok := byID[l.ServiceID]
		if !ok {
			s = &ServiceRevenue{ServiceID: l.ServiceID, Service: l.ServiceName, Total: decimal.Zero}
			byID[l.ServiceID] = s
		}
		s.Total = s.Total.Add(l.Price)
		s.Count++
	}

	out := make([]ServiceRevenue, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		if n := strings.Compare(out[i].Service, out[j].Service); n != 0 {
			return n < 0
		}
		return out[i].ServiceID < out[j].ServiceID
	})
	return out
}

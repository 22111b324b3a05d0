package report

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// Filter selects the bookings a revenue report covers. From and To are
// calendar days, both inclusive, and take precedence over Year.
type Filter struct {
	Year       int
	From       *time.Time
	To         *time.Time
	EmployeeID *uint
	BranchID   *uint
}

// Query is a resolved Filter with a half-open [Start, End) window.
type Query struct {
	Start      time.Time
	End        time.Time
	EmployeeID *uint
	BranchID   *uint
}

func yearWindow(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}

// Resolve turns the filter into a window in loc. Without any bounds the
// current year of now is used.
func (f Filter) Resolve(now time.Time, loc *time.Location) (Query, error) {
	q := Query{EmployeeID: f.EmployeeID, BranchID: f.BranchID}

	switch {
	case f.From != nil || f.To != nil:
		if f.From != nil {
			q.Start = timezone.StartOfDay(f.From.In(loc))
		}
		if f.To != nil {
			q.End = timezone.StartOfDay(f.To.In(loc)).AddDate(0, 0, 1)
		}
		if f.From == nil {
			q.Start, _ = yearWindow(q.End.AddDate(0, 0, -1).Year(), loc)
		}
		if f.To == nil {
			_, q.End = yearWindow(q.Start.Year(), loc)
		}
		if f.From != nil && f.To != nil && f.From.After(*f.To) {
			return Query{}, httperr.ErrValidation("invalid_date_range", "from must not be after to")
		}

	case f.Year != 0:
		if f.Year < 1970 || f.Year > 9999 {
			return Query{}, httperr.ErrValidation("invalid_year", fmt.Sprintf("year %d is out of range", f.Year))
		}
		q.Start, q.End = yearWindow(f.Year, loc)

	default:
		q.Start, q.End = yearWindow(now.In(loc).Year(), loc)
	}

	return q, nil
}

// CacheKey identifies the query for caching purposes.
func (q Query) CacheKey(kind string) string {
	var emp, branch uint
	if q.EmployeeID != nil {
		emp = *q.EmployeeID
	}
	if q.BranchID != nil {
		branch = *q.BranchID
	}
	return fmt.Sprintf("report:%s:%d:%d:%d:%d", kind, q.Start.Unix(), q.End.Unix(), emp, branch)
}

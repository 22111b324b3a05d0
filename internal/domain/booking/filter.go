package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var sortColumns = map[string]string{
	"appointment_date": "appointment_date",
	"appointmentDate":  "appointment_date",
	"created_at":       "created_at",
	"createdAt":        "created_at",
	"total_price":      "total_price",
	"totalPrice":       "total_price",
	"status":           "status",
}

type ListFilter struct {
	Keyword       string
	Page          int
	Size          int
	SortBy        string
	SortDirection string

	EmployeeID *uint
	BranchID   *uint
	CustomerID *uint
	Status     string

	DateFrom *time.Time
	DateTo   *time.Time
}

// Normalize applies defaults and rejects unknown sort keys or statuses.
// SortBy is rewritten to a column name.
func (f *ListFilter) Normalize() error {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Size <= 0 {
		f.Size = DefaultPageSize
	}
	if f.Size > MaxPageSize {
		f.Size = MaxPageSize
	}

	if f.SortBy == "" {
		f.SortBy = "appointment_date"
	}
	col, ok := sortColumns[f.SortBy]
	if !ok {
		return httperr.ErrValidation("invalid_sort_by", "cannot sort by "+f.SortBy)
	}
	f.SortBy = col

	f.SortDirection = strings.ToLower(f.SortDirection)
	switch f.SortDirection {
	case "":
		f.SortDirection = "desc"
	case "asc", "desc":
	default:
		return httperr.ErrValidation("invalid_sort_direction", "sort direction must be asc or desc")
	}

	if f.Status != "" {
		if _, err := ParseStatus(f.Status); err != nil {
			return err
		}
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return httperr.ErrValidation("invalid_date_range", "dateFrom must not be after dateTo")
	}

	f.Keyword = strings.TrimSpace(f.Keyword)
	return nil
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Size
}

// OrderClause qualifies the sort column with table and breaks ties by id.
func (f *ListFilter) OrderClause(table string) string {
	dir := strings.ToUpper(f.SortDirection)
	return table + "." + f.SortBy + " " + dir + ", " + table + ".id " + dir
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

func TestListFilter_Defaults(t *testing.T) {
	f := ListFilter{}
	require.NoError(t, f.Normalize())

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Size)
	assert.Equal(t, "appointment_date", f.SortBy)
	assert.Equal(t, "desc", f.SortDirection)
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, "bookings.appointment_date DESC, bookings.id DESC", f.OrderClause("bookings"))
}

func TestListFilter_ClampsAndMapsSort(t *testing.T) {
	f := ListFilter{Page: 3, Size: 500, SortBy: "totalPrice", SortDirection: "ASC"}
	require.NoError(t, f.Normalize())

	assert.Equal(t, MaxPageSize, f.Size)
	assert.Equal(t, "total_price", f.SortBy)
	assert.Equal(t, 200, f.Offset())
}

func TestListFilter_Rejects(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	cases := map[string]ListFilter{
		"sort column": {SortBy: "password"},
		"direction":   {SortDirection: "up"},
		"status":      {Status: "done"},
		"date range":  {DateFrom: &from, DateTo: &to},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, httperr.IsKind(f.Normalize(), httperr.KindValidation))
		})
	}
}

package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestParseDateTime(t *testing.T) {
	loc := Location(DefaultTimezone)

	got, err := ParseDateTime("2024-03-10 09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, loc, got.Location())

	got, err = ParseDateTime("2024-03-10T02:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())

	_, err = ParseDateTime("10/03/2024", loc)
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	loc := Location(DefaultTimezone)
	in := time.Date(2024, 5, 2, 17, 45, 12, 0, loc)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, loc), StartOfDay(in))
}

package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantaohub/plantao_backend/internal/utils"
)

func TestParseMonth(t *testing.T) {
	want := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	got, err := utils.ParseMonth("2026-08")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A full date normalizes to the first of its month.
	got, err = utils.ParseMonth("2026-08-19")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = utils.ParseMonth("08/2026")
	assert.Error(t, err)

	_, err = utils.ParseMonth("")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := utils.ParseDate("2026-08-19")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC), got)

	_, err = utils.ParseDate("19-08-2026")
	assert.Error(t, err)
}

func TestMonthStartAndAddMonths(t *testing.T) {
	start := utils.MonthStart(time.Date(2026, time.August, 19, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), utils.AddMonths(start, 1))
	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), utils.AddMonths(start, -2))
	// Year boundary.
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), utils.AddMonths(start, 5))
}

func TestDateOnly(t *testing.T) {
	got := utils.DateOnly(time.Date(2026, time.August, 19, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC), got)
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC)
	assert.True(t, utils.SameMonth(a, b))

	// Same month number, different year.
	c := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, utils.SameMonth(a, c))

	d := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, utils.SameMonth(a, d))
}

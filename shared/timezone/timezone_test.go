package timezone_test

import (
	"bookingpay/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestFormatAndParse(t *testing.T) {
	formatted := timezone.Format(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "2006-01-02 15:04:05 MST")
	assert.NotEmpty(t, formatted)

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	assert.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
}

func TestAddDays(t *testing.T) {
	base := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), timezone.AddDays(base, 7))
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), timezone.AddDays(base, 14))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), timezone.AddDays(base, 30))
	assert.Equal(t, time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), timezone.AddDays(base, -2))
}

package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillstay/guesthouse-backend/internal/booking"
)

func TestParseDateRange(t *testing.T) {
	t.Run("Parses dates to midnight UTC", func(t *testing.T) {
		in, out, err := parseDateRange("2026-03-10", "2026-03-12")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), in)
		assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), out)
	})

	t.Run("Rejects malformed dates", func(t *testing.T) {
		_, _, err := parseDateRange("10-03-2026", "2026-03-12")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

		_, _, err = parseDateRange("2026-03-10", "not-a-date")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("Rejects inverted and zero-length ranges", func(t *testing.T) {
		_, _, err := parseDateRange("2026-03-12", "2026-03-10")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

		_, _, err = parseDateRange("2026-03-10", "2026-03-10")
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})
}

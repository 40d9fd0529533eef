package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatParisTimestamp(t *testing.T) {
	t.Run("renders french day and month names", func(t *testing.T) {
		ts := time.Date(2026, time.September, 1, 15, 4, 0, 0, parisLocation)
		assert.Equal(t, "mardi 1 septembre 2026 à 15h04", formatParisTimestamp(ts))
	})

	t.Run("converts to the practice timezone", func(t *testing.T) {
		// Midnight UTC in winter is 01h00 in Paris
		ts := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
		got := formatParisTimestamp(ts)
		assert.Contains(t, got, "janvier")
		assert.Contains(t, got, "01h00")
		assert.Contains(t, got, "samedi")
	})

	t.Run("zero-pads minutes", func(t *testing.T) {
		ts := time.Date(2026, time.March, 5, 9, 7, 0, 0, parisLocation)
		assert.Equal(t, "jeudi 5 mars 2026 à 09h07", formatParisTimestamp(ts))
	})
}

// Package calc is the derived-calculation engine of the diagnostic.
// Everything here is a pure function of the session's current values:
// outputs are recomputed on every read and never cached or persisted
// independently of the state they were derived from.
package calc

import (
	"strconv"

	"ceo-diagnostic-be/pkg/wizard"
)

// ParseAmount coerces a raw input field to a number. Empty strings and
// garbage degrade to 0 rather than erroring; the diagnostic must never
// crash on partial input.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// TotalScore sums the category ratings. Range [0, 10*N].
func TotalScore(entries []wizard.ScoreEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Score
	}
	return total
}

package calc

import (
	"testing"

	"ceo-diagnostic-be/pkg/wizard"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain integer", raw: "5000", want: 5000},
		{name: "decimal", raw: "12.5", want: 12.5},
		{name: "empty is zero", raw: "", want: 0},
		{name: "garbage is zero", raw: "abc", want: 0},
		{name: "trailing junk is zero", raw: "12x", want: 0},
		{name: "explicit zero", raw: "0", want: 0},
		{name: "negative passes through", raw: "-3", want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.raw); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTotalScore(t *testing.T) {
	entries := make([]wizard.ScoreEntry, 0, 9)
	for i := 0; i < 9; i++ {
		entries = append(entries, wizard.ScoreEntry{CategoryID: "c", Score: 8})
	}
	assert.Equal(t, 72, TotalScore(entries))

	entries[3].Score = 0
	assert.Equal(t, 64, TotalScore(entries))

	assert.Equal(t, 0, TotalScore(nil))
}

// The coercion law: a non-numeric or empty field behaves identically to
// "0" for every downstream formula.
func TestCoercionLaw(t *testing.T) {
	garbage := wizard.ROIInputs{
		OfferPrice:      "not-a-number",
		ClientsPerMonth: "",
		CloseRate:       "??",
		RevenueGoal:     "500000",
	}
	zeroed := wizard.ROIInputs{
		OfferPrice:      "0",
		ClientsPerMonth: "0",
		CloseRate:       "0",
		RevenueGoal:     "500000",
	}

	assert.Equal(t, Simple(ParseSimpleInputs(garbage)), Simple(ParseSimpleInputs(zeroed)))
}

func TestSimpleIdempotent(t *testing.T) {
	in := SimpleInputs{OfferPrice: 5000, ClientsPerMonth: 4, RevenueGoal: 500000, ProgramInvestment: 30000}
	assert.Equal(t, Simple(in), Simple(in))
}

package calc

import (
	"math"

	"ceo-diagnostic-be/pkg/wizard"
)

// SimpleInputs are the coerced numbers of the simple ROI model.
type SimpleInputs struct {
	OfferPrice        float64 `json:"offer_price"`
	ClientsPerMonth   float64 `json:"clients_per_month"`
	CloseRate         float64 `json:"close_rate"`
	RevenueGoal       float64 `json:"revenue_goal"`
	MonthsToGoal      float64 `json:"months_to_goal"`
	ProgramInvestment float64 `json:"program_investment"`
}

// ParseSimpleInputs applies the parse-or-zero coercion to every raw field.
func ParseSimpleInputs(raw wizard.ROIInputs) SimpleInputs {
	return SimpleInputs{
		OfferPrice:        ParseAmount(raw.OfferPrice),
		ClientsPerMonth:   ParseAmount(raw.ClientsPerMonth),
		CloseRate:         ParseAmount(raw.CloseRate),
		RevenueGoal:       ParseAmount(raw.RevenueGoal),
		MonthsToGoal:      ParseAmount(raw.MonthsToGoal),
		ProgramInvestment: ParseAmount(raw.ProgramInvestment),
	}
}

// SimpleOutputs is the projection of the simple model. RevenueGap > 0
// means a shortfall against the goal; <= 0 means the goal is met or
// exceeded at the current run rate.
type SimpleOutputs struct {
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	AnnualRevenue       float64 `json:"annual_revenue"`
	ProjectedRevenue    float64 `json:"projected_revenue"`
	RevenueGap          float64 `json:"revenue_gap"`
	TotalInvestmentGain float64 `json:"total_investment_gain"`
	ROIPercentage       float64 `json:"roi_percentage"`
	ROIMultiple         float64 `json:"roi_multiple"`

	// Insight fields shown alongside the headline numbers.
	MonthlyGap              float64 `json:"monthly_gap"`
	AdditionalClientsNeeded int     `json:"additional_clients_needed"`
	LeadsNeededPerMonth     int     `json:"leads_needed_per_month"`
	IsCalculated            bool    `json:"is_calculated"`
}

// Simple computes the simple ROI model. The revenue goal is the source
// of truth for the projected figure; it is passed through untouched.
func Simple(in SimpleInputs) SimpleOutputs {
	monthlyRevenue := in.OfferPrice * in.ClientsPerMonth
	annualRevenue := monthlyRevenue * 12
	revenueGap := in.RevenueGoal - annualRevenue

	// Total Investment Gain = Revenue Goal - Program Investment,
	// per the client's formula sheet.
	totalInvestmentGain := in.RevenueGoal - in.ProgramInvestment

	roiPercentage := 0.0
	roiMultiple := 0.0
	if in.ProgramInvestment > 0 {
		roiPercentage = (totalInvestmentGain / in.ProgramInvestment) * 100
		roiMultiple = in.RevenueGoal / in.ProgramInvestment
	}

	additionalClients := 0
	if in.OfferPrice > 0 {
		additionalClients = int(math.Ceil(revenueGap / (in.OfferPrice * 12)))
	}

	leadsNeeded := 0
	if effectiveCloseRate := in.CloseRate / 100; effectiveCloseRate > 0 {
		leadsNeeded = int(math.Ceil(in.ClientsPerMonth / effectiveCloseRate))
	}

	return SimpleOutputs{
		MonthlyRevenue:          monthlyRevenue,
		AnnualRevenue:           annualRevenue,
		ProjectedRevenue:        in.RevenueGoal,
		RevenueGap:              revenueGap,
		TotalInvestmentGain:     totalInvestmentGain,
		ROIPercentage:           roiPercentage,
		ROIMultiple:             roiMultiple,
		MonthlyGap:              revenueGap / 12,
		AdditionalClientsNeeded: additionalClients,
		LeadsNeededPerMonth:     leadsNeeded,
		IsCalculated:            in.OfferPrice > 0 && in.ClientsPerMonth > 0 && in.RevenueGoal > 0,
	}
}

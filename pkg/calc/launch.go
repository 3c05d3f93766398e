package calc

import (
	"math"

	"ceo-diagnostic-be/pkg/wizard"
)

// Program investment terms of the multi-launch model.
const (
	TotalInvestment = 35000
	InitialPayment  = 5000
	MonthlyPayment  = 3000
)

// cashFlowMonths spans the program year, March through February.
var cashFlowMonths = []string{
	"March", "April", "May", "June", "July", "August",
	"September", "October", "November", "December", "January", "February",
}

// LaunchInputs are the coerced numbers of the multi-launch model plus
// the framework score that drives execution capacity.
type LaunchInputs struct {
	RevenueGoal        float64 `json:"revenue_goal_2026"`
	FounderClients     float64 `json:"founder_clients"`
	FounderPrice       float64 `json:"founder_price"`
	UnstoppableClients float64 `json:"unstoppable_clients"`
	UnstoppablePrice   float64 `json:"unstoppable_price"`
	NumLaunches        float64 `json:"num_launches"`
	TotalScore         int     `json:"total_score"`
	MaxScore           int     `json:"max_score"`
}

// ParseLaunchInputs applies the parse-or-zero coercion to every raw field.
func ParseLaunchInputs(raw wizard.LaunchInputs, totalScore, maxScore int) LaunchInputs {
	return LaunchInputs{
		RevenueGoal:        ParseAmount(raw.RevenueGoal2026),
		FounderClients:     ParseAmount(raw.FounderClients),
		FounderPrice:       ParseAmount(raw.FounderPrice),
		UnstoppableClients: ParseAmount(raw.UnstoppableClients),
		UnstoppablePrice:   ParseAmount(raw.UnstoppablePrice),
		NumLaunches:        ParseAmount(raw.NumLaunches),
		TotalScore:         totalScore,
		MaxScore:           maxScore,
	}
}

// MonthCash is one month of a cash-flow scenario. Value is the net
// figure after the month's program payment, if any.
type MonthCash struct {
	Month   string `json:"month"`
	Value   int    `json:"value"`
	Payment int    `json:"payment"`
}

// LaunchOutputs is the projection of the multi-launch model. Rounded
// fields round half away from zero, matching the original tool.
type LaunchOutputs struct {
	FounderRevenue         float64 `json:"founder_revenue"`
	UnstoppableRevenue     float64 `json:"unstoppable_revenue"`
	RevenuePerLaunch       float64 `json:"revenue_per_launch"`
	ProjectedAnnualRevenue float64 `json:"projected_annual_revenue"`

	// ExecutionCapacity maps the framework score onto a percentage,
	// capped at 100.
	ExecutionCapacity int `json:"execution_capacity"`
	RevenueOnOwn      int `json:"revenue_on_own"`
	RevenueGapAlone   int `json:"revenue_gap_alone"`
	UnrealizedRevenue int `json:"unrealized_revenue"`

	ROIPercentage int `json:"roi_percentage"`
	Revenue75     int `json:"revenue_75"`
	ROI75         int `json:"roi_75"`
	Revenue50     int `json:"revenue_50"`
	ROI50         int `json:"roi_50"`

	CashFlowAlone     []MonthCash `json:"cash_flow_alone"`
	CashFlowSupported []MonthCash `json:"cash_flow_supported"`
	TotalAlone        int         `json:"total_alone"`
	TotalSupported    int         `json:"total_supported"`
	NetCashPosition   int         `json:"net_cash_position"`
}

func round(v float64) int {
	return int(math.Round(v))
}

func investmentROI(revenue float64) int {
	return round((revenue - TotalInvestment) / TotalInvestment * 100)
}

// Launch computes the multi-launch ROI model.
func Launch(in LaunchInputs) LaunchOutputs {
	founderRevenue := in.FounderClients * in.FounderPrice
	unstoppableRevenue := in.UnstoppableClients * in.UnstoppablePrice
	revenuePerLaunch := founderRevenue + unstoppableRevenue
	projected := revenuePerLaunch * in.NumLaunches

	capacity := 0
	if in.MaxScore > 0 {
		capacity = round(float64(in.TotalScore) / float64(in.MaxScore) * 100)
		if capacity > 100 {
			capacity = 100
		}
	}
	revenueOnOwn := round(projected * float64(capacity) / 100)
	revenueGapAlone := round(projected) - revenueOnOwn

	revenue75 := round(projected * 0.75)
	revenue50 := round(projected * 0.50)

	// Alone: capacity-limited revenue spread evenly across the year.
	monthlyAlone := float64(revenueOnOwn) / 12
	cashFlowAlone := make([]MonthCash, 0, len(cashFlowMonths))
	totalAlone := 0
	for _, month := range cashFlowMonths {
		value := round(monthlyAlone)
		cashFlowAlone = append(cashFlowAlone, MonthCash{Month: month, Value: value})
		totalAlone += value
	}

	// Supported: full projection minus the payment schedule. Initial
	// payment in month 1, monthly payments in months 2-11, none in the
	// final month.
	monthlySupported := projected / 12
	cashFlowSupported := make([]MonthCash, 0, len(cashFlowMonths))
	totalSupported := 0
	for i, month := range cashFlowMonths {
		payment := 0
		switch {
		case i == 0:
			payment = InitialPayment
		case i < 11:
			payment = MonthlyPayment
		}
		value := round(monthlySupported - float64(payment))
		cashFlowSupported = append(cashFlowSupported, MonthCash{Month: month, Value: value, Payment: payment})
		totalSupported += value
	}

	return LaunchOutputs{
		FounderRevenue:         founderRevenue,
		UnstoppableRevenue:     unstoppableRevenue,
		RevenuePerLaunch:       revenuePerLaunch,
		ProjectedAnnualRevenue: projected,
		ExecutionCapacity:      capacity,
		RevenueOnOwn:           revenueOnOwn,
		RevenueGapAlone:        revenueGapAlone,
		UnrealizedRevenue:      revenueGapAlone,
		ROIPercentage:          investmentROI(projected),
		Revenue75:              revenue75,
		ROI75:                  investmentROI(float64(revenue75)),
		Revenue50:              revenue50,
		ROI50:                  investmentROI(float64(revenue50)),
		CashFlowAlone:          cashFlowAlone,
		CashFlowSupported:      cashFlowSupported,
		TotalAlone:             totalAlone,
		TotalSupported:         totalSupported,
		NetCashPosition:        totalSupported,
	}
}

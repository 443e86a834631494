// Package presenter maps a validated analysis report onto the chart-ready
// view model the frontend renders. It is pure: no I/O, no decisions beyond
// arithmetic on the report's fields.
package presenter

import "solar_feasibility_backend/internal/analysis/domain"

// seasonalFactors spreads the monthly average generation across the year.
var seasonalFactors = [12]float64{0.85, 0.90, 0.95, 1.00, 1.05, 1.10, 1.10, 1.05, 1.00, 0.95, 0.90, 0.85}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const co2ProjectionYears = 25

// ReportView is the full presentation payload for one analysis.
type ReportView struct {
	Overview          Overview           `json:"overview"`
	Technical         Technical          `json:"technical"`
	MonthlyGeneration []MonthPoint       `json:"monthlyGeneration"`
	Energy            Energy             `json:"energy"`
	Financial         *Financial         `json:"financial,omitempty"`
	Environmental     *Environmental     `json:"environmental,omitempty"`
	Recommendations   *Recommendations   `json:"recommendations,omitempty"`
}

// Overview holds the headline scorecards.
type Overview struct {
	FeasibilityScore   float64 `json:"feasibilityScore"`
	ScoreBand          string  `json:"scoreBand"` // green, yellow, red
	PaybackPeriodYears float64 `json:"paybackPeriodYears"`
	AnnualCO2Kg        float64 `json:"annualCo2ReductionKg"`
	ReturnOnInvestment float64 `json:"returnOnInvestmentPercent"`
}

// Technical holds the system metric cards.
type Technical struct {
	UsableRoofAreaM2    float64 `json:"usableRoofAreaM2"`
	RecommendedKW       float64 `json:"recommendedCapacityKw"`
	PanelCount          int     `json:"panelCount"`
	DailyIrradiance     float64 `json:"dailyIrradianceKwhPerM2"`
	RoofOrientation     string  `json:"roofOrientation"`
	SystemEfficiencyPct float64 `json:"systemEfficiencyPercent"`
}

// MonthPoint is one bar of the monthly generation chart.
type MonthPoint struct {
	Month         string  `json:"month"`
	GenerationKWh float64 `json:"generationKwh"`
}

// Energy holds the generation metric cards.
type Energy struct {
	DailyKWh   float64 `json:"dailyGenerationKwh"`
	MonthlyKWh float64 `json:"monthlyGenerationKwh"`
	AnnualKWh  float64 `json:"annualGenerationKwh"`
}

// CostSlice is one slice of the installation cost pie.
type CostSlice struct {
	Label     string  `json:"label"`
	AmountINR float64 `json:"amountInr"`
}

// Financial holds cost and savings figures plus the pie breakdown.
type Financial struct {
	TotalCostINR         float64     `json:"totalInstallationCostInr"`
	SubsidyINR           float64     `json:"subsidyAmountInr"`
	NetCostINR           float64     `json:"netCostInr"`
	AnnualSavingsINR     float64     `json:"annualSavingsInr"`
	LifetimeSavingsINR   float64     `json:"lifetimeSavingsInr"`
	NetMeteringAvailable bool        `json:"netMeteringAvailable"`
	CostBreakdown        []CostSlice `json:"costBreakdown"`
}

// YearPoint is one point of the cumulative CO2 line.
type YearPoint struct {
	Year    int     `json:"year"`
	CO2Tons float64 `json:"co2Tons"`
}

// Environmental holds impact figures plus the 25-year projection.
type Environmental struct {
	AnnualCO2Kg     float64     `json:"annualCo2ReductionKg"`
	LifetimeCO2Tons float64     `json:"lifetimeCo2ReductionTons"`
	EquivalentTrees float64     `json:"equivalentTreesPlanted"`
	CumulativeCO2   []YearPoint `json:"cumulativeCo2"`
}

// Recommendations holds the textual next-step lists.
type Recommendations struct {
	KeyAdvantages       []string `json:"keyAdvantages"`
	PotentialChallenges []string `json:"potentialChallenges"`
	TimelineMonths      float64  `json:"implementationTimelineMonths"`
}

// BuildReportView renders a validated report. The report must have passed
// domain validation: required sections are dereferenced without checks.
func BuildReportView(report *domain.Report) ReportView {
	tech := report.TechnicalSpecifications
	loc := report.LocationAnalysis
	energy := report.EnergyProduction
	fin := report.FinancialAnalysis

	view := ReportView{
		Overview: Overview{
			PaybackPeriodYears: fin.PaybackPeriodYears,
			ReturnOnInvestment: fin.ReturnOnInvestmentPct,
		},
		Technical: Technical{
			UsableRoofAreaM2:    tech.UsableRoofAreaM2,
			RecommendedKW:       tech.RecommendedCapacityKW,
			PanelCount:          tech.PanelCount,
			DailyIrradiance:     tech.AvgDailyIrradiance,
			RoofOrientation:     loc.RoofOrientation,
			SystemEfficiencyPct: tech.SystemEfficiencyPct,
		},
		MonthlyGeneration: monthlySeries(energy.MonthlyGenerationKWh),
		Energy: Energy{
			DailyKWh:   energy.DailyGenerationKWh,
			MonthlyKWh: energy.MonthlyGenerationKWh,
			AnnualKWh:  energy.AnnualGenerationKWh,
		},
	}

	if rec := report.Recommendations; rec != nil {
		view.Overview.FeasibilityScore = rec.FeasibilityScore
		view.Overview.ScoreBand = scoreBand(rec.FeasibilityScore)
		view.Recommendations = &Recommendations{
			KeyAdvantages:       rec.KeyAdvantages,
			PotentialChallenges: rec.PotentialChallenges,
			TimelineMonths:      rec.ImplementationTimelineMonths,
		}
	}

	view.Financial = buildFinancial(fin, report.RegulatoryBenefits)

	if env := report.EnvironmentalImpact; env != nil {
		view.Overview.AnnualCO2Kg = env.AnnualCO2ReductionKg
		view.Environmental = &Environmental{
			AnnualCO2Kg:     env.AnnualCO2ReductionKg,
			LifetimeCO2Tons: env.TwentyFiveYearCO2Tons,
			EquivalentTrees: env.EquivalentTreesPlanted,
			CumulativeCO2:   cumulativeCO2(env.AnnualCO2ReductionKg),
		}
	}

	return view
}

func monthlySeries(monthlyAverageKWh float64) []MonthPoint {
	points := make([]MonthPoint, len(seasonalFactors))
	for i, factor := range seasonalFactors {
		points[i] = MonthPoint{
			Month:         monthLabels[i],
			GenerationKWh: monthlyAverageKWh * factor,
		}
	}
	return points
}

func buildFinancial(fin *domain.FinancialAnalysis, reg *domain.RegulatoryBenefits) *Financial {
	var subsidy float64
	var netMetering bool
	if reg != nil {
		subsidy = reg.SubsidyAmountINR
		netMetering = reg.NetMeteringAvailable
	}

	return &Financial{
		TotalCostINR:         fin.TotalInstallationCostINR,
		SubsidyINR:           subsidy,
		NetCostINR:           fin.TotalInstallationCostINR - subsidy,
		AnnualSavingsINR:     fin.AnnualSavingsINR,
		LifetimeSavingsINR:   fin.TwentyFiveYearSavingsINR,
		NetMeteringAvailable: netMetering,
		CostBreakdown: []CostSlice{
			{Label: "Base Cost", AmountINR: fin.TotalInstallationCostINR - subsidy},
			{Label: "Subsidy Benefit", AmountINR: subsidy},
		},
	}
}

func cumulativeCO2(annualKg float64) []YearPoint {
	points := make([]YearPoint, co2ProjectionYears)
	for year := 1; year <= co2ProjectionYears; year++ {
		points[year-1] = YearPoint{
			Year:    year,
			CO2Tons: annualKg * float64(year) / 1000,
		}
	}
	return points
}

func scoreBand(score float64) string {
	switch {
	case score >= 7:
		return "green"
	case score >= 5:
		return "yellow"
	default:
		return "red"
	}
}

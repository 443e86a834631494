// Package domain holds the analysis report record and its invariants.
package domain

import "fmt"

// MaxRecommendedCapacityKW caps the recommended system size at 1 MW.
const MaxRecommendedCapacityKW = 1000.0

// Report is the structured feasibility estimate returned by the model.
// The four section pointers below Recommendations are required; the rest
// are optional and omitted from responses when absent.
type Report struct {
	LocationAnalysis        *LocationAnalysis        `json:"location_analysis"`
	TechnicalSpecifications *TechnicalSpecifications `json:"technical_specifications"`
	EnergyProduction        *EnergyProduction        `json:"energy_production"`
	FinancialAnalysis       *FinancialAnalysis       `json:"financial_analysis"`
	EnvironmentalImpact     *EnvironmentalImpact     `json:"environmental_impact,omitempty"`
	RegulatoryBenefits      *RegulatoryBenefits      `json:"regulatory_benefits,omitempty"`
	Recommendations         *Recommendations         `json:"recommendations,omitempty"`
}

// LocationAnalysis describes the site as the model understood it.
type LocationAnalysis struct {
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ClimateZone     string   `json:"climate_zone"`
	RoofOrientation string   `json:"roof_orientation"`
	RoofTiltDegrees float64  `json:"roof_tilt_degrees"`
	ShadingFactor   float64  `json:"shading_factor"`
}

// TechnicalSpecifications sizes the proposed system.
type TechnicalSpecifications struct {
	TotalRoofAreaM2        float64 `json:"total_roof_area_m2"`
	UsableRoofAreaM2       float64 `json:"usable_roof_area_m2"`
	AvgDailyIrradiance     float64 `json:"average_daily_irradiance_kWh_per_m2"`
	RecommendedCapacityKW  float64 `json:"recommended_capacity_kW"`
	PanelCount             int     `json:"panel_count"`
	PanelType              string  `json:"panel_type"`
	InverterCapacityKW     float64 `json:"inverter_capacity_kW"`
	SystemEfficiencyPct    float64 `json:"system_efficiency_percent"`
}

// EnergyProduction estimates generation over time.
type EnergyProduction struct {
	DailyGenerationKWh      float64 `json:"estimated_daily_generation_kWh"`
	MonthlyGenerationKWh    float64 `json:"estimated_monthly_generation_kWh"`
	AnnualGenerationKWh     float64 `json:"estimated_annual_generation_kWh"`
	CapacityUtilizationPct  float64 `json:"capacity_utilization_factor_percent"`
	PerformanceRatio        float64 `json:"performance_ratio"`
}

// FinancialAnalysis estimates cost, savings, and payback.
type FinancialAnalysis struct {
	TotalInstallationCostINR  float64 `json:"total_installation_cost_INR"`
	AnnualSavingsINR          float64 `json:"annual_electricity_savings_INR"`
	PaybackPeriodYears        float64 `json:"payback_period_years"`
	TwentyFiveYearSavingsINR  float64 `json:"25_year_savings_INR"`
	ReturnOnInvestmentPct     float64 `json:"return_on_investment_percent"`
}

// EnvironmentalImpact estimates emission reductions.
type EnvironmentalImpact struct {
	AnnualCO2ReductionKg        float64 `json:"annual_CO2_reduction_kg"`
	TwentyFiveYearCO2Tons       float64 `json:"25_year_CO2_reduction_tons"`
	EquivalentTreesPlanted      float64 `json:"equivalent_trees_planted"`
}

// RegulatoryBenefits lists applicable incentives.
type RegulatoryBenefits struct {
	SubsidyPercentage                float64 `json:"subsidy_percentage"`
	SubsidyAmountINR                 float64 `json:"subsidy_amount_INR"`
	NetMeteringAvailable             bool    `json:"net_metering_available"`
	AcceleratedDepreciationAvailable bool    `json:"accelerated_depreciation_available"`
}

// Recommendations summarizes feasibility and next steps.
type Recommendations struct {
	FeasibilityScore              float64  `json:"feasibility_score"`
	KeyAdvantages                 []string `json:"key_advantages"`
	PotentialChallenges           []string `json:"potential_challenges"`
	ImplementationTimelineMonths  float64  `json:"implementation_timeline_months"`
}

// Validate checks the report shape and numeric invariants. A nil required
// section, a usable area outside (0, total area], or a recommended capacity
// outside (0, 1000] kW all make the report invalid.
func (r *Report) Validate() error {
	if r == nil {
		return fmt.Errorf("report is empty")
	}
	if r.LocationAnalysis == nil {
		return fmt.Errorf("missing required section location_analysis")
	}
	if r.TechnicalSpecifications == nil {
		return fmt.Errorf("missing required section technical_specifications")
	}
	if r.EnergyProduction == nil {
		return fmt.Errorf("missing required section energy_production")
	}
	if r.FinancialAnalysis == nil {
		return fmt.Errorf("missing required section financial_analysis")
	}

	tech := r.TechnicalSpecifications
	if tech.UsableRoofAreaM2 <= 0 || tech.UsableRoofAreaM2 > tech.TotalRoofAreaM2 {
		return fmt.Errorf("usable roof area %.2f m2 must be positive and at most total area %.2f m2",
			tech.UsableRoofAreaM2, tech.TotalRoofAreaM2)
	}
	if tech.RecommendedCapacityKW <= 0 || tech.RecommendedCapacityKW > MaxRecommendedCapacityKW {
		return fmt.Errorf("recommended capacity %.4f kW must be positive and at most %.0f kW",
			tech.RecommendedCapacityKW, MaxRecommendedCapacityKW)
	}

	return nil
}

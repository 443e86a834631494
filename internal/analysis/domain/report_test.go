package domain

import "testing"

func validReport() *Report {
	lat, lon := 28.6139, 77.2090
	return &Report{
		LocationAnalysis: &LocationAnalysis{
			Latitude:        &lat,
			Longitude:       &lon,
			ClimateZone:     "tropical",
			RoofOrientation: "south",
			RoofTiltDegrees: 15,
			ShadingFactor:   0.9,
		},
		TechnicalSpecifications: &TechnicalSpecifications{
			TotalRoofAreaM2:       150,
			UsableRoofAreaM2:      112.5,
			AvgDailyIrradiance:    5.2,
			RecommendedCapacityKW: 16.9,
			PanelCount:            42,
			PanelType:             "monocrystalline",
			InverterCapacityKW:    15,
			SystemEfficiencyPct:   82,
		},
		EnergyProduction: &EnergyProduction{
			DailyGenerationKWh:     96,
			MonthlyGenerationKWh:   2880,
			AnnualGenerationKWh:    33288,
			CapacityUtilizationPct: 19,
			PerformanceRatio:       0.8,
		},
		FinancialAnalysis: &FinancialAnalysis{
			TotalInstallationCostINR: 760500,
			AnnualSavingsINR:         249660,
			PaybackPeriodYears:       3.05,
			TwentyFiveYearSavingsINR: 6241500,
			ReturnOnInvestmentPct:    720,
		},
	}
}

func TestValidate_ValidReport(t *testing.T) {
	if err := validReport().Validate(); err != nil {
		t.Fatalf("expected valid report, got %v", err)
	}
}

func TestValidate_MissingRequiredSections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Report)
	}{
		{"location_analysis", func(r *Report) { r.LocationAnalysis = nil }},
		{"technical_specifications", func(r *Report) { r.TechnicalSpecifications = nil }},
		{"energy_production", func(r *Report) { r.EnergyProduction = nil }},
		{"financial_analysis", func(r *Report) { r.FinancialAnalysis = nil }},
	}

	for _, tc := range cases {
		report := validReport()
		tc.mutate(report)
		if err := report.Validate(); err == nil {
			t.Fatalf("expected report missing %s to be invalid", tc.name)
		}
	}
}

func TestValidate_UsableAreaInvariant(t *testing.T) {
	report := validReport()
	report.TechnicalSpecifications.UsableRoofAreaM2 = report.TechnicalSpecifications.TotalRoofAreaM2 + 1
	if err := report.Validate(); err == nil {
		t.Fatal("expected usable area above total area to be invalid")
	}

	report = validReport()
	report.TechnicalSpecifications.UsableRoofAreaM2 = 0
	if err := report.Validate(); err == nil {
		t.Fatal("expected zero usable area to be invalid")
	}

	report = validReport()
	report.TechnicalSpecifications.UsableRoofAreaM2 = report.TechnicalSpecifications.TotalRoofAreaM2
	if err := report.Validate(); err != nil {
		t.Fatalf("expected usable area equal to total area to be valid, got %v", err)
	}
}

func TestValidate_CapacityBounds(t *testing.T) {
	for _, capacity := range []float64{0, -5, 1000.0001, 2000} {
		report := validReport()
		report.TechnicalSpecifications.RecommendedCapacityKW = capacity
		if err := report.Validate(); err == nil {
			t.Fatalf("expected capacity %v kW to be invalid", capacity)
		}
	}

	report := validReport()
	report.TechnicalSpecifications.RecommendedCapacityKW = 1000
	if err := report.Validate(); err != nil {
		t.Fatalf("expected boundary capacity 1000 kW to be valid, got %v", err)
	}
}

func TestValidCoordinates(t *testing.T) {
	if !ValidCoordinates(28.6139, 77.2090) {
		t.Fatal("expected (28.6139, 77.2090) to be valid")
	}
	if ValidCoordinates(91, 0) {
		t.Fatal("expected latitude 91 to be invalid")
	}
	if ValidCoordinates(0, -181) {
		t.Fatal("expected longitude -181 to be invalid")
	}
	if !ValidCoordinates(-90, 180) {
		t.Fatal("expected boundary (-90, 180) to be valid")
	}
}

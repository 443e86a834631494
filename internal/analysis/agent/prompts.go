package agent

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	maxContextField = 200
	userDataBegin   = "<<<BEGIN_USER_DATA>>>"
	userDataEnd     = "<<<END_USER_DATA>>>"
)

// basePrompt carries the calculation methodology and the strict JSON schema
// the model must follow. The response contract downstream (cleaner, parser,
// validator) depends on this schema staying in sync with domain.Report.
const basePrompt = `
You are an expert solar energy consultant analyzing rooftop solar panel feasibility.
Provide a comprehensive analysis following these guidelines:

CALCULATION METHODOLOGY:
1. Rooftop Area:
   - For images: Estimate usable roof area considering obstacles, shadows, and edge setbacks (typically 70-80% of total)
   - For coordinates: Assume typical residential rooftop (100-200 m²) with 75% usability

2. Solar Irradiance:
   - Use location-specific data if identifiable
   - Default to regional averages (4-6 kWh/m²/day for most regions)
   - Account for seasonal variations

3. System Sizing:
   - Panel efficiency: 20%
   - System losses: 14% (inverter, wiring, temperature, soiling)
   - Recommended capacity = (Usable area × 0.15) kW
   - Panel count = Capacity / 0.4 kW per panel

4. Energy Generation:
   - Daily = Area × Irradiance × Efficiency × System performance
   - Monthly = Daily × 30
   - Annual = Daily × 365 × 0.95 (accounting for maintenance downtime)

5. Financial Analysis:
   - Installation cost: ₹45,000/kW
   - Electricity rate: ₹7.5/kWh
   - Annual savings = Annual generation × Electricity rate
   - Payback period = Total cost / Annual savings

6. Environmental Impact:
   - CO2 savings = Annual generation × 0.82 kg/kWh

RETURN STRICT JSON FORMAT:
{
  "location_analysis": {
    "latitude": <value or null>,
    "longitude": <value or null>,
    "climate_zone": "<tropical/temperate/arid/cold>",
    "roof_orientation": "<north/south/east/west/flat>",
    "roof_tilt_degrees": <0-45>,
    "shading_factor": <0.7-1.0>
  },
  "technical_specifications": {
    "total_roof_area_m2": <value>,
    "usable_roof_area_m2": <value>,
    "average_daily_irradiance_kWh_per_m2": <4-6>,
    "recommended_capacity_kW": <value>,
    "panel_count": <integer>,
    "panel_type": "monocrystalline",
    "inverter_capacity_kW": <value>,
    "system_efficiency_percent": <75-86>
  },
  "energy_production": {
    "estimated_daily_generation_kWh": <value>,
    "estimated_monthly_generation_kWh": <value>,
    "estimated_annual_generation_kWh": <value>,
    "capacity_utilization_factor_percent": <15-25>,
    "performance_ratio": <0.75-0.85>
  },
  "financial_analysis": {
    "total_installation_cost_INR": <value>,
    "annual_electricity_savings_INR": <value>,
    "payback_period_years": <value>,
    "25_year_savings_INR": <value>,
    "return_on_investment_percent": <value>
  },
  "environmental_impact": {
    "annual_CO2_reduction_kg": <value>,
    "25_year_CO2_reduction_tons": <value>,
    "equivalent_trees_planted": <value>
  },
  "regulatory_benefits": {
    "subsidy_percentage": <0-40>,
    "subsidy_amount_INR": <value>,
    "net_metering_available": true/false,
    "accelerated_depreciation_available": true/false
  },
  "recommendations": {
    "feasibility_score": <1-10>,
    "key_advantages": ["advantage1", "advantage2"],
    "potential_challenges": ["challenge1", "challenge2"],
    "implementation_timeline_months": <3-6>
  }
}

For invalid images return: {"error": "Invalid rooftop image", "valid_data": false}
Return ONLY the JSON, no explanations or markdown formatting.
`

// CoordinateContext is the building metadata attached to a coordinate analysis.
type CoordinateContext struct {
	Latitude     float64
	Longitude    float64
	RoofAreaM2   float64
	BuildingType string
	Floors       int
	RoofAccess   string
}

// ImageContext is the metadata attached to an image analysis.
type ImageContext struct {
	RoofType     string
	BuildingType string
	// GPS carries the EXIF coordinate hint when the upload had one.
	GPS *GPSHint
}

// GPSHint is a coordinate pair recovered from image metadata.
type GPSHint struct {
	Latitude  float64
	Longitude float64
}

// BuildCoordinatePrompt prepends the location block to the base instruction.
func BuildCoordinatePrompt(ctx CoordinateContext) string {
	location := fmt.Sprintf(`Analyze rooftop solar panel feasibility for:
- Latitude: %g
- Longitude: %g
- Approximate roof area: %g m²
- Building type: %s
- Number of floors: %d
- Roof accessibility: %s`,
		ctx.Latitude,
		ctx.Longitude,
		ctx.RoofAreaM2,
		sanitizeContext(ctx.BuildingType),
		ctx.Floors,
		sanitizeContext(ctx.RoofAccess),
	)

	return fmt.Sprintf("%s\n\n%s", wrapUserData(location), basePrompt)
}

// BuildImagePrompt appends the roof/building context to the base instruction.
// The image itself travels as an inline part next to this prompt.
func BuildImagePrompt(ctx ImageContext) string {
	context := fmt.Sprintf("Additional context: Roof type is %s, Building type is %s",
		sanitizeContext(ctx.RoofType), sanitizeContext(ctx.BuildingType))
	if ctx.GPS != nil {
		context += fmt.Sprintf("\nThe image metadata places it at latitude %.6f, longitude %.6f.",
			ctx.GPS.Latitude, ctx.GPS.Longitude)
	}

	return fmt.Sprintf("%s\n\n%s", basePrompt, wrapUserData(context))
}

// sanitizeContext removes control characters and truncates to max length.
func sanitizeContext(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	result := sb.String()
	if len(result) > maxContextField {
		result = result[:maxContextField]
	}
	return result
}

// wrapUserData wraps user-provided content with markers to isolate it from instructions
func wrapUserData(content string) string {
	return fmt.Sprintf("%s\n%s\n%s", userDataBegin, content, userDataEnd)
}

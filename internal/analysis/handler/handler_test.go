package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"solar_feasibility_backend/internal/analysis/agent"
	"solar_feasibility_backend/internal/analysis/domain"
	"solar_feasibility_backend/internal/analysis/service"
	"solar_feasibility_backend/platform/logger"
	"solar_feasibility_backend/platform/validator"
)

type stubGenerator struct {
	response string
	calls    int
}

func (g *stubGenerator) Generate(ctx context.Context, req agent.Request) (string, error) {
	g.calls++
	return g.response, nil
}

func validReportJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(validReport())
	if err != nil {
		t.Fatalf("failed to marshal report fixture: %v", err)
	}
	return string(data)
}

func validReport() *domain.Report {
	lat, lon := 28.6139, 77.2090
	return &domain.Report{
		LocationAnalysis: &domain.LocationAnalysis{
			Latitude:        &lat,
			Longitude:       &lon,
			ClimateZone:     "tropical",
			RoofOrientation: "south",
		},
		TechnicalSpecifications: &domain.TechnicalSpecifications{
			TotalRoofAreaM2:       150,
			UsableRoofAreaM2:      110,
			AvgDailyIrradiance:    5,
			RecommendedCapacityKW: 16.5,
			PanelCount:            41,
			SystemEfficiencyPct:   82,
		},
		EnergyProduction: &domain.EnergyProduction{
			DailyGenerationKWh:   90,
			MonthlyGenerationKWh: 2700,
			AnnualGenerationKWh:  31200,
		},
		FinancialAnalysis: &domain.FinancialAnalysis{
			TotalInstallationCostINR: 742500,
			AnnualSavingsINR:         234000,
			PaybackPeriodYears:       3.2,
			TwentyFiveYearSavingsINR: 5850000,
			ReturnOnInvestmentPct:    688,
		},
	}
}

func newTestRouter(gen agent.Generator, maxUpload int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(gen, logger.New("test"))
	h := New(svc, validator.New(), maxUpload)

	engine := gin.New()
	group := engine.Group("/api/v1/analysis")
	group.POST("/coordinates", h.AnalyzeCoordinates)
	group.POST("/image", h.AnalyzeImage)
	group.POST("/export", h.ExportReport)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeCoordinates_Success(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + validReportJSON(t) + "\n```"}
	engine := newTestRouter(gen, 1<<20)

	rec := postJSON(t, engine, "/api/v1/analysis/coordinates", `{"latitude": 28.6139, "longitude": 77.2090}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReportID string         `json:"reportId"`
		Report   *domain.Report `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ReportID == "" {
		t.Fatal("expected a report ID")
	}
	if resp.Report == nil || resp.Report.TechnicalSpecifications == nil {
		t.Fatal("expected the validated report in the response")
	}
	if gen.calls != 1 {
		t.Fatalf("expected a single model call, got %d", gen.calls)
	}
}

func TestAnalyzeCoordinates_RejectsOutOfRange(t *testing.T) {
	gen := &stubGenerator{response: validReportJSON(t)}
	engine := newTestRouter(gen, 1<<20)

	for _, body := range []string{
		`{"latitude": 91, "longitude": 0}`,
		`{"latitude": 0, "longitude": -181}`,
		`{"longitude": 77.2090}`,
	} {
		rec := postJSON(t, engine, "/api/v1/analysis/coordinates", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("expected invalid coordinates never to reach the model, got %d calls", gen.calls)
	}
}

func TestAnalyzeCoordinates_InvalidInputMarker(t *testing.T) {
	gen := &stubGenerator{response: `{"error": "Invalid rooftop image", "valid_data": false}`}
	engine := newTestRouter(gen, 1<<20)

	rec := postJSON(t, engine, "/api/v1/analysis/coordinates", `{"latitude": 28.6139, "longitude": 77.2090}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if gen.calls != 1 {
		t.Fatalf("expected no retry on invalid input, got %d calls", gen.calls)
	}
}

func TestAnalyzeCoordinates_ParseFailureSurfacesUpstreamError(t *testing.T) {
	gen := &stubGenerator{response: "the model rambled instead of answering"}
	engine := newTestRouter(gen, 1<<20)

	rec := postJSON(t, engine, "/api/v1/analysis/coordinates", `{"latitude": 28.6139, "longitude": 77.2090}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if gen.calls != 3 {
		t.Fatalf("expected the full retry bound of 3 attempts, got %d", gen.calls)
	}
	if !strings.Contains(rec.Body.String(), "rambled") {
		t.Fatal("expected the raw response in the diagnostics")
	}
}

func multipartImage(t *testing.T, field string, data []byte, extraFields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "roof.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write image data: %v", err)
	}
	for k, v := range extraFields {
		_ = writer.WriteField(k, v)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

// pngHeader is enough for content-type sniffing to see image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestAnalyzeImage_Success(t *testing.T) {
	gen := &stubGenerator{response: validReportJSON(t)}
	engine := newTestRouter(gen, 1<<20)

	body, contentType := multipartImage(t, "image", pngHeader, map[string]string{
		"roofType":     "Sloped",
		"buildingType": "Commercial",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeImage_RejectsNonImageUpload(t *testing.T) {
	gen := &stubGenerator{response: validReportJSON(t)}
	engine := newTestRouter(gen, 1<<20)

	body, contentType := multipartImage(t, "image", []byte("just some text, not pixels"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if gen.calls != 0 {
		t.Fatal("expected rejected uploads never to reach the model")
	}
}

func TestAnalyzeImage_RejectsOversizedUpload(t *testing.T) {
	gen := &stubGenerator{response: validReportJSON(t)}
	engine := newTestRouter(gen, 8) // tiny cap

	body, contentType := multipartImage(t, "image", pngHeader, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportReport_StreamsAttachment(t *testing.T) {
	engine := newTestRouter(&stubGenerator{}, 1<<20)

	rec := postJSON(t, engine, "/api/v1/analysis/export", validReportJSON(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "solar_feasibility_report.json") {
		t.Fatalf("expected attachment disposition, got %q", disposition)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("expected application/json, got %q", rec.Header().Get("Content-Type"))
	}

	var report domain.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("expected a valid JSON document: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "\n  ") {
		t.Fatal("expected indented JSON output")
	}
}

func TestExportReport_RejectsInvalidReport(t *testing.T) {
	engine := newTestRouter(&stubGenerator{}, 1<<20)

	report := validReport()
	report.TechnicalSpecifications.UsableRoofAreaM2 = report.TechnicalSpecifications.TotalRoofAreaM2 + 50
	data, _ := json.Marshal(report)

	rec := postJSON(t, engine, "/api/v1/analysis/export", string(data))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

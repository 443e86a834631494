// Package service orchestrates an analysis request: prompt construction,
// the model pipeline, and mapping outcomes onto domain errors.
package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"solar_feasibility_backend/internal/analysis/agent"
	"solar_feasibility_backend/internal/analysis/domain"
	"solar_feasibility_backend/internal/analysis/presenter"
	"solar_feasibility_backend/internal/analysis/transport"
	"solar_feasibility_backend/platform/apperr"
	"solar_feasibility_backend/platform/logger"
)

const invalidInputMessage = "the supplied image or location does not show a usable rooftop"

// Service runs feasibility analyses.
type Service struct {
	pipeline *agent.Pipeline
	log      *logger.Logger
}

// New creates the analysis service around a generator.
func New(gen agent.Generator, log *logger.Logger) *Service {
	return &Service{
		pipeline: agent.NewPipeline(gen, log),
		log:      log,
	}
}

// AnalyzeCoordinates runs a location-based analysis.
func (s *Service) AnalyzeCoordinates(ctx context.Context, req transport.CoordinateAnalysisRequest) (*transport.AnalysisResponse, error) {
	lat, lon := *req.Latitude, *req.Longitude
	if !domain.ValidCoordinates(lat, lon) {
		return nil, apperr.Validation("invalid coordinates")
	}

	prompt := agent.BuildCoordinatePrompt(agent.CoordinateContext{
		Latitude:     lat,
		Longitude:    lon,
		RoofAreaM2:   defaultFloat(req.RoofAreaM2, transport.DefaultRoofAreaM2),
		BuildingType: defaultString(req.BuildingType, transport.DefaultBuildingType),
		Floors:       defaultInt(req.Floors, transport.DefaultFloors),
		RoofAccess:   defaultString(req.RoofAccess, transport.DefaultRoofAccess),
	})

	outcome := s.pipeline.Run(ctx, agent.Request{Prompt: prompt})
	return s.respond(outcome)
}

// AnalyzeImage runs an image-based analysis. When the upload carries GPS
// EXIF data the coordinates are passed to the model as a location hint.
func (s *Service) AnalyzeImage(ctx context.Context, img transport.UploadedImage, form transport.ImageAnalysisForm) (*transport.AnalysisResponse, error) {
	imageCtx := agent.ImageContext{
		RoofType:     defaultString(form.RoofType, transport.DefaultRoofType),
		BuildingType: defaultString(form.BuildingType, transport.DefaultBuildingType),
		GPS:          extractGPSHint(img.Data),
	}
	if imageCtx.GPS != nil {
		s.log.Debug("using EXIF GPS hint", "lat", imageCtx.GPS.Latitude, "lon", imageCtx.GPS.Longitude)
	}

	outcome := s.pipeline.Run(ctx, agent.Request{
		Prompt: agent.BuildImagePrompt(imageCtx),
		Image:  &agent.Image{MIMEType: img.MIMEType, Data: img.Data},
	})
	return s.respond(outcome)
}

// ExportReport re-validates a client-held report and serializes it as the
// indented JSON document offered for download.
func (s *Service) ExportReport(report *domain.Report) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, apperr.Validation("report failed validation").WithDetails(err.Error())
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to serialize report", err)
	}
	return data, nil
}

// respond maps the pipeline's terminal outcome onto the HTTP contract:
// invalid input is the caller's problem, everything else that exhausted the
// retry bound is an upstream failure.
func (s *Service) respond(outcome agent.Outcome) (*transport.AnalysisResponse, error) {
	switch outcome.Kind {
	case agent.OutcomeSuccess:
		return &transport.AnalysisResponse{
			ReportID: uuid.New().String(),
			Report:   outcome.Report,
			View:     presenter.BuildReportView(outcome.Report),
		}, nil

	case agent.OutcomeInvalidInput:
		message := outcome.Message
		if message == "" {
			message = invalidInputMessage
		}
		return nil, apperr.Validation(message)

	case agent.OutcomeParseError:
		return nil, apperr.Upstream("model returned unparseable response").
			WithDetails(map[string]string{"rawResponse": outcome.Raw})

	case agent.OutcomeValidationError:
		return nil, apperr.Upstream("model returned invalid data structure")

	default:
		return nil, apperr.Wrap(apperr.KindUpstream, "analysis failed", outcome.Err)
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultFloat(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}

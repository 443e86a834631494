package agent

import (
	"context"
	"encoding/json"

	"solar_feasibility_backend/internal/analysis/domain"
	"solar_feasibility_backend/platform/logger"
)

// maxAttempts bounds the retry loop: three model calls total, no backoff.
const maxAttempts = 3

// OutcomeKind tags the terminal state of a pipeline run.
type OutcomeKind int

const (
	// OutcomeSuccess means a validated report was produced.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeInvalidInput means the model flagged the image/location as
	// unusable. Terminal on first sight; retrying cannot fix the input.
	OutcomeInvalidInput
	// OutcomeParseError means the cleaned response was not valid JSON.
	OutcomeParseError
	// OutcomeValidationError means the parsed report violated the invariants.
	OutcomeValidationError
	// OutcomeTransportError means the generator call itself failed.
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeParseError:
		return "parse_error"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a pipeline run.
type Outcome struct {
	Kind OutcomeKind
	// Report is set on success.
	Report *domain.Report
	// Raw is the last raw model response, kept for diagnostics on parse
	// and validation failures.
	Raw string
	// Message is the model's own error text on invalid input.
	Message string
	// Err is the underlying failure on transport and validation errors.
	Err error
}

// Pipeline runs the analyze → clean → parse → validate loop against a
// Generator, retrying transient failures up to the attempt bound.
type Pipeline struct {
	gen      Generator
	log      *logger.Logger
	attempts int
}

// NewPipeline creates a pipeline with the fixed attempt bound.
func NewPipeline(gen Generator, log *logger.Logger) *Pipeline {
	return &Pipeline{gen: gen, log: log, attempts: maxAttempts}
}

// Run executes up to three attempts and returns the terminal outcome.
// Success and invalid-input return immediately; everything else retries
// until the bound is exhausted, at which point the last failure surfaces.
func (p *Pipeline) Run(ctx context.Context, req Request) Outcome {
	var last Outcome
	for attempt := 1; attempt <= p.attempts; attempt++ {
		last = p.attempt(ctx, req)

		switch last.Kind {
		case OutcomeSuccess, OutcomeInvalidInput:
			return last
		}

		if p.log != nil {
			p.log.ModelAttempt(attempt, p.attempts, last.Kind.String())
		}
	}
	return last
}

// errorMarker is the model's explicit rejection payload:
// {"error": "...", "valid_data": false}.
type errorMarker struct {
	Error     string `json:"error"`
	ValidData *bool  `json:"valid_data"`
}

func (p *Pipeline) attempt(ctx context.Context, req Request) Outcome {
	raw, err := p.gen.Generate(ctx, req)
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Err: err}
	}

	cleaned := CleanResponse(raw)

	var report domain.Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return Outcome{Kind: OutcomeParseError, Raw: raw, Err: err}
	}

	var marker errorMarker
	if err := json.Unmarshal([]byte(cleaned), &marker); err == nil {
		if marker.ValidData != nil && !*marker.ValidData {
			return Outcome{Kind: OutcomeInvalidInput, Message: marker.Error}
		}
	}

	if err := report.Validate(); err != nil {
		return Outcome{Kind: OutcomeValidationError, Raw: raw, Err: err}
	}

	return Outcome{Kind: OutcomeSuccess, Report: &report}
}

// Package transport defines the request/response shapes of the analysis API.
package transport

import (
	"solar_feasibility_backend/internal/analysis/domain"
	"solar_feasibility_backend/internal/analysis/presenter"
)

// Defaults applied when optional building metadata is omitted.
const (
	DefaultRoofAreaM2   = 150.0
	DefaultBuildingType = "Residential"
	DefaultFloors       = 2
	DefaultRoofAccess   = "Easy"
	DefaultRoofType     = "Flat"
)

// CoordinateAnalysisRequest is the JSON body of POST /analysis/coordinates.
// Latitude and longitude are pointers so zero values survive the required check.
type CoordinateAnalysisRequest struct {
	Latitude     *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	RoofAreaM2   float64  `json:"roofAreaM2" validate:"omitempty,gte=50,lte=10000"`
	BuildingType string   `json:"buildingType" validate:"omitempty,oneof=Residential Commercial Industrial"`
	Floors       int      `json:"floors" validate:"omitempty,gte=1,lte=50"`
	RoofAccess   string   `json:"roofAccessibility" validate:"omitempty,oneof=Easy Moderate Difficult"`
}

// ImageAnalysisForm carries the multipart fields next to the image file.
type ImageAnalysisForm struct {
	RoofType     string `form:"roofType" validate:"omitempty,oneof=Flat Sloped Mixed"`
	BuildingType string `form:"buildingType" validate:"omitempty,oneof=Residential Commercial Industrial"`
}

// UploadedImage is the validated image payload handed to the service.
type UploadedImage struct {
	MIMEType string
	Data     []byte
}

// AnalysisResponse returns the validated report alongside its view model.
type AnalysisResponse struct {
	ReportID string               `json:"reportId"`
	Report   *domain.Report       `json:"report"`
	View     presenter.ReportView `json:"view"`
}

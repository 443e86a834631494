// Package handler exposes the analysis endpoints.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"solar_feasibility_backend/internal/analysis/domain"
	"solar_feasibility_backend/internal/analysis/service"
	"solar_feasibility_backend/internal/analysis/transport"
	"solar_feasibility_backend/platform/httpkit"
	"solar_feasibility_backend/platform/validator"
)

const exportFilename = "solar_feasibility_report.json"

// Handler wires HTTP requests to the analysis service.
type Handler struct {
	svc            *service.Service
	val            *validator.Validator
	maxUploadBytes int64
}

// New creates the analysis handler.
func New(svc *service.Service, val *validator.Validator, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, val: val, maxUploadBytes: maxUploadBytes}
}

// AnalyzeCoordinates handles POST /api/v1/analysis/coordinates.
func (h *Handler) AnalyzeCoordinates(c *gin.Context) {
	var req transport.CoordinateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.svc.AnalyzeCoordinates(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AnalyzeImage handles POST /api/v1/analysis/image (multipart).
func (h *Handler) AnalyzeImage(c *gin.Context) {
	var form transport.ImageAnalysisForm
	if err := c.ShouldBind(&form); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid form fields", err.Error())
		return
	}
	if err := h.val.Struct(form); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid form fields", err.Error())
		return
	}

	img, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeImage(c.Request.Context(), img, form)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ExportReport handles POST /api/v1/analysis/export. The client posts back a
// previously returned report and receives it as a downloadable JSON document.
func (h *Handler) ExportReport(c *gin.Context) {
	var report domain.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid report body", err.Error())
		return
	}

	data, err := h.svc.ExportReport(&report)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename=`+exportFilename)
	c.Data(http.StatusOK, "application/json", data)
}

// readImage pulls the uploaded file out of the multipart form, enforces the
// size cap, and sniffs the content type against the allow-list.
func (h *Handler) readImage(c *gin.Context) (transport.UploadedImage, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "image file is required", nil)
		return transport.UploadedImage{}, false
	}

	if err := transport.ValidateImageSize(fileHeader.Size, h.maxUploadBytes); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return transport.UploadedImage{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read image", nil)
		return transport.UploadedImage{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read image", nil)
		return transport.UploadedImage{}, false
	}
	if int64(len(data)) > h.maxUploadBytes {
		httpkit.Error(c, http.StatusBadRequest, "image exceeds the maximum allowed size", nil)
		return transport.UploadedImage{}, false
	}

	contentType := http.DetectContentType(data)
	if err := transport.ValidateImageType(contentType); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return transport.UploadedImage{}, false
	}

	return transport.UploadedImage{MIMEType: contentType, Data: data}, true
}

package service

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"

	"solar_feasibility_backend/internal/analysis/agent"
	"solar_feasibility_backend/internal/analysis/domain"
)

// extractGPSHint pulls a coordinate pair out of the upload's EXIF block when
// one exists. Best effort: any decode failure means no hint.
func extractGPSHint(data []byte) *agent.GPSHint {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	lat, lon, err := meta.LatLong()
	if err != nil {
		return nil
	}
	if !domain.ValidCoordinates(lat, lon) {
		return nil
	}

	return &agent.GPSHint{Latitude: lat, Longitude: lon}
}

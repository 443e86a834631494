package transport

import (
	"fmt"
	"strings"
)

// AllowedImageTypes is the MIME allow-list for rooftop uploads.
// jpg and jpeg both sniff to image/jpeg.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImageType checks the sniffed content type against the allow-list.
func ValidateImageType(contentType string) error {
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedImageTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed; upload a jpg, jpeg, png, or webp image", contentType)
	}
	return nil
}

// ValidateImageSize checks the upload size against the configured limit.
func ValidateImageSize(sizeBytes, maxBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("image must not be empty")
	}
	if sizeBytes > maxBytes {
		return fmt.Errorf("image size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, maxBytes)
	}
	return nil
}

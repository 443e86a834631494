package domain

// ValidCoordinates reports whether the pair is a usable WGS84 coordinate.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

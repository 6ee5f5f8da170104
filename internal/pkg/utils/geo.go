package utils

import "math"

// ValidateCoordinates проверяет валидность координат (включая NaN/Inf)
func ValidateCoordinates(lat, lon float64) bool {
	if !IsFinite(lat) || !IsFinite(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsFinite - не NaN и не бесконечность
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NonNegative - конечное неотрицательное число (стоимость, вес покрытия, мощность)
func NonNegative(v float64) bool {
	return IsFinite(v) && v >= 0
}

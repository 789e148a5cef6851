package geo

import "math"

// EarthRadiusKm - средний радиус Земли, используемый в формуле гаверсинуса
const EarthRadiusKm = 6371.0

// HalfCircumferenceKm - максимальное расстояние по дуге большого круга
const HalfCircumferenceKm = math.Pi * EarthRadiusKm

// HaversineKm вычисляет расстояние по дуге большого круга между двумя точками в километрах.
// Координаты передаются в градусах WGS84.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)
	dLat := rLat2 - rLat1
	dLng := toRadians(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(rLat1)*math.Cos(rLat2)*sinLng*sinLng

	// rounding can push a slightly outside [0,1] for antipodal points
	if a > 1 {
		a = 1
	} else if a < 0 {
		a = 0
	}

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateRadius проверяет, что радиус поиска положительный и не превышает половину окружности Земли
func ValidateRadius(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm <= HalfCircumferenceKm && !math.IsNaN(radiusKm)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

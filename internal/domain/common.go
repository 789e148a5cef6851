package domain

import (
	"math"

	"github.com/nearby-places/internal/pkg/geo"
)

// Coordinate - точка в градусах WGS84. Значение неизменяемо в рамках сессии поиска.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid проверяет, что координата лежит в допустимом диапазоне
func (c Coordinate) Valid() bool {
	return geo.ValidateCoordinates(c.Lat, c.Lng)
}

// DistanceKm возвращает расстояние по дуге большого круга до другой точки
func (c Coordinate) DistanceKm(to Coordinate) float64 {
	return geo.HaversineKm(c.Lat, c.Lng, to.Lat, to.Lng)
}

// BoundingBox - прямоугольник, охватывающий набор точек. Нулевое значение - пустой прямоугольник.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
	filled bool
}

// Extend возвращает BoundingBox, расширенный так, чтобы включать точку
func (b BoundingBox) Extend(c Coordinate) BoundingBox {
	if !b.filled {
		return BoundingBox{MinLat: c.Lat, MinLng: c.Lng, MaxLat: c.Lat, MaxLng: c.Lng, filled: true}
	}
	b.MinLat = math.Min(b.MinLat, c.Lat)
	b.MinLng = math.Min(b.MinLng, c.Lng)
	b.MaxLat = math.Max(b.MaxLat, c.Lat)
	b.MaxLng = math.Max(b.MaxLng, c.Lng)
	return b
}

// IsEmpty сообщает, что в BoundingBox не добавлено ни одной точки
func (b BoundingBox) IsEmpty() bool {
	return !b.filled
}

// Contains проверяет, что точка лежит внутри прямоугольника
func (b BoundingBox) Contains(c Coordinate) bool {
	return b.filled &&
		c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Center возвращает центр прямоугольника
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

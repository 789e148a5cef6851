package dto

import (
	"github.com/google/uuid"

	"github.com/nearby-places/internal/domain"
)

// NearbySearchResponse - ответ на поиск мест рядом с клиентом
type NearbySearchResponse struct {
	SessionID uuid.UUID               `json:"session_id"`
	Origin    domain.Coordinate       `json:"origin"`
	Query     string                  `json:"query"`
	Places    []domain.AnnotatedPlace `json:"places"`
	Home      domain.Marker           `json:"home"`
	Markers   []domain.Marker         `json:"markers"`
	Bounds    domain.BoundingBox      `json:"bounds"`
	RadiusKm  float64                 `json:"radius_km"`
	Attempts  int                     `json:"attempts"`
	Trace     []domain.AttemptTrace   `json:"trace,omitempty"`
	Total     int                     `json:"total"`
}

// SelectPlaceResponse - ответ на выбор места
type SelectPlaceResponse struct {
	Selection domain.Selection `json:"selection"`
}

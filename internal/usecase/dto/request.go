package dto

import (
	"github.com/google/uuid"

	"github.com/nearby-places/internal/domain"
)

// NearbySearchRequest - запрос на поиск мест рядом с клиентом.
// Координаты устройства необязательны: без них местоположение определяется по IP.
type NearbySearchRequest struct {
	Lat   *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng   *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Query string   `json:"query,omitempty" validate:"omitempty,min=2,max=100"`

	ClientIP  string     `json:"-"`
	RequestID *uuid.UUID `json:"-"`
}

// HasFix проверяет, что клиент передал обе координаты
func (r NearbySearchRequest) HasFix() bool {
	return r.Lat != nil && r.Lng != nil
}

// PartialFix - передана только одна из координат
func (r NearbySearchRequest) PartialFix() bool {
	return (r.Lat == nil) != (r.Lng == nil)
}

// Hint строит LocateHint для определения местоположения
func (r NearbySearchRequest) Hint() domain.LocateHint {
	hint := domain.LocateHint{ClientIP: r.ClientIP}
	if r.HasFix() {
		hint.Fix = &domain.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
	}
	return hint
}

// CoordinateInput - координата во входящем запросе
type CoordinateInput struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// Coordinate переводит вход в доменную координату
func (c CoordinateInput) Coordinate() domain.Coordinate {
	var coord domain.Coordinate
	if c.Lat != nil {
		coord.Lat = *c.Lat
	}
	if c.Lng != nil {
		coord.Lng = *c.Lng
	}
	return coord
}

// PlaceInput - место, выбранное пользователем на карте
type PlaceInput struct {
	ID       string          `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required,max=300"`
	Address  string          `json:"address,omitempty"`
	Location CoordinateInput `json:"location" validate:"required"`
}

// PlaceResult переводит вход в доменный PlaceResult
func (p PlaceInput) PlaceResult() domain.PlaceResult {
	return domain.PlaceResult{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		Location: p.Location.Coordinate(),
	}
}

// SelectPlaceRequest - запрос на выбор места
type SelectPlaceRequest struct {
	Origin    CoordinateInput `json:"origin" validate:"required"`
	Place     PlaceInput      `json:"place" validate:"required"`
	SessionID *uuid.UUID      `json:"session_id,omitempty"`
}

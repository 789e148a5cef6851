package domain

import "github.com/google/uuid"

// DefaultQuery - тип мест, который ищется, если запрос не задан
const DefaultQuery = "restaurant"

// PlaceResult - запись, возвращённая провайдером мест. Только для чтения.
type PlaceResult struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Address  string     `json:"address,omitempty"`
	Location Coordinate `json:"location"`
	Types    []string   `json:"types,omitempty"`
	Rating   *float64   `json:"rating,omitempty"`
}

// AnnotatedPlace - PlaceResult с расстоянием от точки пользователя
type AnnotatedPlace struct {
	PlaceResult
	DistanceKm float64 `json:"distance_km"`
}

// Annotate создает AnnotatedPlace для результата относительно origin
func Annotate(origin Coordinate, place PlaceResult) AnnotatedPlace {
	return AnnotatedPlace{
		PlaceResult: place,
		DistanceKm:  origin.DistanceKm(place.Location),
	}
}

// MarkerKind различает маркер пользователя и маркеры мест
type MarkerKind string

const (
	MarkerHome  MarkerKind = "home"
	MarkerPlace MarkerKind = "place"
)

// Marker - дескриптор отрисовки, связанный с местом. Клиент использует ID для событий выбора.
type Marker struct {
	ID       uuid.UUID  `json:"id"`
	Kind     MarkerKind `json:"kind"`
	PlaceID  string     `json:"place_id,omitempty"`
	Position Coordinate `json:"position"`
}

// Selection - результат выбора места пользователем
type Selection struct {
	Place AnnotatedPlace `json:"place"`
	Label string         `json:"label"`
}

package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamNearbySearch = "stream:nearby:search"
	StreamNearbyEvents = "stream:nearby:events"
)

// NearbySearchRequestedEvent - входящее событие на поиск мест рядом с пользователем
type NearbySearchRequestedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Query     string    `json:"query,omitempty"`
}

// Hint возвращает подсказку для определения местоположения
func (e *NearbySearchRequestedEvent) Hint() LocateHint {
	hint := LocateHint{ClientIP: e.ClientIP}
	if e.Lat != nil && e.Lng != nil {
		hint.Fix = &Coordinate{Lat: *e.Lat, Lng: *e.Lng}
	}
	return hint
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

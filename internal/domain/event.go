package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SearchEventType - тип события, которое сессия отдает наружу
type SearchEventType string

const (
	EventResultsReady  SearchEventType = "results_ready"
	EventSearchError   SearchEventType = "search_error"
	EventPlaceSelected SearchEventType = "place_selected"
	EventLocationError SearchEventType = "location_error"
)

// EventError - сериализуемое описание ошибки в событии
type EventError struct {
	Kind    string         `json:"kind"`
	Status  ProviderStatus `json:"status,omitempty"`
	Message string         `json:"message"`
}

// SearchEvent - событие сессии поиска для подписчиков
type SearchEvent struct {
	Type       SearchEventType  `json:"type"`
	SessionID  uuid.UUID        `json:"session_id"`
	RequestID  *uuid.UUID       `json:"request_id,omitempty"`
	Origin     *Coordinate      `json:"origin,omitempty"`
	Places     []AnnotatedPlace `json:"places,omitempty"`
	Markers    []Marker         `json:"markers,omitempty"`
	Bounds     *BoundingBox     `json:"bounds,omitempty"`
	Selection  *Selection       `json:"selection,omitempty"`
	Error      *EventError      `json:"error,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEventError строит EventError из LocationError или SearchError
func NewEventError(err error) *EventError {
	var locErr *LocationError
	if errors.As(err, &locErr) {
		return &EventError{Kind: string(locErr.Reason), Message: locErr.UserMessage()}
	}

	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return &EventError{Kind: string(searchErr.Kind), Status: searchErr.Status, Message: searchErr.Error()}
	}

	return &EventError{Kind: "internal", Message: err.Error()}
}

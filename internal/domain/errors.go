package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// LocationErrorReason - причина, по которой не удалось определить местоположение
type LocationErrorReason string

const (
	LocationUnsupported         LocationErrorReason = "unsupported"
	LocationPermissionDenied    LocationErrorReason = "permission_denied"
	LocationPositionUnavailable LocationErrorReason = "position_unavailable"
	LocationTimeout             LocationErrorReason = "timeout"
)

// LocationError - ошибка определения местоположения. Сессия завершается без поиска.
type LocationError struct {
	Reason LocationErrorReason
	Err    error
}

// NewLocationError создает LocationError с причиной и исходной ошибкой
func NewLocationError(reason LocationErrorReason, err error) *LocationError {
	return &LocationError{Reason: reason, Err: err}
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location error (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("location error (%s)", e.Reason)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}

// UserMessage возвращает текст ошибки для показа пользователю
func (e *LocationError) UserMessage() string {
	if e.Reason == LocationUnsupported {
		return "Error: Your device doesn't support geolocation."
	}
	return "Error: The Geolocation service failed."
}

// ErrLocationUnsupported - источник местоположения недоступен
var ErrLocationUnsupported = NewLocationError(LocationUnsupported, nil)

// IsLocationUnsupported проверяет, что ошибка означает отсутствие источника местоположения
func IsLocationUnsupported(err error) bool {
	var locErr *LocationError
	return errors.As(err, &locErr) && locErr.Reason == LocationUnsupported
}

// SearchErrorKind - вид терминальной ошибки цикла поиска
type SearchErrorKind string

const (
	SearchProviderFatal  SearchErrorKind = "provider_fatal"
	SearchNetworkFailure SearchErrorKind = "network_failure"
	SearchExhausted      SearchErrorKind = "exhausted"
	SearchCancelled      SearchErrorKind = "cancelled"
)

// SearchError - терминальная ошибка цикла поиска.
// SessionID совпадает с идентификатором сессии движка, в которой произошла ошибка.
type SearchError struct {
	SessionID uuid.UUID
	Kind      SearchErrorKind
	Status    ProviderStatus
	Attempts  int
	RadiusKm  float64
	Err       error
}

func (e *SearchError) Error() string {
	msg := fmt.Sprintf("search error (%s) after %d attempt(s) at radius %.2f km", e.Kind, e.Attempts, e.RadiusKm)
	if e.Status != "" {
		msg += fmt.Sprintf(", provider status %s", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// IsSearchErrorKind проверяет вид SearchError в цепочке ошибок
func IsSearchErrorKind(err error, kind SearchErrorKind) bool {
	var searchErr *SearchError
	return errors.As(err, &searchErr) && searchErr.Kind == kind
}

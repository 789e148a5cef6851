package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/nearby-places/internal/domain"
)

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrProviderError = New(
		"PROVIDER_ERROR",
		"Places provider rejected the request",
		http.StatusBadGateway,
	)

	ErrProviderUnavailable = New(
		"PROVIDER_UNAVAILABLE",
		"Places provider is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrNotEnoughPlaces = New(
		"NOT_ENOUGH_PLACES",
		"Not enough places found within the maximum search radius",
		http.StatusNotFound,
	)

	ErrSearchCancelled = New(
		"SEARCH_CANCELLED",
		"Search was cancelled",
		http.StatusRequestTimeout,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// FromDomain переводит ошибки сессии поиска в AppError для HTTP ответа
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := As(err); ok {
		return appErr
	}

	var locErr *domain.LocationError
	if stderrors.As(err, &locErr) {
		return New(
			"LOCATION_"+strings.ToUpper(string(locErr.Reason)),
			locErr.UserMessage(),
			http.StatusUnprocessableEntity,
		)
	}

	var searchErr *domain.SearchError
	if stderrors.As(err, &searchErr) {
		details := map[string]interface{}{
			"attempts":  searchErr.Attempts,
			"radius_km": searchErr.RadiusKm,
		}
		switch searchErr.Kind {
		case domain.SearchProviderFatal:
			details["status"] = string(searchErr.Status)
			return ErrProviderError.WithDetails(details)
		case domain.SearchNetworkFailure:
			return ErrProviderUnavailable.WithDetails(details)
		case domain.SearchExhausted:
			return ErrNotEnoughPlaces.WithDetails(details)
		case domain.SearchCancelled:
			return ErrSearchCancelled.WithDetails(details)
		}
	}

	return ErrInternalServer
}

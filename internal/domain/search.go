package domain

import "github.com/google/uuid"

// SearchRequest - параметры одной попытки запроса к провайдеру.
// Для каждой попытки создается новое значение.
type SearchRequest struct {
	Origin   Coordinate `json:"origin"`
	RadiusKm float64    `json:"radius_km"`
	Query    string     `json:"query"`
}

// ProviderStatus - статус ответа провайдера мест
type ProviderStatus string

const (
	StatusOK             ProviderStatus = "OK"
	StatusZeroResults    ProviderStatus = "ZERO_RESULTS"
	StatusOverQueryLimit ProviderStatus = "OVER_QUERY_LIMIT"
	StatusRequestDenied  ProviderStatus = "REQUEST_DENIED"
	StatusInvalidRequest ProviderStatus = "INVALID_REQUEST"
	StatusNotFound       ProviderStatus = "NOT_FOUND"
	StatusUnknownError   ProviderStatus = "UNKNOWN_ERROR"
)

// Retryable сообщает, что при таком статусе цикл может расширить радиус и повторить запрос
func (s ProviderStatus) Retryable() bool {
	return s == StatusOK || s == StatusZeroResults
}

// ProviderResponse - ответ провайдера на SearchRequest
type ProviderResponse struct {
	Status  ProviderStatus `json:"status"`
	Results []PlaceResult  `json:"results"`
}

// SearchSession - состояние одной сессии цикла расширения радиуса
type SearchSession struct {
	ID       uuid.UUID
	Origin   Coordinate
	RadiusKm float64
	Attempt  int
}

// NewSearchSession создает сессию с начальным радиусом
func NewSearchSession(origin Coordinate, initialRadiusKm float64) SearchSession {
	return SearchSession{
		ID:       uuid.New(),
		Origin:   origin,
		RadiusKm: initialRadiusKm,
	}
}

// Request строит запрос для текущей попытки
func (s SearchSession) Request(query string) SearchRequest {
	return SearchRequest{
		Origin:   s.Origin,
		RadiusKm: s.RadiusKm,
		Query:    query,
	}
}

// Next возвращает сессию следующей попытки с увеличенным радиусом
func (s SearchSession) Next(growthFactor float64) SearchSession {
	s.RadiusKm *= growthFactor
	s.Attempt++
	return s
}

// AttemptTrace - запись об одной попытке запроса
type AttemptTrace struct {
	Attempt     int            `json:"attempt"`
	RadiusKm    float64        `json:"radius_km"`
	Status      ProviderStatus `json:"status"`
	ResultCount int            `json:"result_count"`
}

// SearchOutcome - результат успешно завершенной сессии
type SearchOutcome struct {
	SessionID uuid.UUID        `json:"session_id"`
	Origin    Coordinate       `json:"origin"`
	Query     string           `json:"query"`
	Places    []AnnotatedPlace `json:"places"`
	RadiusKm  float64          `json:"radius_km"`
	Attempts  int              `json:"attempts"`
	Trace     []AttemptTrace   `json:"trace"`
}

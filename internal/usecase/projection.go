package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nearby-places/internal/domain"
)

// Accumulator собирает принятые места вместе с их маркерами для групповых операций
// (например, подбор границ карты)
type Accumulator struct {
	home    domain.Marker
	places  []domain.AnnotatedPlace
	markers []domain.Marker
	bounds  domain.BoundingBox
}

// NewAccumulator создает Accumulator с маркером пользователя в origin
func NewAccumulator(origin domain.Coordinate) *Accumulator {
	return &Accumulator{
		home: domain.Marker{
			ID:       uuid.New(),
			Kind:     domain.MarkerHome,
			Position: origin,
		},
	}
}

// Add добавляет место и возвращает созданный для него маркер
func (a *Accumulator) Add(place domain.AnnotatedPlace) domain.Marker {
	marker := domain.Marker{
		ID:       uuid.New(),
		Kind:     domain.MarkerPlace,
		PlaceID:  place.ID,
		Position: place.Location,
	}

	a.places = append(a.places, place)
	a.markers = append(a.markers, marker)
	a.bounds = a.bounds.Extend(marker.Position)

	return marker
}

// Home возвращает маркер пользователя
func (a *Accumulator) Home() domain.Marker { return a.home }

// Places возвращает места в порядке добавления
func (a *Accumulator) Places() []domain.AnnotatedPlace { return a.places }

// Markers возвращает маркеры мест в порядке добавления
func (a *Accumulator) Markers() []domain.Marker { return a.markers }

// Bounds возвращает прямоугольник по позициям маркеров мест
func (a *Accumulator) Bounds() domain.BoundingBox { return a.bounds }

// ProjectOutcome раскладывает результат поиска в Accumulator
func ProjectOutcome(outcome *domain.SearchOutcome) *Accumulator {
	acc := NewAccumulator(outcome.Origin)
	for _, place := range outcome.Places {
		acc.Add(place)
	}
	return acc
}

// SelectPlace строит выбор места пользователем. Не зависит от состояния цикла поиска.
func SelectPlace(origin domain.Coordinate, place domain.PlaceResult) domain.Selection {
	annotated := domain.Annotate(origin, place)
	return domain.Selection{
		Place: annotated,
		Label: SelectionLabel(place.Name, annotated.DistanceKm),
	}
}

// SelectionLabel - подпись для информационного окна выбранного места
func SelectionLabel(name string, distanceKm float64) string {
	return fmt.Sprintf("%s - %.2f km from your location", name, distanceKm)
}

package domain

// LocateHint - данные окружения, из которых можно определить местоположение клиента
type LocateHint struct {
	// Fix - координата, полученная на устройстве клиента
	Fix      *Coordinate
	ClientIP string
}

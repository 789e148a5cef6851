// Package docs Nearby Places API.
//
// Сервис поиска мест рядом с пользователем. Определяет местоположение клиента,
// ищет места через провайдера (Google Places, OpenStreetMap или Elasticsearch),
// расширяя радиус поиска, пока не наберется нужное количество результатов.
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

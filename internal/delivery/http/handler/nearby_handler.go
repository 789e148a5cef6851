package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/pkg/errors"
	"github.com/nearby-places/internal/pkg/utils"
	"github.com/nearby-places/internal/pkg/validator"
	"github.com/nearby-places/internal/usecase"
	"github.com/nearby-places/internal/usecase/dto"
)

// NearbyHandler - обработчик поиска мест рядом с клиентом
type NearbyHandler struct {
	sessionUC *usecase.NearbySessionUseCase
	logger    *zap.Logger
}

// NewNearbyHandler - создание нового NearbyHandler
func NewNearbyHandler(sessionUC *usecase.NearbySessionUseCase, logger *zap.Logger) *NearbyHandler {
	return &NearbyHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Поиск мест рядом с клиентом
// @Description Определяет местоположение клиента (координаты устройства или IP) и ищет ближайшие места, расширяя радиус от 50 км в 1.1 раза до получения 10 результатов.
// @Tags Nearby
// @Accept json
// @Produce json
// @Param request body dto.NearbySearchRequest false "Координаты устройства и тип мест"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbySearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/nearby/search [post]
func (h *NearbyHandler) Search(c *fiber.Ctx) error {
	var req dto.NearbySearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
		}
	}

	return h.search(c, req)
}

// SearchGET godoc
// @Summary Поиск мест рядом с клиентом (GET)
// @Description То же, что POST /api/v1/nearby/search, параметры передаются в query string.
// @Tags Nearby
// @Produce json
// @Param lat query number false "Широта устройства"
// @Param lng query number false "Долгота устройства"
// @Param query query string false "Тип мест" default(restaurant)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbySearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/nearby/search [get]
func (h *NearbyHandler) SearchGET(c *fiber.Ctx) error {
	var req dto.NearbySearchRequest
	req.Query = c.Query("query")

	lat, err := parseOptionalFloat(c.Query("lat"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("lat must be a number"))
	}
	lng, err := parseOptionalFloat(c.Query("lng"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("lng must be a number"))
	}
	req.Lat, req.Lng = lat, lng

	return h.search(c, req)
}

func (h *NearbyHandler) search(c *fiber.Ctx, req dto.NearbySearchRequest) error {
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	req.ClientIP = clientIP(c)
	if id, err := uuid.Parse(c.Get("X-Request-ID")); err == nil {
		req.RequestID = &id
	}

	start := time.Now()
	result, err := h.sessionUC.Run(c.Context(), req)
	if err != nil {
		h.logger.Info("Nearby search failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Attempts: result.Attempts,
		RadiusKm: result.RadiusKm,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// Select godoc
// @Summary Выбор места
// @Description Считает расстояние от точки пользователя до выбранного места и возвращает подпись для информационного окна.
// @Tags Nearby
// @Accept json
// @Produce json
// @Param request body dto.SelectPlaceRequest true "Точка пользователя и выбранное место"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectPlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/nearby/select [post]
func (h *NearbyHandler) Select(c *fiber.Ctx) error {
	var req dto.SelectPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	selection, err := h.sessionUC.Select(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SelectPlaceResponse{Selection: *selection}, nil)
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// clientIP - первый адрес из X-Forwarded-For, иначе адрес соединения
func clientIP(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 && ips[0] != "" {
		return ips[0]
	}
	return c.IP()
}

package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nearby-places/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Attempts int     `json:"attempts,omitempty"`
	RadiusKm float64 `json:"radius_km,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendError отправляет ошибку; доменные ошибки поиска переводятся в AppError
func SendError(c *fiber.Ctx, err error) error {
	appErr := errors.FromDomain(err)
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}

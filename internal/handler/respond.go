package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"movie-recommendation-api/internal/apperr"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = validator.New()

// fail maps an error to its HTTP status using the apperr taxonomy. Anything
// outside the taxonomy is logged and reported as a generic server error.
func fail(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		status, msg = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrValidation):
		status, msg = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrUpstream):
		status, msg = fiber.StatusBadGateway, err.Error()
	default:
		slog.Error("unhandled error", "error", err)
	}

	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// sendRaw writes provider-shaped JSON verbatim.
func sendRaw(c fiber.Ctx, raw json.RawMessage) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

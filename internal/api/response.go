package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"walle.finance/internal/domain"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func send(c *fiber.Ctx, status int, success bool, code, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Success: success,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// handleError funnels service failures into the envelope. Internal error
// detail stays in the log, only the message string reaches the client.
func handleError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == fiber.StatusInternalServerError {
			log.Printf("%s %s failed: %v", c.Method(), c.Path(), appErr.Err)
		}
		return send(c, appErr.Status, false, appErr.Code, appErr.Message, nil)
	}

	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	return send(c, fiber.StatusInternalServerError, false, "SERVER_ERROR", "Unexpected server error.", nil)
}

package web

import (
	"errors"
	"strings"

	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders the 404 page or the generic error page. JSON routes get
// a JSON body instead.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code >= fiber.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	if strings.HasSuffix(c.Path(), "/json") {
		return c.Status(code).JSON(fiber.Map{"error": message})
	}

	view := "error"
	if code == fiber.StatusNotFound {
		view = "404"
	}
	renderErr := c.Status(code).Render(view, fiber.Map{
		"title":        "Catch the Light",
		"errorCode":    code,
		"errorMessage": message,
	})
	if renderErr != nil {
		logger.Error("Failed rendering error page", zap.Error(renderErr))
		return c.Status(code).SendString(message)
	}
	return nil
}

// serviceError turns a service error into the response for a page route.
// Validation errors are handled by the caller since their redirect differs per
// route.
func serviceError(c *fiber.Ctx, err error) error {
	switch service.KindOf(err) {
	case service.KindInvalidIdentifier:
		return c.Next()
	case service.KindUnauthenticated:
		return c.Redirect(loginPath)
	case service.KindNotFound:
		return fiber.NewError(fiber.StatusNotFound, errorMessage(err))
	case service.KindForbidden:
		return fiber.NewError(fiber.StatusForbidden, errorMessage(err))
	case service.KindValidation:
		return fiber.NewError(fiber.StatusBadRequest, errorMessage(err))
	default:
		return err
	}
}

func errorMessage(err error) string {
	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return err.Error()
}

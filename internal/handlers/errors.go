package handlers

import (
	"errors"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/validation"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single exit for failed requests. Client errors keep
// their message, server errors are logged and hidden.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(toHTTPError(err), &fe) {
		code = fe.Code
		message = fe.Message
	}

	status := dto.StatusFail
	if code >= 500 {
		status = dto.StatusError
		message = "Internal server error"

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			attrs = append(attrs, "request_id", rid)
		}
		if user := middleware.CurrentUser(c); user != nil {
			attrs = append(attrs, "user_id", user.ID.String())
		}
		slog.Error("unhandled server error", attrs...)
		sentry.CaptureException(err)
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// toHTTPError maps service errors to *fiber.Error. Unknown errors pass
// through and end up as 500.
func toHTTPError(err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid input data: "+verrs.Error())
	}

	switch {
	case errors.Is(err, services.ErrMissingCredentials),
		errors.Is(err, services.ErrInvalidGuide):
		return fiber.NewError(fiber.StatusBadRequest, sentence(err))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPasswordChanged):
		return fiber.NewError(fiber.StatusUnauthorized, sentence(err))
	case errors.Is(err, services.ErrTourNotFound):
		return fiber.NewError(fiber.StatusNotFound, sentence(err))
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrTourNameTaken),
		errors.Is(err, services.ErrReviewExists):
		return fiber.NewError(fiber.StatusConflict, sentence(err))
	}
	return err
}

// sentence capitalizes a service error message for the response body.
func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

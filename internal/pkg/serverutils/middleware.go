package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON error envelope of every failure path.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandlerMiddleware converts errors returned from handlers into the
// structured {error, details?} envelope. A request failure never crashes
// the process; unknown errors become opaque 500s.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Status).JSON(ErrorResponse{
				Error:   apiErr.Message,
				Details: apiErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}

var validate = validator.New()

// ValidateRequest runs struct-tag validation and reports the first offending
// field as a validation error.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		f := invalid[0]
		return NewValidationError(fmt.Sprintf("Field %s failed on the %s rule", f.Field(), f.Tag()))
	}
	return NewValidationError(err.Error())
}

package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// HTTPErrorHandler is installed as the fiber ErrorHandler. Every failure is
// mapped to a status code and a JSON error body, nothing is retried.
func HTTPErrorHandler(logger Logger, debug bool) fiber.ErrorHandler {
	if logger == nil {
		logger = DefaultLogger()
	}

	return func(c *fiber.Ctx, err error) error {
		richErr := ToRichError(err)
		status := StatusFromError(richErr)

		if status >= http.StatusInternalServerError {
			logger.Error(
				"request failed",
				"error", richErr.Error(),
				"category", richErr.Category,
				"path", c.OriginalURL(),
			)
		} else {
			logger.Debug(
				"request rejected",
				"error", richErr.Message,
				"category", richErr.Category,
				"status", status,
				"path", c.OriginalURL(),
			)
		}

		if debug && len(richErr.Metadata) > 0 {
			logger.Debug("error details", "details", print.MaybePrettyJSON(richErr.Metadata))
		}

		if rid, ok := c.Locals("requestid").(string); ok {
			richErr = richErr.WithRequestID(rid)
		}

		if !debug {
			richErr.Source = nil
			richErr.Location = nil
		}

		return c.Status(status).JSON(richErr.ToErrorResponse(false, nil))
	}
}

// ToRichError converts any error into a private copy of a rich error so
// shared sentinels are never mutated.
func ToRichError(err error) *errors.Error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Clone()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return errors.New(fiberErr.Message, errors.HTTPStatusToCategory(fiberErr.Code)).
			WithCode(fiberErr.Code).
			WithTextCode(errors.HTTPStatusToTextCode(fiberErr.Code))
	}

	return errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
		WithCode(errors.CodeInternal).
		WithTextCode("INTERNAL_ERROR")
}

// StatusFromError returns the HTTP status for a rich error, falling back to
// its category when no explicit code was set.
func StatusFromError(err *errors.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	if err.Code >= 400 && err.Code < 600 {
		return err.Code
	}

	switch err.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case errors.CategoryMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

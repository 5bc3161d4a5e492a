package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/repository"
)

// ErrorDetailKey holds the internal error of a 500 response for the
// request logger.
const ErrorDetailKey = "error_detail"

// writeError renders err as {"error": code, "message": ...} with the HTTP
// status matching its sentinel.  Unknown errors become an opaque 500.
func writeError(c echo.Context, err error) error {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, repository.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, repository.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, repository.ErrUnknownRestaurant):
		status, code = http.StatusNotFound, "unknown_restaurant"
	case errors.Is(err, repository.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, repository.ErrEmailExists):
		status, code = http.StatusConflict, "email_exists"
	case errors.Is(err, repository.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, repository.ErrCapacityExceeded):
		status, code = http.StatusUnprocessableEntity, "capacity_exceeded"
	}

	body := echo.Map{"error": code, "message": err.Error()}
	if status == http.StatusInternalServerError {
		c.Set(ErrorDetailKey, err.Error())
		body["message"] = "internal error"
	}

	var te *repository.TransitionError
	if errors.As(err, &te) {
		body["from"], body["to"] = te.From, te.To
	}
	var ce *repository.CapacityError
	if errors.As(err, &ce) {
		body["capacity"] = ce.Capacity
	}
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad_request", "message": msg})
}

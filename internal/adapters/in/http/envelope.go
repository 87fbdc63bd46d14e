package http

import (
	"errors"
	"net/http"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper. Every endpoint answers with it:
// ok responses carry the payload in body, failures carry the error class in
// error and a human-readable message.
type Envelope struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Body    any    `json:"body,omitempty"`
}

func ok(ctx echo.Context, code int, body any) error {
	return ctx.JSON(code, Envelope{
		Status: "ok",
		Body:   body,
	})
}

func fail(ctx echo.Context, err error) error {
	code, class := classify(err)
	return ctx.JSON(code, Envelope{
		Status:  "error",
		Error:   class,
		Message: err.Error(),
	})
}

// classify maps domain errors onto HTTP status codes: validation failures to
// 422, missing objects to 404, uniqueness conflicts to 409, everything else
// to 500.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, delivery.ErrRecipientNotLinked):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

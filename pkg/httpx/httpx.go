// Package httpx holds the JSON request and response helpers used by every HTTP handler.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a domain error kind to an HTTP status. Anything without a kind is a 500.
func StatusFor(err error) int {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an ErrorResponse. Errors without a domain kind are logged
// and reported as a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(r.Context(), "Request failed",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("path", r.URL.Path),
				attr.Error(err),
			)
		}
		WriteJSON(w, status, ErrorResponse{Error: "internal", Message: "internal server error"})
		return
	}

	kind, _ := apperrors.KindOf(err)
	var domainErr *apperrors.Error
	message := err.Error()
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	WriteJSON(w, status, ErrorResponse{Error: string(kind), Message: message})
}

// DecodeAndValidate decodes the JSON body into dst and runs struct validation.
// Failures come back as BadRequest errors.
func DecodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.BadRequest("invalid request body: %s", err.Error())
	}
	return Validate(dst)
}

// Validate runs struct validation on v.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return apperrors.BadRequest("invalid request: %s", strings.Join(fields, ", "))
		}
		return apperrors.BadRequest("invalid request")
	}
	return nil
}

// UUIDParam parses a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return ParseUUID(name, chi.URLParam(r, name))
}

// ParseUUID parses a request value as a UUID; field names it in the error.
func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("%s must be a valid id", field)
	}
	return id, nil
}

// IntParam parses a chi URL parameter as an integer.
func IntParam(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, apperrors.BadRequest("%s must be an integer", name)
	}
	return n, nil
}

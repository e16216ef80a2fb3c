package receiver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/go-playground/validator/v10"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// requestError is a client error with an HTTP status.
type requestError struct {
	status  int
	code    string
	message string
	details map[string]string
}

func (e *requestError) Error() string { return e.message }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, err *requestError) {
	writeJSON(w, err.status, errorEnvelope{Error: apiError{
		Code:    err.code,
		Message: err.message,
		Details: err.details,
	}})
}

func notFound(id string) *requestError {
	return &requestError{status: http.StatusNotFound, code: "not_found", message: fmt.Sprintf("notification %s not found", id)}
}

func internalError(msg string) *requestError {
	return &requestError{status: http.StatusBadGateway, code: "platform_failure", message: msg}
}

// decodeJSONBody decodes a single JSON object into dest, rejecting unknown
// fields, and runs struct validation.
func decodeJSONBody(r *http.Request, dest any) *requestError {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return &requestError{
			status:  http.StatusBadRequest,
			code:    "invalid_body",
			message: "invalid request body",
			details: map[string]string{"error": err.Error()},
		}
	}
	if err := domain.Validator().Struct(dest); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) *requestError {
	out := &requestError{status: http.StatusUnprocessableEntity, code: "validation", message: "validation failed"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out.details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out.details[fe.Field()] = validationMessage(fe)
		}
		return out
	}
	out.details = map[string]string{"error": err.Error()}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "category":
		return "is not a known category"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

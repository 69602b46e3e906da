package utils

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jobdeck-dev/jobdeck/internal/errors"
)

// Envelope is the uniform response shape used across all endpoints.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Print(err.Error())
	}
}

func WriteSuccess(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Status: "success", Message: message})
}

// WriteErrorAndStatusCode renders err as an error envelope, using the embedded
// status code when present and 500 otherwise. No internals leak to the caller
// beyond the error message itself.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	WriteJSON(w, errors.StatusCode(err), Envelope{Status: "error", Message: err.Error()})
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		log.Print(err.Error())
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		log.Print(err.Error())
		return &errors.ErrorWithStatusCode{Message: "Required fields missing or malformed", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		log.Print(err.Error())
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}

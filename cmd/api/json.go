package main

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"sashambhu/internal/nepcal"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var nepaliPhone = regexp.MustCompile(`^98[4-9][0-9]{7}$`)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Matches 98[4-9] followed by 7 digits (e.g., 9841234567)
	Validate.RegisterValidation("nepaliphone", func(fl validator.FieldLevel) bool {
		return nepaliPhone.MatchString(fl.Field().String())
	})

	// English booking dates are plain ISO calendar dates (2025-06-01)
	Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(nepcal.ISODate, fl.Field().String())
		return err == nil
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
		Status:  status,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}
	return writeJSON(w, status, &envelope{Data: data})
}

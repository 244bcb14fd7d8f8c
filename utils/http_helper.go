package utils

import (
	"encoding/json"
	"net/http"

	"cardio_recommend/models"
)

// WriteFormattedJSON writes indented JSON for readability.
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.Encode(data)
}

// WriteSuccessResponse writes a success envelope.
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse writes an error envelope with the default message.
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	WriteFormattedJSON(w, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse writes an error envelope with a custom message.
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteFormattedJSON(w, models.NewCustomErrorResponse(code, message, data))
}

// DecodeProfile reads and validates the profile body of a request.
// Writes the error response itself and returns false on failure.
func DecodeProfile(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		WriteCustomErrorResponse(w, models.CodeInvalidParams, "invalid request body: "+err.Error(), map[string]interface{}{})
		return nil, false
	}
	if err := profile.Validate(); err != nil {
		WriteCustomErrorResponse(w, models.CodeInvalidParams, err.Error(), map[string]interface{}{})
		return nil, false
	}
	return &profile, true
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/homegame/api/internal/model"
	"github.com/homegame/api/internal/validate"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteOK writes the success envelope, merging the payload fields into
// {"status":"ok"}.
func WriteOK(w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["status"] = "ok"
	WriteJSON(w, status, body)
}

// WriteErrors writes the error envelope
func WriteErrors(w http.ResponseWriter, status int, errs ...model.FieldError) {
	WriteJSON(w, status, map[string]interface{}{
		"status": "error",
		"errors": errs,
	})
}

// WriteInternalError writes the fixed internal-error envelope
func WriteInternalError(w http.ResponseWriter) {
	WriteErrors(w, http.StatusInternalServerError, model.InternalError())
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// decodeAndValidate decodes the body into req and validates it, writing
// the error envelope itself on failure. Returns false if the request
// was rejected.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := DecodeJSON(r, req); err != nil {
		WriteErrors(w, http.StatusBadRequest, model.NamedError("body", "Invalid request body"))
		return false
	}
	if errs := validate.Struct(req); len(errs) > 0 {
		WriteErrors(w, http.StatusUnprocessableEntity, errs...)
		return false
	}
	return true
}

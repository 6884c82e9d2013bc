package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homegame/api/internal/model"
)

func TestWriteOK_MergesPayloadIntoEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, http.StatusOK, map[string]interface{}{"gameId": "game:1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "game:1", body["gameId"])
}

func TestWriteOK_EmptyPayload(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, http.StatusOK, nil)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"status": "ok"}, body)
}

func TestWriteErrors_EnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteErrors(rec, http.StatusForbidden,
		model.NamedError("NoInvite", "You do not have an invitation for that game"))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Status string             `json:"status"`
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "NoInvite", body.Errors[0].Param)
	assert.Equal(t, "body", body.Errors[0].Location)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"a@b.com","password":"x","extra":true}`))

	var req model.LoginRequest
	assert.Error(t, DecodeJSON(r, &req))
}

func TestDecodeAndValidate_WritesValidationEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/signup",
		strings.NewReader(`{"username":"ab","email":"not-an-email","password":"weak","password_conf":"weak"}`))

	var req model.SignupRequest
	ok := decodeAndValidate(rec, r, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Status string             `json:"status"`
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)

	params := make([]string, 0, len(body.Errors))
	for _, fe := range body.Errors {
		params = append(params, fe.Param)
	}
	assert.Contains(t, params, "username")
	assert.Contains(t, params, "email")
	assert.Contains(t, params, "password")
}

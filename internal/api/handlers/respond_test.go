package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondConflict_IncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "busy", map[string]int64{"staffId": 7})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"busy","details":{"staffId":7}}`, rec.Body.String())
}

func TestRespondError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"missing"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var ok payload
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`)), &ok))
	assert.Equal(t, "x", ok.Name)

	var unknown payload
	assert.Error(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"x"}`)), &unknown))

	var empty payload
	assert.Error(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &empty))
}

func TestRespondJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

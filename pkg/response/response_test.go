package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"slug": "gold-band"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.EqualValues(t, 200, body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "gold-band", data["slug"])
}

func TestValidationErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"title": "title is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "title is required", errs["title"])
}

func TestFromErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrInsufficientStock, http.StatusConflict},
		{apperr.ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		response.FromError(rec, tc.err)
		assert.Equal(t, tc.code, rec.Code, "%v", tc.err)
	}
}

func TestFromErrorWrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, errors.Join(errors.New("lookup product"), apperr.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFromErrorValidationCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, apperr.Validation(map[string]string{"price": "price must not be negative"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "price must not be negative", errs["price"])
}

func TestFromErrorInternalDoesNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, errors.New("mongo: connection refused to 10.0.0.3"))

	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestNewPagination(t *testing.T) {
	p := response.NewPagination(2, 12, 25)
	assert.Equal(t, 3, p.TotalPages)

	p = response.NewPagination(1, 12, 0)
	assert.Equal(t, 1, p.TotalPages)

	p = response.NewPagination(1, 12, 24)
	assert.Equal(t, 2, p.TotalPages)
}

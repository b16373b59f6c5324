package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	err := WriteSuccess(w, map[string]string{"id": "abc"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.Equal(t, map[string]interface{}{"id": "abc"}, resp.Data)
}

func TestWriteCreatedMessage(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteCreatedMessage(w, "created", nil))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "created", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestWriteError_TypedError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, apperrors.Forbidden("not the owner"))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "not the owner", resp.Error.Message)
}

func TestWriteError_UntypedErrorIsMasked(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error.Message)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/movies?page=3", nil)

	page, err := QueryInt(r, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	limit, err := QueryInt(r, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, limit)

	r = httptest.NewRequest("GET", "/movies?page=abc", nil)
	_, err = QueryInt(r, "page", 1)
	assert.Error(t, err)
}

func TestQueryFloat(t *testing.T) {
	r := httptest.NewRequest("GET", "/movies?minRating=7.5", nil)

	min, err := QueryFloat(r, "minRating")
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.InDelta(t, 7.5, *min, 0.0001)

	max, err := QueryFloat(r, "maxRating")
	require.NoError(t, err)
	assert.Nil(t, max)
}

package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/capsule-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

func setupEntryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := services.NewEntryService(repository.NewInMemoryEntryRepository(), time.UTC)
	router := gin.New()
	adapterHTTP.NewEntryHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func performRequest(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createEntry(t *testing.T, r http.Handler, payload map[string]any) domain.Entry {
	t.Helper()
	body, _ := json.Marshal(payload)
	w := performRequest(r, "POST", "/api/v1/entries", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var e domain.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestEntryHandler_Lifecycle(t *testing.T) {
	router := setupEntryRouter()

	created := createEntry(t, router, map[string]any{
		"date":    "2025-04-01T10:00:00Z",
		"content": "Spring",
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Happy", created.Mood)
	assert.Equal(t, "blue", created.Color)

	t.Run("Success: Get by id", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/v1/entries/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Spring")
	})

	t.Run("Success: Update", func(t *testing.T) {
		body := []byte(`{"date":"2025-04-02T10:00:00Z","mood":"Calm","content":"Edited","color":"#123456"}`)
		w := performRequest(router, "PUT", "/api/v1/entries/"+created.ID, body)
		require.Equal(t, http.StatusOK, w.Code)

		var e domain.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
		assert.Equal(t, created.ID, e.ID)
		assert.Equal(t, "#123456", e.Color)
	})

	t.Run("Success: Filter by day", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/v1/entries?day=2025-04-02", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []domain.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)

		w = performRequest(router, "GET", "/api/v1/entries?day=2025-04-01", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Fail: Bad day format", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/v1/entries?day=April", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success: Delete then NotFound", func(t *testing.T) {
		w := performRequest(router, "DELETE", "/api/v1/entries/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = performRequest(router, "DELETE", "/api/v1/entries/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = performRequest(router, "GET", "/api/v1/entries/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEntryHandler_BadInput(t *testing.T) {
	router := setupEntryRouter()

	t.Run("Fail: Malformed JSON", func(t *testing.T) {
		w := performRequest(router, "POST", "/api/v1/entries", []byte(`{"content":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Update unknown id", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/v1/entries/ghost", []byte(`{"content":"x"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

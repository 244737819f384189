package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/capsule-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
)

func setupPreferenceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := services.NewPreferenceService(repository.NewInMemoryPreferenceRepository())
	router := gin.New()
	adapterHTTP.NewPreferenceHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestPreferenceHandler_Settings(t *testing.T) {
	router := setupPreferenceRouter()

	w := performRequest(router, "GET", "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dark_mode":false,"display_name":"","has_avatar":false}`, w.Body.String())

	t.Run("Success: Dark mode", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/v1/preferences/dark-mode", []byte(`{"enabled":true}`))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"dark_mode":true`)
	})

	t.Run("Fail: Dark mode without flag", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/v1/preferences/dark-mode", []byte(`{}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success: Display name", func(t *testing.T) {
		w := performRequest(router, "PUT", "/api/v1/preferences/display-name", []byte(`{"name":" Grace "}`))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"display_name":"Grace"`)
	})

	t.Run("Fail: Invalid display names are 422", func(t *testing.T) {
		for _, body := range []string{`{"name":"G"}`, `{"name":"Grace"}`, `{"name":"this name is far too long"}`} {
			w := performRequest(router, "PUT", "/api/v1/preferences/display-name", []byte(body))
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
		}
	})
}

func TestPreferenceHandler_Avatar(t *testing.T) {
	router := setupPreferenceRouter()
	png := []byte("\x89PNG\r\n\x1a\n0000")

	w := performRequest(router, "GET", "/api/v1/preferences/avatar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ := http.NewRequest("PUT", "/api/v1/preferences/avatar", bytes.NewReader(png))
	req.Header.Set("Content-Type", "image/png")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_avatar":true`)

	w = performRequest(router, "GET", "/api/v1/preferences/avatar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, png, w.Body.Bytes())

	w = performRequest(router, "DELETE", "/api/v1/preferences/avatar", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, "GET", "/api/v1/preferences/avatar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "PUT", "/api/v1/preferences/avatar", []byte{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

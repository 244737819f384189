package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/capsule-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/adapters/wallet"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
	"github.com/comitanigiacomo/capsule-journal/internal/core/workers"
)

func TestNewRouter_InMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	entries := repository.NewInMemoryEntryRepository()
	prefs := repository.NewInMemoryPreferenceRepository()
	w := wallet.NewInMemoryWallet(0)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		EntryHandler:      adapterHTTP.NewEntryHandler(services.NewEntryService(entries, time.UTC)),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(entries, time.UTC), time.UTC),
		PreferenceHandler: adapterHTTP.NewPreferenceHandler(services.NewPreferenceService(prefs)),
		BackupHandler:     adapterHTTP.NewBackupHandler(services.NewBackupService(entries, prefs, nil)),
		ShopHandler:       adapterHTTP.NewShopHandler(services.NewShopService(w, workers.NewCreditScheduler(w), 0)),
		StartTime:         time.Now(),
	})

	t.Run("Health without backing services", func(t *testing.T) {
		rec := performRequest(router, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database":"disabled"`)
		assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		rec := performRequest(router, "OPTIONS", "/api/v1/entries", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Entries written through the API feed the stats", func(t *testing.T) {
		rec := performRequest(router, "POST", "/api/v1/entries", []byte(`{"date":"2025-07-01T12:00:00Z"}`))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = performRequest(router, "GET", "/api/v1/stats?today=2025-07-01", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"current_streak":1`)
	})
}

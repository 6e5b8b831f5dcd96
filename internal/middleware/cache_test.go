package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/himanshu1091/store-rating-api/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "cache"}
}

// cachedRequest sends one request through the cache middleware with a handler
// that counts its invocations, so tests can tell a HIT from a re-render.
func cachedRequest(t *testing.T, mw echo.MiddlewareFunc, method, storeID string, status int, hits *int) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/ratings/average/"+storeID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/ratings/average/:storeId")
	c.SetParamNames("storeId")
	c.SetParamValues(storeID)
	h := mw(func(c echo.Context) error {
		*hits++
		return c.JSON(status, echo.Map{"averageRating": 4.5})
	})
	require.NoError(t, h(c))
	return rec
}

func TestResponseCachePassthroughWithoutRedis(t *testing.T) {
	mw := ResponseCache(cacheTestConfig(), nil)
	hits := 0
	for i := 0; i < 2; i++ {
		rec := cachedRequest(t, mw, http.MethodGet, "7", http.StatusOK, &hits)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-Cache"))
	}
	require.Equal(t, 2, hits)
}

func TestResponseCacheMissThenHit(t *testing.T) {
	mw := ResponseCache(cacheTestConfig(), testRedis(t))
	hits := 0

	rec := cachedRequest(t, mw, http.MethodGet, "7", http.StatusOK, &hits)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.Equal(t, 1, hits)
	first := rec.Body.String()

	rec = cachedRequest(t, mw, http.MethodGet, "7", http.StatusOK, &hits)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	require.Equal(t, 1, hits) // served from Redis, handler not re-run
	require.JSONEq(t, first, rec.Body.String())
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
}

func TestResponseCacheKeysPerStore(t *testing.T) {
	mw := ResponseCache(cacheTestConfig(), testRedis(t))
	hits := 0

	require.Equal(t, "MISS", cachedRequest(t, mw, http.MethodGet, "7", http.StatusOK, &hits).Header().Get("X-Cache"))
	require.Equal(t, "MISS", cachedRequest(t, mw, http.MethodGet, "8", http.StatusOK, &hits).Header().Get("X-Cache"))
	require.Equal(t, 2, hits)
}

func TestResponseCacheSkipsNon200(t *testing.T) {
	mw := ResponseCache(cacheTestConfig(), testRedis(t))
	hits := 0

	rec := cachedRequest(t, mw, http.MethodGet, "7", http.StatusNotFound, &hits)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = cachedRequest(t, mw, http.MethodGet, "7", http.StatusNotFound, &hits)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.Equal(t, 2, hits)
}

func TestResponseCacheIgnoresNonGet(t *testing.T) {
	mw := ResponseCache(cacheTestConfig(), testRedis(t))
	hits := 0
	for i := 0; i < 2; i++ {
		rec := cachedRequest(t, mw, http.MethodPost, "7", http.StatusOK, &hits)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-Cache"))
	}
	require.Equal(t, 2, hits)
}

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

// The middleware order in newRouter: request logging is outermost so the
// request ID it assigns is visible to the inner 500 logger.
func middlewareChain(inner http.Handler) http.Handler {
	return RequestLoggingMiddleware(LogInternalServerErrors(inner))
}

func TestInternalServerErrorLogCarriesRequestID(t *testing.T) {
	logs := captureLogs(t)

	handler := middlewareChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	requestID := rec.Header().Get("X-Request-Id")
	require.NotEmpty(t, requestID)

	assert.Contains(t, logs.String(), "500 error response")
	assert.Contains(t, logs.String(), requestID)
}

func TestPanicRecoveryAnswers500(t *testing.T) {
	logs := captureLogs(t)

	handler := middlewareChain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "Recovered from panic")
}

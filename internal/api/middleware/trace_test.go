package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekitchen/muse-api/internal/api/shared"
)

func TestTraceMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.NotEmpty(t, seen, "handlers see the trace ID in context")
	assert.Len(t, seen, 2*shared.TraceIDLength)
	assert.Equal(t, seen, w.Header().Get("X-Trace-ID"),
		"the response echoes the same ID")
}

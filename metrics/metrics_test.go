package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/smallserver/metrics"
)

func TestMiddleware_RecordsRequests(t *testing.T) {
	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("abc"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/a.txt", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "abc", rec.Body.String())

	body := scrape(t)
	assert.Contains(t, body, `smallserver_http_requests_total{method="GET",status="206"}`)
	assert.Contains(t, body, "smallserver_response_bytes_total")
}

func TestRecordFallbackAndEncoding(t *testing.T) {
	metrics.RecordFallback("not_found")
	metrics.RecordEncoding("gzip")
	metrics.RecordAborted()

	body := scrape(t)
	assert.Contains(t, body, `smallserver_fallback_pages_total{page="not_found"}`)
	assert.Contains(t, body, `smallserver_encoded_responses_total{encoding="gzip"}`)
	assert.Contains(t, body, "smallserver_aborted_responses_total")
}

func scrape(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://painel.detran.ba.gov.br", "*.exemplo.com"})(okHandler)

	tests := []struct {
		name    string
		method  string
		origin  string
		status  int
		allowed bool
	}{
		{name: "origem exata", method: http.MethodGet, origin: "https://painel.detran.ba.gov.br", status: http.StatusOK, allowed: true},
		{name: "subdomínio", method: http.MethodGet, origin: "https://app.exemplo.com", status: http.StatusOK, allowed: true},
		{name: "domínio raiz fora do curinga", method: http.MethodGet, origin: "https://exemplo.com", status: http.StatusOK},
		{name: "origem desconhecida", method: http.MethodGet, origin: "https://evil.test", status: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, origin: "https://app.exemplo.com", status: http.StatusNoContent, allowed: true},
		{name: "preflight sem origem", method: http.MethodOptions, status: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/appointments", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
				assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSWildcard(t *testing.T) {
	handler := CORS([]string{"*"})(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimit(t *testing.T) {
	handler := IPRateLimit(NewRateLimiter(0.001, 2))(okHandler)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("200.1.1.1").Code)
	assert.Equal(t, http.StatusOK, call("200.1.1.1").Code)

	rec := call("200.1.1.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT", body.Error.Code)

	assert.Equal(t, http.StatusOK, call("200.2.2.2").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.0.9:5555"
	assert.Equal(t, "192.168.0.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", " 177.1.2.3 , 10.0.0.1")
	assert.Equal(t, "177.1.2.3", clientIP(req))

	req.Header.Set("X-Real-IP", "187.4.5.6")
	assert.Equal(t, "187.4.5.6", clientIP(req))
}

func TestRecoverAndLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := chimiddleware.RequestID(Logging(logger)(Recover(panicking)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL"`)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "panic recuperado")
	assert.Contains(t, lines[0], "request_id")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "/views/stats", entry["path"])
	assert.EqualValues(t, 500, entry["status"])
}

func TestRecoverRethrowsAbort(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

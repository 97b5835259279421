package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://campus.example.com/", " http://localhost:3000"}, next)

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
		wantExpose  string
		wantReached bool
	}{
		{"preflight allowed origin", http.MethodOptions, "https://campus.example.com", true, http.StatusNoContent, "https://campus.example.com", "", false},
		{"preflight unknown origin", http.MethodOptions, "https://evil.example.com", true, http.StatusNoContent, "", "", false},
		{"request allowed origin", http.MethodPost, "http://localhost:3000", false, http.StatusOK, "http://localhost:3000", "Retry-After", true},
		{"request unknown origin", http.MethodGet, "https://evil.example.com", false, http.StatusOK, "", "", true},
		{"plain options", http.MethodOptions, "http://localhost:3000", false, http.StatusOK, "http://localhost:3000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, "http://test/events/ev-1/registrations", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantExpose, rr.Header().Get("Access-Control-Expose-Headers"))
			assert.Equal(t, tt.wantReached, reached)
		})
	}
}

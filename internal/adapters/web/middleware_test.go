package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"invoice-desk/internal/adapters/web"
)

func corsHandler(t *testing.T, allowedOrigins string, reached *bool) http.Handler {
	t.Helper()
	return web.CORS(allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS(t *testing.T) {
	const allowed = "https://app.example.com"

	tests := []struct {
		name          string
		method        string
		origin        string
		requestMethod string // Access-Control-Request-Method header
		wantStatus    int
		wantReached   bool
		wantAllowHdr  bool
	}{
		{
			name:          "preflight from allowed origin is short-circuited",
			method:        http.MethodOptions,
			origin:        allowed,
			requestMethod: "POST",
			wantStatus:    http.StatusNoContent,
			wantReached:   false,
			wantAllowHdr:  true,
		},
		{
			name:          "preflight from disallowed origin reaches the router",
			method:        http.MethodOptions,
			origin:        "https://evil.example.com",
			requestMethod: "POST",
			wantStatus:    http.StatusOK,
			wantReached:   true,
			wantAllowHdr:  false,
		},
		{
			name:        "plain OPTIONS without preflight header reaches the router",
			method:      http.MethodOptions,
			origin:      allowed,
			wantStatus:  http.StatusOK,
			wantReached: true,
			wantAllowHdr: true,
		},
		{
			name:        "OPTIONS without origin reaches the router",
			method:      http.MethodOptions,
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:         "simple GET from allowed origin gets headers",
			method:       http.MethodGet,
			origin:       allowed,
			wantStatus:   http.StatusOK,
			wantReached:  true,
			wantAllowHdr: true,
		},
		{
			name:        "simple GET from disallowed origin gets no headers",
			method:      http.MethodGet,
			origin:      "https://evil.example.com",
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			handler := corsHandler(t, allowed, &reached)

			req := httptest.NewRequest(tt.method, "/api/invoices", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.requestMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.requestMethod)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != tt.wantReached {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReached)
			}
			gotAllow := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowHdr && gotAllow != tt.origin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", gotAllow, tt.origin)
			}
			if !tt.wantAllowHdr && gotAllow != "" {
				t.Errorf("unexpected Access-Control-Allow-Origin %q", gotAllow)
			}
		})
	}
}

func TestCORS_NoConfiguredOrigins(t *testing.T) {
	var reached bool
	handler := corsHandler(t, "", &reached)

	req := httptest.NewRequest(http.MethodOptions, "/api/invoices", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Error("with no configured origins the request should reach the router")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Access-Control-Allow-Origin %q", got)
	}
}

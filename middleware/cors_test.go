package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowedOrigins := []string{
		"https://example.com",
		"http://localhost:5173",
	}

	testCases := []struct {
		name     string
		origin   string
		expected bool
	}{
		{name: "Allowed origin", origin: "https://example.com", expected: true},
		{name: "Another allowed origin", origin: "http://localhost:5173", expected: true},
		{name: "Disallowed origin", origin: "https://evil.com", expected: false},
		{name: "Empty origin", origin: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isAllowedOrigin(tc.origin, allowedOrigins)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v for origin %s", tc.expected, result, tc.origin)
			}
		})
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	originalCors := os.Getenv("CORS_ALLOWED_ORIGINS")
	defer os.Setenv("CORS_ALLOWED_ORIGINS", originalCors)

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://test1.com,https://test2.com")
	origins := getAllowedOrigins()
	if len(origins) != 2 {
		t.Errorf("Expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://test1.com" || origins[1] != "https://test2.com" {
		t.Errorf("Expected configured origins, got %v", origins)
	}

	os.Unsetenv("CORS_ALLOWED_ORIGINS")
	origins = getAllowedOrigins()
	hasLocalhost := false
	for _, origin := range origins {
		if strings.Contains(origin, "localhost") {
			hasLocalhost = true
			break
		}
	}
	if !hasLocalhost {
		t.Error("Default origins should include localhost development servers")
	}
}

func TestEnableCORS(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
	}{
		{name: "Normal GET request with allowed origin", method: "GET", origin: "http://localhost:5173", expectedStatus: http.StatusOK},
		{name: "OPTIONS preflight request", method: "OPTIONS", origin: "http://localhost:5173", expectedStatus: http.StatusOK},
		{name: "Request with no origin", method: "GET", origin: "", expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/transactions", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rr.Code)
			}
			if rr.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("Expected Access-Control-Allow-Methods header to be set")
			}
			if rr.Header().Get("Access-Control-Allow-Origin") == "" {
				t.Error("Expected Access-Control-Allow-Origin header to be set")
			}
		})
	}
}

func TestCORSWithNonAllowedOrigin(t *testing.T) {
	originalEnv := os.Getenv("ENV")
	defer os.Setenv("ENV", originalEnv)
	os.Setenv("ENV", "production")

	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/transactions", nil)
	req.Header.Set("Origin", "https://evil.com")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	allowOrigin := rr.Header().Get("Access-Control-Allow-Origin")
	if allowOrigin == "https://evil.com" {
		t.Error("Non-allowed origin should not be reflected in Access-Control-Allow-Origin")
	}
	if allowOrigin == "" {
		t.Error("Access-Control-Allow-Origin should be set to a default value")
	}
}

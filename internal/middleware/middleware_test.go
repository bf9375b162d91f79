package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admin-panel/internal/auth"
	"admin-panel/internal/model"
	"admin-panel/internal/response"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Identity), args.Error(1)
}

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:5173"}

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
		expectHandler  bool
		expectOrigin   string
	}{
		{
			name:           "Preflight request",
			method:         http.MethodOptions,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusNoContent,
			expectHandler:  false,
			expectOrigin:   "http://localhost:5173",
		},
		{
			name:           "GET from allowed origin",
			method:         http.MethodGet,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
			expectOrigin:   "http://localhost:5173",
		},
		{
			name:           "PATCH from unknown origin",
			method:         http.MethodPatch,
			origin:         "http://evil.test",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
			expectOrigin:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORS(allowed)(testHandler)

			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, tt.expectOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setup          func(m *MockAuthenticator)
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:       "Valid token",
			authHeader: "Bearer good-token",
			setup: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "good-token").Return(auth.Identity{UserID: 1, Email: "a@b.c"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:       "Lowercase scheme",
			authHeader: "bearer good-token",
			setup: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "good-token").Return(auth.Identity{UserID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Missing header",
			authHeader:     "",
			setup:          func(m *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setup:          func(m *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Empty token",
			authHeader:     "Bearer ",
			setup:          func(m *MockAuthenticator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "Rejected token",
			authHeader: "Bearer expired",
			setup: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "expired").Return(auth.Identity{},
					model.NewDomainError(model.KindUnauthorised, model.ErrCodeUnauthorised, "invalid or expired token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "Store unavailable",
			authHeader: "Bearer good-token",
			setup: func(m *MockAuthenticator) {
				m.On("Authenticate", mock.Anything, "good-token").Return(auth.Identity{}, model.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := new(MockAuthenticator)
			tt.setup(authenticator)

			var seen auth.Identity
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				seen, _ = auth.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := Authenticate(authenticator, zerolog.Nop())(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			if tt.expectHandler {
				assert.Equal(t, int64(1), seen.UserID)
			} else {
				var body response.Failure
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedStatus, body.StatusCode)
			}
			authenticator.AssertExpectations(t)
		})
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "Generated when absent", incoming: "", keep: false},
		{name: "Incoming ID reused", incoming: "abc-123", keep: true},
		{name: "Oversized ID replaced", incoming: strings.Repeat("x", 200), keep: false},
		{name: "ID with spaces replaced", incoming: "a b", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = response.RequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(response.HeaderRequestID, tt.incoming)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(response.HeaderRequestID))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
				assert.Len(t, seen, 36)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name          string
		handlerStatus int
		expectedLevel string
	}{
		{name: "Successful request", handlerStatus: http.StatusOK, expectedLevel: "info"},
		{name: "Client error", handlerStatus: http.StatusNotFound, expectedLevel: "warn"},
		{name: "Server error", handlerStatus: http.StatusInternalServerError, expectedLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			handler := RequestID(Logging(logger)(testHandler))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.handlerStatus, w.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.expectedLevel, entry["level"])
			assert.Equal(t, float64(tt.handlerStatus), entry["status"])
			assert.Equal(t, w.Header().Get(response.HeaderRequestID), entry["request_id"])
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		shouldPanic    bool
		panicValue     interface{}
		expectedStatus int
	}{
		{
			name:           "No panic",
			shouldPanic:    false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Panic with string",
			shouldPanic:    true,
			panicValue:     "something went wrong",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Panic with error",
			shouldPanic:    true,
			panicValue:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Recovery(logger)(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			// Ensure we don't panic in the test
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.shouldPanic {
				assert.Contains(t, w.Body.String(), "Internal server error")
				assert.NotContains(t, w.Body.String(), "something went wrong")
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		expectedStatus int
	}{
		{
			name:           "Status OK",
			statusCode:     http.StatusOK,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Status Created",
			statusCode:     http.StatusCreated,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Status Not Found",
			statusCode:     http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			rw.WriteHeader(tt.statusCode)

			assert.Equal(t, tt.expectedStatus, rw.statusCode)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

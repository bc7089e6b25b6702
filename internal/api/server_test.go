package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/ratelimit"
	"github.com/CyberCatD/youtube-to-list-app/internal/retail"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
	"github.com/CyberCatD/youtube-to-list-app/internal/store"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// testEnvelope mirrors APIEnvelope with typed data.
type testEnvelope[T any] struct {
	Version int               `json:"v"`
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

func setupTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	st, err := store.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	services := &Services{
		Recipe:      service.NewRecipeService(st, nil),
		GroceryList: service.NewGroceryListService(st, grocery.New(retail.US(), nil), nil),
	}
	s := NewServer(st, services, opts, nil)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return env
}

// createRecipe posts a recipe and returns its ID.
func (ts *testServer) createRecipe(t *testing.T, name string, ingredients ...map[string]any) int64 {
	t.Helper()
	resp := ts.api.Post("/api/v1/recipes", map[string]any{
		"name":        name,
		"ingredients": ingredients,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[RecipeResponse](t, resp).Data.ID
}

func TestEnvelopeTransformer(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		input       any
		wantSuccess bool
		wantError   string
		wantCode    string
	}{
		{"success", "200", map[string]string{"id": "gl-1"}, true, "", ""},
		{"created", "201", map[string]string{"id": "gl-1"}, true, "", ""},
		{"no content", "204", nil, true, "", ""},
		{"plain error", "500", errors.New("boom"), false, "boom", ""},
		{"api error", "409", &APIError{Code: "CONFLICT", Message: "already exists"}, false, "already exists", "CONFLICT"},
		{"non-error body", "400", "oops", false, "request failed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			env, ok := result.(APIEnvelope)
			require.True(t, ok)
			assert.Equal(t, EnvelopeVersion, env.Version)
			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
			assert.Equal(t, tt.wantCode, env.Code)
			if tt.wantSuccess {
				assert.Equal(t, tt.input, env.Data)
			}
		})
	}
}

func TestEnvelope_JSONShape(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"v":%d,"success":true}`, EnvelopeVersion), string(raw))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:5000", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 remote addr", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", nil, "192.0.2.9", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.New(60, 2)
	defer limiter.Stop()
	ts := setupTestServer(t, Options{RateLimiter: limiter})

	body := map[string]any{"recipes": []any{}}
	for range 2 {
		resp := ts.api.Post("/api/v1/consolidate", "X-Real-IP: 203.0.113.1", body)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Post("/api/v1/consolidate", "X-Real-IP: 203.0.113.1", body)
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Other clients and reads are unaffected.
	resp = ts.api.Post("/api/v1/consolidate", "X-Real-IP: 203.0.113.2", body)
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Get("/health", "X-Real-IP: 203.0.113.1")
	assert.Equal(t, http.StatusOK, resp.Code)
}

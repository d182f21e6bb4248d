package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/tasks-api/internal/web"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	h, err := web.NewHandler(zap.NewNop())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	h.Register(r)

	return r
}

func TestHandler_Pages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		header  http.Header
		base    string
		content string
	}{
		{
			"index",
			"/",
			nil,
			`"http://example.com/"`,
			`id="task-list"`,
		},
		{
			"login with trailing slash",
			"/login/",
			nil,
			`"http://example.com/"`,
			`id="login-form"`,
		},
		{
			"forwarded https",
			"/login",
			http.Header{"X-Forwarded-Proto": []string{"https"}},
			`"https://example.com/"`,
			`id="login-form"`,
		},
	}

	router := newRouter(t)

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				req.Header[k] = v
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			require.Equal(t, http.StatusOK, res.StatusCode)
			require.Contains(t, res.Header.Get("Content-Type"), "text/html")
			require.Contains(t, res.Header.Get("Cache-Control"), "no-cache")

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			require.Contains(t, string(body), tt.base)
			require.Contains(t, string(body), tt.content)
		})
	}
}

func TestHandler_Static(t *testing.T) {
	t.Parallel()

	router := newRouter(t)

	for _, path := range []string{"/static/js/api.js", "/static/js/auth.js", "/static/js/tasks.js", "/static/css/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, path)
		require.NotEmpty(t, strings.TrimSpace(rr.Body.String()), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/static/js/missing.js", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/tasks-api/internal/rest"
)

func TestRegisterOpenAPI(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	rest.RegisterOpenAPI(router)

	for _, path := range []string{"/openapi3.json", "/openapi3.yaml"} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, res.Code, path)

		doc, err := openapi3.NewLoader().LoadFromData(res.Body.Bytes())
		require.NoError(t, err, path)
		require.NoError(t, doc.Validate(context.Background()), path)
		require.Contains(t, doc.Paths, "/api/tasks/{id}/")
	}
}

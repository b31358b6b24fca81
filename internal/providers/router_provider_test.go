package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRouterProvider_RegistersRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/a", routes[0].Url)
	assert.Equal(t, "/b", routes[1].Url)
}

func TestRouterProvider_GetRejectsPost(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())

	req := httptest.NewRequest(http.MethodPost, "/a", nil)
	w := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterProvider_GetAllowsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	w := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterProvider_PostRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/b", dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/b", nil)
	w := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

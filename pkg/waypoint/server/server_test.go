package server_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/server"
)

type linkBody struct {
	URL     string         `json:"url"`
	Handled bool           `json:"handled"`
	Route   map[string]any `json:"route"`
	Error   string         `json:"error"`
}

func newServer(t *testing.T) (*waypoint.App, http.Handler) {
	t.Helper()
	app, err := waypoint.New(waypoint.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Close() })
	return app, server.New(app, []string{"ABCDE12345.com.example.shop"}).Handler()
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, linkBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body linkBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestUniversalLinkIsDispatched(t *testing.T) {
	app, h := newServer(t)

	rec, body := get(t, h, "https://shop.example.com/products/42/reviews?ref=mail")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.True(t, body.Handled)
	require.Equal(t, "https://shop.example.com/products/42/reviews?ref=mail", body.URL)
	require.Equal(t, "productDetail", body.Route["kind"])
	require.Equal(t, "42", body.Route["productId"])

	require.Equal(t, []nav.Screen{
		nav.ScreenHome, nav.ScreenProductList, nav.ScreenProductDetail, nav.ScreenProductReviews,
	}, app.Screens())
}

func TestUnknownLinks(t *testing.T) {
	app, h := newServer(t)

	rec, body := get(t, h, "https://shop.example.com/products/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, body.Handled)
	require.Equal(t, "missing", body.Route["productId"])

	rec, body = get(t, h, "https://elsewhere.example.org/products/42")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Nil(t, body.Route)

	require.Equal(t, []nav.Screen{nav.ScreenHome}, app.Screens())
}

func TestHealth(t *testing.T) {
	_, h := newServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSiteAssociation(t *testing.T) {
	_, h := newServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/apple-app-site-association", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		AppLinks struct {
			Apps    []string `json:"apps"`
			Details []struct {
				AppID string   `json:"appID"`
				Paths []string `json:"paths"`
			} `json:"details"`
		} `json:"applinks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Empty(t, doc.AppLinks.Apps)
	require.Len(t, doc.AppLinks.Details, 1)
	require.Equal(t, "ABCDE12345.com.example.shop", doc.AppLinks.Details[0].AppID)
	require.Equal(t, server.LinkPaths, doc.AppLinks.Details[0].Paths)
}

type failing struct{}

func (failing) HandleActivity(router.Activity) (bool, error) {
	return false, errors.New("tree misuse")
}

func (failing) Parse(string) (*route.Route, error) {
	return route.New(route.KindCart), nil
}

func TestDispatchErrorIsServerError(t *testing.T) {
	h := server.New(failing{}, nil).Handler()

	rec, body := get(t, h, "https://shop.example.com/cart")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "tree misuse", body.Error)
	require.Equal(t, "cart", body.Route["kind"])
}

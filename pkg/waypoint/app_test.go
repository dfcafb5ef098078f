package waypoint_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

func newStartedApp(t *testing.T) *waypoint.App {
	t.Helper()
	app, err := waypoint.New(waypoint.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestHandleURL(t *testing.T) {
	app := newStartedApp(t)

	handled, err := app.HandleURL("myapp://products/42")
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, "app [started]\n  products [started]\n    product-detail(42) [started]\n", app.Tree())

	handled, err = app.HandleURL("https://shop.example.com/products/42/reviews")
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, []nav.Screen{
		nav.ScreenHome, nav.ScreenProductList, nav.ScreenProductDetail, nav.ScreenProductReviews,
	}, app.Screens())

	handled, err = app.HandleURL("myapp://products/99")
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, "app [started]\n  products [started]\n    product-detail(99) [started]\n", app.Tree())
	require.NoError(t, coordinator.Validate(app.Root()))
}

func TestUnregisteredSchemeLeavesTreeUnchanged(t *testing.T) {
	app := newStartedApp(t)
	before := app.Tree()

	require.False(t, app.CanHandleURL("otherscheme://products/42"))
	handled, err := app.HandleURL("otherscheme://products/42")
	require.NoError(t, err)
	require.False(t, handled)

	_, err = app.Parse("otherscheme://products/42")
	require.True(t, waypoint.IsUnhandled(err))

	require.Equal(t, before, app.Tree())
	require.Equal(t, []nav.Screen{nav.ScreenHome}, app.Screens())
	require.Equal(t, int64(1), app.Router().Stats().Rejected)
}

func TestHandleActivity(t *testing.T) {
	app := newStartedApp(t)

	handled, err := app.HandleActivity(router.Activity{
		Type:       constants.ActivityTypeBrowsingWeb,
		WebpageURL: "https://shop.example.com/profile/ada",
	})
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, []nav.Screen{nav.ScreenHome, nav.ScreenUserProfile}, app.Screens())

	handled, err = app.HandleActivity(router.Activity{Type: "handoff", WebpageURL: "https://shop.example.com/cart"})
	require.NoError(t, err)
	require.False(t, handled)
}

func TestAppLifecycle(t *testing.T) {
	app, err := waypoint.New(waypoint.DefaultConfig())
	require.NoError(t, err)

	_, err = app.HandleURL("myapp://cart")
	require.ErrorIs(t, err, waypoint.ErrNotStarted)

	require.NoError(t, app.Start())
	require.ErrorIs(t, app.Start(), coordinator.ErrAlreadyStarted)

	_, err = app.HandleURL("myapp://products/42")
	require.NoError(t, err)

	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
	require.Equal(t, coordinator.StateFinished, app.Root().State())
	require.Empty(t, app.Screens())

	_, ok := app.Router().Root()
	require.False(t, ok)

	_, err = app.HandleURL("myapp://cart")
	require.ErrorIs(t, err, waypoint.ErrClosed)
	require.ErrorIs(t, app.Start(), waypoint.ErrClosed)
}

func TestNewWithCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: "p1"
    name: Widget
    price: 5
`), 0644))

	cfg := waypoint.DefaultConfig()
	cfg.Catalog.Path = path
	app, err := waypoint.New(cfg)
	require.NoError(t, err)
	require.NoError(t, app.Start())

	handled, err := app.HandleURL("myapp://products/p1")
	require.NoError(t, err)
	require.True(t, handled)

	handled, err = app.HandleURL("myapp://products/42")
	require.NoError(t, err)
	require.False(t, handled)
}

func TestNewInfrastructureErrors(t *testing.T) {
	cfg := waypoint.DefaultConfig()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := waypoint.New(cfg)
	require.True(t, waypoint.IsInfrastructureError(err))

	cfg = waypoint.DefaultConfig()
	cfg.Router.Schemes = nil
	_, err = waypoint.New(cfg)
	require.True(t, waypoint.IsInfrastructureError(err))
}

func TestConcurrentDispatchKeepsTreeValid(t *testing.T) {
	app := newStartedApp(t)

	urls := []string{
		"myapp://products/42",
		"myapp://products/99/reviews",
		"myapp://settings",
		"myapp://products",
		"myapp://home",
		"myapp://profile/ada",
		"https://shop.example.com/products/7",
		"myapp://nowhere",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := app.HandleURL(urls[(i+j)%len(urls)])
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, coordinator.Validate(app.Root()))
	require.LessOrEqual(t, coordinator.Size(app.Root()), 3)
	require.Equal(t, int64(400), app.Router().Stats().Dispatched)
}

func TestBuildURLRoundTrip(t *testing.T) {
	app := newStartedApp(t)

	for _, rt := range []*route.Route{
		route.New(route.KindHome),
		route.ProductDetail("abc-123", route.WithChild(route.New(route.KindProductReviews))),
		route.New(route.KindUserProfile, route.WithUserID("ada"), route.WithQueryParam("tab", "orders")),
	} {
		raw, err := app.BuildURL(rt)
		require.NoError(t, err)

		parsed, err := app.Parse(raw)
		require.NoError(t, err)
		require.True(t, rt.Equal(parsed), fmt.Sprintf("%s != %s", rt, parsed))
	}
}

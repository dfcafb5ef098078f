// Package flows contains the app's coordinators: the App root, the product
// list flow and the product detail flow.
//
// Route resolution is top-down and single-path. App is asked first; it either
// presents a screen itself or hands the route to its Products child, creating
// it on demand, which in turn resolves it or hands it to a ProductDetail child.
// A coordinator that reports it can handle a route must succeed, so every
// HandleRoute checks the whole chain before it touches the tree or the screen
// stack.
//
// A product's reviews are a screen pushed by ProductDetail, not a coordinator
// of their own.
package flows

import (
	"log/slog"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/viewmodel"
)

// Deps are the collaborators shared by every flow. None of them are owned by
// the flows.
type Deps struct {
	Navigator nav.Navigator
	Catalog   *catalog.Catalog
	Texts     *viewmodel.Texts
}

func logger() *slog.Logger {
	return internal.GetInternalLogger().With("component", "flows")
}

// canShowProduct reports whether r is a product detail route for a product in
// the catalog, optionally followed by that product's reviews and nothing else.
func canShowProduct(cat *catalog.Catalog, r *route.Route) bool {
	if r.Kind() != route.KindProductDetail {
		return false
	}
	if _, ok := cat.Product(r.ProductID()); !ok {
		return false
	}
	child := r.Child()
	return child == nil || (child.Kind() == route.KindProductReviews && !child.HasChild())
}

package flows

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/viewmodel"
)

// ProductDetail shows one product and, on request, its reviews.
type ProductDetail struct {
	*coordinator.Node

	deps    Deps
	product *catalog.Product
	vm      *viewmodel.ProductDetail
	base    int
	added   int
}

// NewProductDetail creates a detail flow for p.
func NewProductDetail(deps Deps, p catalog.Product) *ProductDetail {
	c := &ProductDetail{deps: deps, product: &p}
	c.Node = coordinator.NewNode(c, "product-detail", deps.Navigator)
	return c
}

// Begin pushes the detail screen.
func (c *ProductDetail) Begin() error {
	c.base = c.deps.Navigator.Len()
	c.present()
	return nil
}

func (c *ProductDetail) String() string {
	if c.product == nil {
		return c.Name()
	}
	return c.Name() + "(" + c.product.ID + ")"
}

// Product returns the product currently displayed. It is unset between a
// reset and the next route.
func (c *ProductDetail) Product() (catalog.Product, bool) {
	if c.product == nil {
		return catalog.Product{}, false
	}
	return *c.product, true
}

// CartAdditions counts add-to-cart requests from the detail screen.
func (c *ProductDetail) CartAdditions() int {
	return c.added
}

// CanHandleRoute accepts known products and, once one is shown, its reviews.
func (c *ProductDetail) CanHandleRoute(r *route.Route) bool {
	return c.Guard("can_handle_route") == nil && c.canHandle(r)
}

func (c *ProductDetail) canHandle(r *route.Route) bool {
	switch r.Kind() {
	case route.KindProductDetail:
		return canShowProduct(c.deps.Catalog, r)
	case route.KindProductReviews:
		return c.product != nil && !r.HasChild()
	default:
		return false
	}
}

// HandleRoute swaps in the routed product and pushes reviews when asked.
func (c *ProductDetail) HandleRoute(r *route.Route) (bool, error) {
	if err := c.Guard("handle_route"); err != nil {
		return false, err
	}
	if !c.canHandle(r) {
		return false, nil
	}

	if r.Kind() == route.KindProductDetail {
		p, _ := c.deps.Catalog.Product(r.ProductID())
		if c.product == nil || c.product.ID != p.ID {
			if c.product != nil {
				c.ResetForDeepLink()
			}
			c.product = &p
			c.present()
		} else {
			c.deps.Navigator.PopToDepth(c.base + 1)
		}

		if !r.HasChild() {
			return true, nil
		}
	}

	c.showReviews()
	return true, nil
}

// ResetForDeepLink drops the displayed product and its screens.
func (c *ProductDetail) ResetForDeepLink() {
	c.product = nil
	if c.vm != nil {
		c.vm.SetDelegate(nil)
		c.vm = nil
	}
	c.deps.Navigator.PopToDepth(c.base)
}

// Teardown pops the detail screen and anything above it.
func (c *ProductDetail) Teardown() {
	c.deps.Navigator.PopToDepth(c.base)
}

func (c *ProductDetail) present() {
	c.vm = viewmodel.NewProductDetail(*c.product, c.deps.Texts)
	c.vm.SetDelegate(c)
	c.deps.Navigator.Push(nav.ScreenProductDetail, c.vm)
}

func (c *ProductDetail) showReviews() {
	c.deps.Navigator.PopToDepth(c.base + 1)
	c.deps.Navigator.Push(nav.ScreenProductReviews, viewmodel.ReviewsPage(c.deps.Texts, *c.product))
}

// DidRequestReviews pushes the reviews screen.
func (c *ProductDetail) DidRequestReviews(*viewmodel.ProductDetail) {
	if c.product != nil {
		c.showReviews()
	}
}

// DidRequestAddToCart counts the request.
func (c *ProductDetail) DidRequestAddToCart(vm *viewmodel.ProductDetail) {
	c.added++
	logger().Info("added to cart", "product", vm.Product().ID, "count", c.added)
}

// DidRequestDismiss finishes the flow.
func (c *ProductDetail) DidRequestDismiss(*viewmodel.ProductDetail) {
	if err := c.Finish(); err != nil {
		logger().Error("dismiss product detail", "error", err)
	}
}

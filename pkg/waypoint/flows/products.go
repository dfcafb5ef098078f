package flows

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/viewmodel"
)

// Products runs the product list and owns at most one ProductDetail flow.
type Products struct {
	*coordinator.Node

	deps   Deps
	list   *viewmodel.ProductList
	detail *ProductDetail
	base   int
}

// NewProducts creates the product browsing flow.
func NewProducts(deps Deps) *Products {
	c := &Products{deps: deps}
	c.Node = coordinator.NewNode(c, "products", deps.Navigator)
	return c
}

// Begin pushes the product list.
func (c *Products) Begin() error {
	c.base = c.deps.Navigator.Len()
	c.list = viewmodel.NewProductList(c.deps.Catalog, c.deps.Texts)
	c.list.SetDelegate(c)
	c.list.Load()
	c.deps.Navigator.Push(nav.ScreenProductList, c.list)
	return nil
}

// List returns the list view-model once started.
func (c *Products) List() *viewmodel.ProductList {
	return c.list
}

// Detail returns the active product detail flow, if any.
func (c *Products) Detail() (*ProductDetail, bool) {
	return c.detail, c.detail != nil
}

// CanHandleRoute reports whether r is the list or a known product.
func (c *Products) CanHandleRoute(r *route.Route) bool {
	return c.Guard("can_handle_route") == nil && c.canHandle(r)
}

func (c *Products) canHandle(r *route.Route) bool {
	if r.Kind() == route.KindProductList {
		return !r.HasChild()
	}
	return canShowProduct(c.deps.Catalog, r)
}

// HandleRoute shows the list or hands a product route to the detail flow.
func (c *Products) HandleRoute(r *route.Route) (bool, error) {
	if err := c.Guard("handle_route"); err != nil {
		return false, err
	}
	if !c.canHandle(r) {
		return false, nil
	}

	if r.Kind() == route.KindProductList {
		if c.detail != nil {
			if err := c.detail.Finish(); err != nil {
				return false, err
			}
		}
		c.deps.Navigator.PopToDepth(c.base + 1)
		return true, nil
	}
	return c.showProduct(r)
}

// showProduct reuses the active detail flow after resetting it, or starts a
// new one and hands it the rest of the chain.
func (c *Products) showProduct(r *route.Route) (bool, error) {
	if c.detail != nil {
		coordinator.Reset(c.detail)
		return c.detail.HandleRoute(r)
	}

	p, _ := c.deps.Catalog.Product(r.ProductID())
	d := NewProductDetail(c.deps, p)
	if err := c.AddChild(d); err != nil {
		return false, err
	}
	if err := d.Start(); err != nil {
		c.RemoveChild(d)
		return false, err
	}
	c.detail = d

	if r.HasChild() {
		return d.HandleRoute(r.Child())
	}
	return true, nil
}

// DidSelectProduct opens the detail flow for p.
func (c *Products) DidSelectProduct(_ *viewmodel.ProductList, p catalog.Product) {
	handled, err := c.showProduct(route.ProductDetail(p.ID))
	if err != nil || !handled {
		logger().Error("product selection not shown", "product", p.ID, "handled", handled, "error", err)
	}
}

// DidRefreshProducts logs the reloaded product count.
func (c *Products) DidRefreshProducts(vm *viewmodel.ProductList) {
	logger().Debug("product list refreshed", "count", vm.Count())
}

// Teardown pops the list and everything above it.
func (c *Products) Teardown() {
	c.deps.Navigator.PopToDepth(c.base)
}

// ChildDidFinish releases the detail flow.
func (c *Products) ChildDidFinish(child coordinator.Coordinator) {
	if c.detail != nil && child == coordinator.Coordinator(c.detail) {
		c.detail = nil
	}
	c.Node.ChildDidFinish(child)
}

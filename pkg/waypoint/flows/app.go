package flows

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/viewmodel"
)

// App is the root coordinator. It shows the home screen, presents the
// profile, cart and settings screens modally and owns at most one Products flow.
type App struct {
	*coordinator.Node

	deps     Deps
	products *Products
	modal    bool
	base     int
}

// NewApp creates the root flow. It shows the home screen once started.
func NewApp(deps Deps) *App {
	c := &App{deps: deps}
	c.Node = coordinator.NewNode(c, "app", deps.Navigator)
	return c
}

// Begin pushes the home screen.
func (c *App) Begin() error {
	c.base = c.deps.Navigator.Len()
	c.deps.Navigator.Push(nav.ScreenHome, viewmodel.NewPage(c.deps.Texts.Title(viewmodel.MsgHomeTitle), ""))
	return nil
}

// Products returns the active product flow, if any.
func (c *App) Products() (*Products, bool) {
	return c.products, c.products != nil
}

// CanHandleRoute reports whether some flow under the root can show r.
func (c *App) CanHandleRoute(r *route.Route) bool {
	return c.Guard("can_handle_route") == nil && c.canHandle(r)
}

func (c *App) canHandle(r *route.Route) bool {
	switch r.Kind() {
	case route.KindHome, route.KindSettings, route.KindCart, route.KindProductList:
		return !r.HasChild()
	case route.KindUserProfile:
		return !r.HasChild() && r.UserID() != ""
	case route.KindProductDetail:
		return canShowProduct(c.deps.Catalog, r)
	default:
		return false
	}
}

// HandleRoute shows r, starting or finishing child flows as needed.
func (c *App) HandleRoute(r *route.Route) (bool, error) {
	if err := c.Guard("handle_route"); err != nil {
		return false, err
	}
	if !c.canHandle(r) {
		return false, nil
	}

	coordinator.Reset(c)

	texts := c.deps.Texts
	switch r.Kind() {
	case route.KindHome:
		if c.products != nil {
			if err := c.products.Finish(); err != nil {
				return false, err
			}
		}
		c.deps.Navigator.PopToDepth(c.base + 1)
	case route.KindSettings:
		c.present(nav.ScreenSettings, viewmodel.NewPage(texts.Title(viewmodel.MsgSettingsTitle), ""))
	case route.KindCart:
		c.present(nav.ScreenCart, viewmodel.NewPage(texts.Title(viewmodel.MsgCartTitle), ""))
	case route.KindUserProfile:
		c.present(nav.ScreenUserProfile, viewmodel.NewPage(texts.Title(viewmodel.MsgProfileTitle), r.UserID()))
	case route.KindProductList, route.KindProductDetail:
		p, err := c.productsFlow()
		if err != nil {
			return false, err
		}
		return p.HandleRoute(r)
	}
	return true, nil
}

// ResetForDeepLink dismisses a modal screen left by a previous route.
func (c *App) ResetForDeepLink() {
	if c.modal {
		c.deps.Navigator.Dismiss()
		c.modal = false
	}
}

// Teardown removes every screen the root pushed.
func (c *App) Teardown() {
	c.deps.Navigator.PopToDepth(c.base)
}

// ChildDidFinish detaches a finished child flow.
func (c *App) ChildDidFinish(child coordinator.Coordinator) {
	if c.products != nil && child == coordinator.Coordinator(c.products) {
		c.products = nil
	}
	c.Node.ChildDidFinish(child)
}

func (c *App) present(screen nav.Screen, page *viewmodel.Page) {
	c.deps.Navigator.Present(screen, page)
	c.modal = true
}

// productsFlow returns the Products child, creating and starting it first if needed.
func (c *App) productsFlow() (*Products, error) {
	if c.products != nil {
		return c.products, nil
	}

	p := NewProducts(c.deps)
	if err := c.AddChild(p); err != nil {
		return nil, err
	}
	if err := p.Start(); err != nil {
		c.RemoveChild(p)
		return nil, err
	}
	c.products = p
	return p, nil
}

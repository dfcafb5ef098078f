package waypoint

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/flows"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/viewmodel"
)

// App owns the router, the root coordinator and the navigation context.
// Dispatch is serialised: one URL is fully resolved before the next is parsed.
type App struct {
	mu sync.Mutex

	cfg     Config
	catalog *catalog.Catalog
	texts   *viewmodel.Texts
	nav     *nav.Controller
	root    *flows.App
	router  *router.Router

	started bool
	closed  bool

	logger *slog.Logger
}

// New builds an App from cfg. Nothing is shown until Start.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewInfrastructureError("config", err)
	}

	cat := catalog.Sample()
	if cfg.Catalog.Path != "" {
		var err error
		if cat, err = catalog.Load(cfg.Catalog.Path); err != nil {
			return nil, NewInfrastructureError("load_catalog", err)
		}
	}

	texts, err := viewmodel.NewTexts(cfg.Locale.Language)
	if err != nil {
		return nil, NewInfrastructureError("load_locale", err)
	}

	ctrl := nav.NewController()
	root := flows.NewApp(flows.Deps{Navigator: ctrl, Catalog: cat, Texts: texts})

	r := router.New().
		RegisterURLSchemes(cfg.Router.Schemes...).
		RegisterUniversalLinkDomains(cfg.Router.UniversalLinkDomains...)
	r.SetRoot(root)

	return &App{
		cfg:     cfg,
		catalog: cat,
		texts:   texts,
		nav:     ctrl,
		root:    root,
		router:  r,
		logger:  internal.GetLogger().With("component", "app"),
	}, nil
}

// Start shows the home screen. Deep links dispatched before Start fail with ErrNotStarted.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if err := a.root.Start(); err != nil {
		return err
	}
	a.started = true
	a.logger.Info("app started", "schemes", a.router.Schemes(), "domains", a.router.Domains(), "products", a.catalog.Len())
	return nil
}

func (a *App) ready() error {
	switch {
	case a.closed:
		return ErrClosed
	case !a.started:
		return ErrNotStarted
	}
	return nil
}

// HandleURL dispatches a custom-scheme URL or universal link.
func (a *App) HandleURL(raw string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ready(); err != nil {
		return false, err
	}
	handled, err := a.router.HandleURL(raw)
	if err != nil {
		a.logger.Error("deep link dispatch failed", "url", raw, "error", err)
	}
	return handled, err
}

// HandleActivity dispatches the universal link carried by a browsing-web activity.
func (a *App) HandleActivity(act router.Activity) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ready(); err != nil {
		return false, err
	}
	return a.router.HandleActivity(act)
}

// CanHandleURL reports whether raw uses a registered scheme or domain.
func (a *App) CanHandleURL(raw string) bool {
	return a.router.CanHandleURL(raw)
}

// Parse resolves raw without dispatching it.
func (a *App) Parse(raw string) (*route.Route, error) {
	return a.router.Parse(raw)
}

// BuildURL returns the primary-scheme URL for rt.
func (a *App) BuildURL(rt *route.Route) (string, error) {
	return a.router.BuildURL(rt)
}

// Screens returns the navigation stack, bottom first.
func (a *App) Screens() []nav.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav.Screens()
}

// Tree renders the coordinator tree, one coordinator per line.
func (a *App) Tree() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return coordinator.Dump(a.root)
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.cfg }

// Router returns the deep-link router.
func (a *App) Router() *router.Router { return a.router }

// Navigator returns the navigation stack shared by every flow.
func (a *App) Navigator() *nav.Controller { return a.nav }

// Root returns the root coordinator.
func (a *App) Root() *flows.App { return a.root }

// Catalog returns the loaded product catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Close finishes the coordinator tree and detaches it from the router.
// Closing twice is a no-op.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.router.ClearRoot()

	if a.started {
		if err := a.root.Finish(); err != nil {
			return err
		}
	}
	a.logger.Info("app closed", "stats", a.router.Stats())
	return nil
}

package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/coordinator"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

var (
	// ErrCannotHandle is returned by Parse when the URL's scheme is not
	// registered and it is not a universal link for a registered domain.
	ErrCannotHandle = errors.New("url cannot be handled")

	// ErrUnbuildable is returned by BuildURL for routes with no URL form.
	ErrUnbuildable = errors.New("route has no url form")
)

// Activity is a platform event carrying a universal link.
type Activity struct {
	Type       string
	WebpageURL string
}

// Stats counts dispatch outcomes since the router was created.
type Stats struct {
	Handled    int64 // dispatched and resolved by the tree
	Unhandled  int64 // accepted but unroutable, or not resolved by the tree
	Rejected   int64 // scheme or domain not registered
	Misuse     int64 // dispatch surfaced a coordinator lifecycle error
	Dispatched int64
}

// Router turns incoming URLs into routes and hands them to the root coordinator.
// Create one at bootstrap and pass it to whatever receives URL events.
type Router struct {
	schemes []string
	domains []string

	// non-owning; set at bootstrap, cleared at teardown
	root   coordinator.Coordinator
	linker coordinator.DeepLinker

	handled   *atomic.Int64
	unhandled *atomic.Int64
	rejected  *atomic.Int64
	misuse    *atomic.Int64

	logger *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger replaces the internal logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New creates a Router with nothing registered.
func New(opts ...Option) *Router {
	r := &Router{
		handled:   atomic.NewInt64(0),
		unhandled: atomic.NewInt64(0),
		rejected:  atomic.NewInt64(0),
		misuse:    atomic.NewInt64(0),
		logger:    internal.GetInternalLogger().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterURLSchemes adds custom URL schemes. The first scheme ever
// registered is the primary one used by BuildURL.
func (r *Router) RegisterURLSchemes(schemes ...string) *Router {
	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "://"))
		if s != "" && !slices.Contains(r.schemes, s) {
			r.schemes = append(r.schemes, s)
		}
	}
	return r
}

// RegisterUniversalLinkDomains adds hosts whose http(s) URLs are handled in-app.
func (r *Router) RegisterUniversalLinkDomains(domains ...string) *Router {
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && !slices.Contains(r.domains, d) {
			r.domains = append(r.domains, d)
		}
	}
	return r
}

// Scheme returns the primary scheme, or "" when none is registered.
func (r *Router) Scheme() string {
	if len(r.schemes) == 0 {
		return ""
	}
	return r.schemes[0]
}

// Schemes returns the registered URL schemes.
func (r *Router) Schemes() []string { return slices.Clone(r.schemes) }

// Domains returns the registered universal-link domains.
func (r *Router) Domains() []string { return slices.Clone(r.domains) }

// SetRoot sets the coordinator routes are forwarded to. The router does not
// own it; its deep-link capability is looked up once here.
func (r *Router) SetRoot(c coordinator.Coordinator) {
	if c == nil {
		r.ClearRoot()
		return
	}
	r.root = c
	r.linker, _ = coordinator.DeepLinkerOf(c)
	if r.linker == nil {
		r.logger.Warn("root coordinator cannot handle routes", "root", c.String())
	}
}

// ClearRoot drops the root reference at teardown.
func (r *Router) ClearRoot() {
	r.root = nil
	r.linker = nil
}

// Root returns the coordinator routes are dispatched to, if one is set.
func (r *Router) Root() (coordinator.Coordinator, bool) {
	return r.root, r.root != nil
}

// CanHandleURL reports whether raw uses a registered scheme or is a universal
// link for a registered domain. The path is not inspected.
func (r *Router) CanHandleURL(raw string) bool {
	_, err := r.split(raw)
	return err == nil
}

// ParseURL is Parse for an already parsed URL.
func (r *Router) ParseURL(u *url.URL) (*route.Route, error) {
	return r.Parse(u.String())
}

// HandleURL parses raw and forwards it to the root coordinator. It reports
// whether the URL was handled; unregistered and unroutable URLs are simply not
// handled. The error is non-nil only when the tree reports lifecycle misuse.
func (r *Router) HandleURL(raw string) (bool, error) {
	rt, err := r.Parse(raw)
	if err != nil {
		r.rejected.Inc()
		r.logger.Debug("deep link rejected", "url", raw, "error", err)
		return false, nil
	}

	if rt.Kind() == route.KindNone {
		r.unhandled.Inc()
		if s, ok := r.Suggest(raw); ok {
			r.logger.Info("unroutable deep link", "url", raw, "suggestion", s)
		} else {
			r.logger.Info("unroutable deep link", "url", raw)
		}
		return false, nil
	}

	if r.linker == nil {
		r.unhandled.Inc()
		r.logger.Warn("no root coordinator to handle deep link", "url", raw)
		return false, nil
	}

	handled, err := r.linker.HandleRoute(rt)
	if err != nil {
		r.misuse.Inc()
		return false, fmt.Errorf("router: handle %s: %w", rt, err)
	}

	if handled {
		r.handled.Inc()
	} else {
		r.unhandled.Inc()
	}
	r.logger.Debug("deep link dispatched", "url", raw, "route", rt.String(), "handled", handled)
	return handled, nil
}

// HandleActivity forwards the URL of a browsing-web activity through HandleURL.
// Other activity types are not handled.
func (r *Router) HandleActivity(a Activity) (bool, error) {
	if a.Type != constants.ActivityTypeBrowsingWeb || a.WebpageURL == "" {
		r.logger.Debug("activity ignored", "type", a.Type)
		return false, nil
	}
	return r.HandleURL(a.WebpageURL)
}

// Stats returns a snapshot of the dispatch counters.
func (r *Router) Stats() Stats {
	s := Stats{
		Handled:   r.handled.Load(),
		Unhandled: r.unhandled.Load(),
		Rejected:  r.rejected.Load(),
		Misuse:    r.misuse.Load(),
	}
	s.Dispatched = s.Handled + s.Unhandled + s.Rejected + s.Misuse
	return s
}

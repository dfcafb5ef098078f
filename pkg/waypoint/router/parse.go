package router

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// grammar maps the first path segment to a parser for the remaining segments.
// A nil result means the path is not recognised.
var grammar = map[string]func(args []string) *route.Route{
	"home": func(args []string) *route.Route {
		if len(args) != 0 {
			return nil
		}
		return route.New(route.KindHome)
	},
	"products": func(args []string) *route.Route {
		switch {
		case len(args) == 0:
			return route.New(route.KindProductList)
		case len(args) == 1:
			return route.ProductDetail(args[0])
		case len(args) == 2 && strings.EqualFold(args[1], "reviews"):
			return route.ProductDetail(args[0], route.WithChild(route.New(route.KindProductReviews)))
		}
		return nil
	},
	"profile": func(args []string) *route.Route {
		if len(args) != 1 {
			return nil
		}
		return route.New(route.KindUserProfile, route.WithUserID(args[0]))
	},
	"cart": func(args []string) *route.Route {
		if len(args) != 0 {
			return nil
		}
		return route.New(route.KindCart)
	},
	"settings": func(args []string) *route.Route {
		if len(args) != 0 {
			return nil
		}
		return route.New(route.KindSettings)
	},
}

// keywords is the sorted key set of grammar.
var keywords = func() []string {
	out := make([]string, 0, len(grammar))
	for k := range grammar {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}()

// splitURL is a URL accepted by the router, before percent-decoding.
type splitURL struct {
	scheme    string
	segments  []string
	query     string
	universal bool
}

// split checks raw against the registered schemes and domains and cuts it
// into raw path segments and a raw query.
func (r *Router) split(raw string) (splitURL, error) {
	i := strings.Index(raw, "://")
	if i <= 0 {
		return splitURL{}, fmt.Errorf("router: %q: %w", raw, ErrCannotHandle)
	}

	u := splitURL{scheme: strings.ToLower(raw[:i])}
	rest := raw[i+3:]
	if j := strings.IndexByte(rest, '#'); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.IndexByte(rest, '?'); j >= 0 {
		u.query = rest[j+1:]
		rest = rest[:j]
	}

	switch {
	case slices.Contains(r.schemes, u.scheme):
		// myapp://products/42: the authority is the first segment
		u.segments = splitPath(rest)
	case u.scheme == "https" || u.scheme == "http":
		authority, path, _ := strings.Cut(rest, "/")
		if !slices.Contains(r.domains, hostOf(authority)) {
			return splitURL{}, fmt.Errorf("router: %q: %w", raw, ErrCannotHandle)
		}
		u.segments = splitPath(path)
		u.universal = true
	default:
		return splitURL{}, fmt.Errorf("router: %q: %w", raw, ErrCannotHandle)
	}
	return u, nil
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func hostOf(authority string) string {
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}
	if h, _, err := net.SplitHostPort(authority); err == nil {
		authority = h
	}
	return strings.ToLower(authority)
}

// Parse turns raw into a Route. Unregistered schemes and domains return
// ErrCannotHandle; accepted URLs whose path matches no pattern return a
// KindNone route and a nil error. Parse has no side effects.
//
// Segments and query values are percent-decoded best-effort: a value that
// fails to decode is kept raw. When a query key repeats, the last value wins.
func (r *Router) Parse(raw string) (*route.Route, error) {
	u, err := r.split(raw)
	if err != nil {
		return nil, err
	}

	segs := make([]string, len(u.segments))
	for i, s := range u.segments {
		segs[i] = unescapePath(s)
	}

	rt := resolve(segs)
	if rt.Kind() == route.KindNone {
		return rt, nil
	}
	if q := parseQuery(u.query); len(q) > 0 {
		rt = withQuery(rt, q)
	}
	return rt, nil
}

func resolve(segs []string) *route.Route {
	if len(segs) == 0 {
		return route.New(route.KindHome)
	}
	parse, ok := grammar[strings.ToLower(segs[0])]
	if !ok {
		return route.None()
	}
	if rt := parse(segs[1:]); rt != nil {
		return rt
	}
	return route.None()
}

// withQuery rebuilds the head of the chain with query parameters attached.
func withQuery(rt *route.Route, q map[string]string) *route.Route {
	return route.New(rt.Kind(),
		route.WithProductID(rt.ProductID()),
		route.WithUserID(rt.UserID()),
		route.WithChild(rt.Child()),
		route.WithQuery(q),
	)
}

func parseQuery(q string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(q, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		k = unescapeQuery(k)
		if k == "" {
			continue
		}
		out[k] = unescapeQuery(v)
	}
	return out
}

func unescapePath(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}

func unescapeQuery(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}

// Suggest returns the closest known first segment for an accepted URL whose
// first segment is unknown, within an edit distance of two.
func (r *Router) Suggest(raw string) (string, bool) {
	u, err := r.split(raw)
	if err != nil || len(u.segments) == 0 {
		return "", false
	}

	head := strings.ToLower(unescapePath(u.segments[0]))
	if _, known := grammar[head]; known {
		return "", false
	}

	best, bestDist := "", 3
	for _, kw := range keywords {
		if d := levenshtein.ComputeDistance(head, kw); d < bestDist {
			best, bestDist = kw, d
		}
	}
	return best, best != ""
}

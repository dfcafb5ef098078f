package router

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// BuildURL renders rt with the primary scheme. It is the inverse of Parse:
// r.Parse(url) is Equal to rt for every route BuildURL accepts.
func (r *Router) BuildURL(rt *route.Route) (string, error) {
	return Build(r.Scheme(), rt)
}

// Build renders rt as a scheme://path?query URL.
func Build(scheme string, rt *route.Route) (string, error) {
	if scheme == "" {
		return "", fmt.Errorf("router: no scheme registered: %w", ErrUnbuildable)
	}

	segs, err := segmentsFor(rt)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(strings.Join(segs, "/"))

	if q := rt.QueryParams(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteByte('?')
			} else {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(q[k]))
		}
	}
	return b.String(), nil
}

func segmentsFor(rt *route.Route) ([]string, error) {
	unbuildable := func(why string) error {
		return fmt.Errorf("router: %s: %s: %w", rt, why, ErrUnbuildable)
	}

	child := rt.Child()
	if child != nil && rt.Kind() != route.KindProductDetail {
		return nil, unbuildable("only product detail routes may have a child")
	}
	if rt.ProductID() != "" && rt.Kind() != route.KindProductDetail {
		return nil, unbuildable("product id has no url slot")
	}
	if rt.UserID() != "" && rt.Kind() != route.KindUserProfile {
		return nil, unbuildable("user id has no url slot")
	}

	switch rt.Kind() {
	case route.KindHome:
		return nil, nil
	case route.KindProductList:
		return []string{"products"}, nil
	case route.KindProductDetail:
		if rt.ProductID() == "" {
			return nil, unbuildable("missing product id")
		}
		segs := []string{"products", url.PathEscape(rt.ProductID())}
		if child == nil {
			return segs, nil
		}
		if child.Kind() != route.KindProductReviews || child.HasChild() || len(child.QueryParams()) > 0 ||
			child.ProductID() != "" || child.UserID() != "" {
			return nil, unbuildable("unsupported child " + child.String())
		}
		return append(segs, "reviews"), nil
	case route.KindUserProfile:
		if rt.UserID() == "" {
			return nil, unbuildable("missing user id")
		}
		return []string{"profile", url.PathEscape(rt.UserID())}, nil
	case route.KindCart:
		return []string{"cart"}, nil
	case route.KindSettings:
		return []string{"settings"}, nil
	default:
		return nil, unbuildable("no url pattern")
	}
}

// Package route defines the parsed, structured form of a deep-link destination.
//
// A Route is built once (by the router's parser or by the constructors in this
// package) and never changes afterwards. Nested destinations such as
// "product 42, then its reviews" are expressed as a singly-linked chain through
// Child.
package route

import (
	"maps"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Kind identifies the destination a Route points to.
type Kind int

const (
	KindNone Kind = iota
	KindHome
	KindProductList
	KindProductDetail
	KindProductReviews
	KindUserProfile
	KindSettings
	KindCart
)

var kindNames = map[Kind]string{
	KindNone:           "none",
	KindHome:           "home",
	KindProductList:    "productList",
	KindProductDetail:  "productDetail",
	KindProductReviews: "productReviews",
	KindUserProfile:    "userProfile",
	KindSettings:       "settings",
	KindCart:           "cart",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the Kind whose String form is name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindNone, false
}

// Route is an immutable deep-link destination.
// The zero value and a nil *Route both behave as a KindNone route.
type Route struct {
	kind      Kind
	productID string
	userID    string
	child     *Route
	query     map[string]string
}

// Option configures a Route under construction.
type Option func(*Route)

// WithProductID sets the product identifier.
func WithProductID(id string) Option {
	return func(r *Route) { r.productID = id }
}

// WithUserID sets the user identifier.
func WithUserID(id string) Option {
	return func(r *Route) { r.userID = id }
}

// WithChild links an already constructed route as the next step of the chain.
func WithChild(child *Route) Option {
	return func(r *Route) { r.child = child }
}

// WithQuery copies params into the route's query parameters.
func WithQuery(params map[string]string) Option {
	return func(r *Route) {
		if len(params) == 0 {
			return
		}
		if r.query == nil {
			r.query = make(map[string]string, len(params))
		}
		maps.Copy(r.query, params)
	}
}

// WithQueryParam sets a single query parameter. Later calls for the same key win.
func WithQueryParam(key, value string) Option {
	return func(r *Route) {
		if r.query == nil {
			r.query = make(map[string]string)
		}
		r.query[key] = value
	}
}

// New builds a route of the given kind.
func New(kind Kind, opts ...Option) *Route {
	r := &Route{kind: kind}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// None returns the route used for unrecognised destinations.
func None() *Route {
	return &Route{kind: KindNone}
}

// ProductDetail returns a product detail route for id.
func ProductDetail(id string, opts ...Option) *Route {
	return New(KindProductDetail, append([]Option{WithProductID(id)}, opts...)...)
}

// Kind returns the destination kind; KindNone for a nil route.
func (r *Route) Kind() Kind {
	if r == nil {
		return KindNone
	}
	return r.kind
}

// ProductID returns the product identifier, if any.
func (r *Route) ProductID() string {
	if r == nil {
		return ""
	}
	return r.productID
}

// UserID returns the user identifier, if any.
func (r *Route) UserID() string {
	if r == nil {
		return ""
	}
	return r.userID
}

// Child returns the next route in the chain, or nil.
func (r *Route) Child() *Route {
	if r == nil {
		return nil
	}
	return r.child
}

// HasChild reports whether the chain continues past r.
func (r *Route) HasChild() bool {
	return r.Child() != nil
}

// Deepest returns the last route of the chain; r itself when it has no child.
func (r *Route) Deepest() *Route {
	cur := r
	for cur.HasChild() {
		cur = cur.child
	}
	return cur
}

// Depth returns the number of routes in the chain starting at r.
func (r *Route) Depth() int {
	n := 0
	for cur := r; cur != nil; cur = cur.child {
		n++
	}
	return n
}

// Query returns the value of a query parameter.
func (r *Route) Query(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.query[key]
	return v, ok
}

// QueryParams returns a copy of the query parameters.
func (r *Route) QueryParams() map[string]string {
	out := make(map[string]string)
	if r != nil {
		maps.Copy(out, r.query)
	}
	return out
}

// Equal reports whether both chains describe the same destinations.
func (r *Route) Equal(o *Route) bool {
	for a, b := r, o; ; a, b = a.Child(), b.Child() {
		if a == nil && b == nil {
			return true
		}
		if a.Kind() != b.Kind() || a.ProductID() != b.ProductID() || a.UserID() != b.UserID() {
			return false
		}
		if !maps.Equal(a.QueryParams(), b.QueryParams()) {
			return false
		}
		if a.HasChild() != b.HasChild() {
			return false
		}
		if !a.HasChild() {
			return true
		}
	}
}

// String renders the chain as "productDetail(42) > productReviews".
func (r *Route) String() string {
	var parts []string
	for cur := r; ; cur = cur.child {
		part := cur.Kind().String()
		if id := cur.labelID(); id != "" {
			part += "(" + id + ")"
		}
		if q := cur.QueryParams(); len(q) > 0 {
			keys := make([]string, 0, len(q))
			for k := range q {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, len(keys))
			for i, k := range keys {
				pairs[i] = k + "=" + q[k]
			}
			part += "{" + strings.Join(pairs, ",") + "}"
		}
		parts = append(parts, part)
		if !cur.HasChild() {
			break
		}
	}
	return strings.Join(parts, " > ")
}

// labelID is the identifier the route's kind is addressed by.
func (r *Route) labelID() string {
	switch r.Kind() {
	case KindProductDetail:
		return r.ProductID()
	case KindUserProfile:
		return r.UserID()
	default:
		return ""
	}
}

type jsonRoute struct {
	Kind      string            `json:"kind"`
	ProductID string            `json:"productId,omitempty"`
	UserID    string            `json:"userId,omitempty"`
	Query     map[string]string `json:"query,omitempty"`
	Child     *Route            `json:"child,omitempty"`
}

// MarshalJSON encodes the chain with each child nested under its parent.
func (r *Route) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRoute{
		Kind:      r.Kind().String(),
		ProductID: r.ProductID(),
		UserID:    r.UserID(),
		Query:     r.QueryParams(),
		Child:     r.Child(),
	})
}

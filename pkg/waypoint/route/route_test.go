package route_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "productDetail", route.KindProductDetail.String())
	require.Equal(t, "none", route.KindNone.String())
	require.Equal(t, "unknown", route.Kind(99).String())

	k, ok := route.ParseKind("cart")
	require.True(t, ok)
	require.Equal(t, route.KindCart, k)

	_, ok = route.ParseKind("checkout")
	require.False(t, ok)
}

func TestChain(t *testing.T) {
	reviews := route.New(route.KindProductReviews)
	r := route.ProductDetail("42", route.WithChild(reviews))

	require.Equal(t, route.KindProductDetail, r.Kind())
	require.Equal(t, "42", r.ProductID())
	require.True(t, r.HasChild())
	require.Same(t, reviews, r.Child())
	require.Same(t, reviews, r.Deepest())
	require.Equal(t, 2, r.Depth())
	require.Equal(t, "productDetail(42) > productReviews", r.String())
}

func TestStringLabelsByKind(t *testing.T) {
	require.Equal(t, "userProfile(u)",
		route.New(route.KindUserProfile, route.WithUserID("u"), route.WithProductID("42")).String())
	require.Equal(t, "productDetail(42)", route.ProductDetail("42", route.WithUserID("u")).String())
	require.Equal(t, "cart{promo=x}",
		route.New(route.KindCart, route.WithProductID("42"), route.WithQueryParam("promo", "x")).String())
}

func TestNilRouteBehavesAsNone(t *testing.T) {
	var r *route.Route
	require.Equal(t, route.KindNone, r.Kind())
	require.False(t, r.HasChild())
	require.Empty(t, r.QueryParams())
	require.True(t, r.Equal(route.None()))
	require.Equal(t, 0, r.Depth())
}

func TestQueryIsCopied(t *testing.T) {
	params := map[string]string{"ref": "mail"}
	r := route.New(route.KindCart, route.WithQuery(params))
	params["ref"] = "changed"

	v, ok := r.Query("ref")
	require.True(t, ok)
	require.Equal(t, "mail", v)

	out := r.QueryParams()
	out["ref"] = "mutated"
	v, _ = r.Query("ref")
	require.Equal(t, "mail", v)
}

func TestEqual(t *testing.T) {
	a := route.ProductDetail("42", route.WithQueryParam("ref", "x"), route.WithChild(route.New(route.KindProductReviews)))
	b := route.ProductDetail("42", route.WithQueryParam("ref", "x"), route.WithChild(route.New(route.KindProductReviews)))
	require.True(t, a.Equal(b))

	require.False(t, a.Equal(route.ProductDetail("42", route.WithQueryParam("ref", "x"))))
	require.False(t, a.Equal(route.ProductDetail("43")))
	require.False(t, route.New(route.KindUserProfile, route.WithUserID("a")).Equal(route.New(route.KindUserProfile, route.WithUserID("b"))))
}

func TestMarshalJSON(t *testing.T) {
	r := route.ProductDetail("42", route.WithChild(route.New(route.KindProductReviews)))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"productDetail","productId":"42","child":{"kind":"productReviews"}}`, string(data))
}

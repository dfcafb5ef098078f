package nav_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
)

func TestStack(t *testing.T) {
	s := nav.NewStack()
	require.True(t, s.IsEmpty())
	require.Nil(t, s.Pop())
	require.Nil(t, s.Peek())

	s.Push(nav.Entry{Screen: nav.ScreenHome})
	s.Push(nav.Entry{Screen: nav.ScreenProductList})
	s.Push(nav.Entry{Screen: nav.ScreenProductDetail})
	require.Equal(t, 3, s.Len())
	require.Equal(t, nav.ScreenProductDetail, s.Peek().Screen)

	s.Truncate(5)
	require.Equal(t, 3, s.Len())

	s.Truncate(1)
	require.Equal(t, 1, s.Len())
	require.Equal(t, nav.ScreenHome, s.Pop().Screen)

	s.Push(nav.Entry{Screen: nav.ScreenCart})
	s.Clear()
	require.True(t, s.IsEmpty())
}

func TestControllerRendersRegisteredScreens(t *testing.T) {
	var rendered []any
	changes := 0

	c := nav.NewController().
		Register(nav.ScreenProductDetail, func(input any) error {
			rendered = append(rendered, input)
			return nil
		}).
		Register(nav.ScreenCart, func(input any) error {
			return errors.New("boom")
		}).
		OnChange(func(entries []nav.Entry) { changes++ })

	c.Push(nav.ScreenHome, nil)
	c.Push(nav.ScreenProductDetail, "42")
	c.Present(nav.ScreenCart, nil)

	require.Equal(t, []any{"42"}, rendered)
	require.Equal(t, 3, changes)
	require.Equal(t, []nav.Screen{nav.ScreenHome, nav.ScreenProductDetail, nav.ScreenCart}, c.Screens())

	top, ok := c.Top()
	require.True(t, ok)
	require.True(t, top.Modal)
}

func TestControllerDismissOnlyRemovesModal(t *testing.T) {
	c := nav.NewController()
	c.Push(nav.ScreenHome, nil)
	require.False(t, c.Dismiss())
	require.Equal(t, 1, c.Len())

	c.Present(nav.ScreenSettings, nil)
	require.True(t, c.Dismiss())
	require.Equal(t, 1, c.Len())
}

func TestControllerPop(t *testing.T) {
	c := nav.NewController()
	_, ok := c.Pop()
	require.False(t, ok)

	c.Push(nav.ScreenHome, nil)
	c.Push(nav.ScreenProductList, nil)
	c.Push(nav.ScreenProductDetail, nil)

	e, ok := c.Pop()
	require.True(t, ok)
	require.Equal(t, nav.ScreenProductDetail, e.Screen)

	c.PopToDepth(1)
	require.Equal(t, []nav.Screen{nav.ScreenHome}, c.Screens())
}

func TestScreenString(t *testing.T) {
	require.Equal(t, "product-reviews", nav.ScreenProductReviews.String())
	require.Equal(t, "screen(42)", nav.Screen(42).String())
}

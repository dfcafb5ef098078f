package nav

import (
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Screen is a type-safe identifier for screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenProductList
	ScreenProductDetail
	ScreenProductReviews
	ScreenUserProfile
	ScreenSettings
	ScreenCart
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenProductList:
		return "product-list"
	case ScreenProductDetail:
		return "product-detail"
	case ScreenProductReviews:
		return "product-reviews"
	case ScreenUserProfile:
		return "user-profile"
	case ScreenSettings:
		return "settings"
	case ScreenCart:
		return "cart"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// Navigator is the screen-stack capability coordinators present through.
// Coordinators share a Navigator with the host UI layer and never own it.
type Navigator interface {
	Push(screen Screen, input any)
	Present(screen Screen, input any)
	// Dismiss pops the top entry if it was presented modally.
	Dismiss() bool
	Pop() (Entry, bool)
	// PopToDepth removes entries until at most n remain.
	PopToDepth(n int)
	Top() (Entry, bool)
	Len() int
	Entries() []Entry
}

// ScreenFunc renders a screen when it becomes visible.
type ScreenFunc func(input any) error

// ChangeFunc is called after every change to the stack.
type ChangeFunc func(entries []Entry)

// Controller is the default Navigator. It keeps the stack and calls the
// registered ScreenFunc for a screen each time it is shown.
type Controller struct {
	screens  map[Screen]ScreenFunc
	onChange ChangeFunc
	stack    *Stack
}

// NewController creates a Controller with an empty stack.
func NewController() *Controller {
	return &Controller{
		screens: make(map[Screen]ScreenFunc),
		stack:   NewStack(),
	}
}

// Register sets the render function for a screen.
func (c *Controller) Register(screen Screen, fn ScreenFunc) *Controller {
	c.screens[screen] = fn
	return c
}

// OnChange sets the function notified after the stack changes.
func (c *Controller) OnChange(fn ChangeFunc) *Controller {
	c.onChange = fn
	return c
}

// Push adds a screen on top of the stack.
func (c *Controller) Push(screen Screen, input any) {
	c.show(Entry{Screen: screen, Input: input})
}

// Present pushes a screen marked as modal.
func (c *Controller) Present(screen Screen, input any) {
	c.show(Entry{Screen: screen, Input: input, Modal: true})
}

func (c *Controller) show(e Entry) {
	c.stack.Push(e)

	if fn, ok := c.screens[e.Screen]; ok {
		if err := fn(e.Input); err != nil {
			internal.GetInternalLogger().Error("screen render failed", "screen", e.Screen.String(), "error", err)
		}
	}

	c.changed()
}

// Dismiss removes the top modal. It reports whether one was shown.
func (c *Controller) Dismiss() bool {
	top := c.stack.Peek()
	if top == nil || !top.Modal {
		return false
	}
	c.stack.Pop()
	c.changed()
	return true
}

// Pop removes and returns the top entry.
func (c *Controller) Pop() (Entry, bool) {
	e := c.stack.Pop()
	if e == nil {
		return Entry{}, false
	}
	c.changed()
	return *e, true
}

// PopToDepth removes entries until at most n remain.
func (c *Controller) PopToDepth(n int) {
	if c.stack.Len() <= n {
		return
	}
	c.stack.Truncate(n)
	c.changed()
}

// Top returns the top entry without removing it.
func (c *Controller) Top() (Entry, bool) {
	e := c.stack.Peek()
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the stack depth.
func (c *Controller) Len() int {
	return c.stack.Len()
}

// Entries returns a copy of the stack, bottom first.
func (c *Controller) Entries() []Entry {
	return c.stack.Entries()
}

// Screens returns the screen identifiers on the stack, bottom first.
func (c *Controller) Screens() []Screen {
	entries := c.stack.Entries()
	out := make([]Screen, len(entries))
	for i, e := range entries {
		out[i] = e.Screen
	}
	return out
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.stack.Entries())
	}
}

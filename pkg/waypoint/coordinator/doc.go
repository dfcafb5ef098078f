// Package coordinator provides the navigation tree that owns app flows.
//
// Every flow (list, detail, the app root) is a Coordinator. A coordinator owns
// its children exclusively and holds a non-owning reference to its parent that
// exists only so it can report completion upward.
//
// # Defining a Flow
//
// Flows embed *Node and implement Begin:
//
//	type Settings struct {
//	    *coordinator.Node
//	}
//
//	func NewSettings(navigator nav.Navigator) *Settings {
//	    c := &Settings{}
//	    c.Node = coordinator.NewNode(c, "settings", navigator)
//	    return c
//	}
//
//	func (c *Settings) Begin() error {
//	    c.Navigator().Push(nav.ScreenSettings, nil)
//	    return nil
//	}
//
// # Lifecycle
//
// A coordinator moves created → started → finished. Start twice, Finish twice,
// or use after Finish returns a *LifecycleError; these are programmer errors.
//
//	child := NewSettings(navigator)
//	if err := parent.AddChild(child); err != nil { ... }
//	if err := child.Start(); err != nil { ... }
//	...
//	child.Finish() // parent.ChildDidFinish(child) removes it
//
// # Capabilities
//
// Deep-link handling (DeepLinker), state reset (Resetter) and screen teardown
// (Teardown) are optional. NewNode checks for them once; use DeepLinkerOf and
// Reset to query them afterwards.
package coordinator

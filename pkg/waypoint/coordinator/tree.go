package coordinator

import (
	"fmt"
	"strings"
)

// ChildOf returns the first child of parent with concrete type T.
func ChildOf[T Coordinator](parent Coordinator) (T, bool) {
	for _, c := range parent.node().children {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// WalkFunc is called for every coordinator reachable from the root.
// Returning false stops the walk.
type WalkFunc func(c Coordinator, depth int) bool

// Walk visits root and its owned descendants depth-first, parents before children.
func Walk(root Coordinator, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(c Coordinator, depth int, fn WalkFunc) bool {
	if !fn(c, depth) {
		return false
	}
	for _, child := range c.node().children {
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// Validate checks the ownership invariants of the tree under root: no
// coordinator is reachable twice and every child's parent reference is the
// coordinator that owns it.
func Validate(root Coordinator) error {
	seen := make(map[*Node]bool)
	return validate(root.node(), seen)
}

func validate(n *Node, seen map[*Node]bool) error {
	if seen[n] {
		return fmt.Errorf("%s: %w", n.self, ErrCycle)
	}
	seen[n] = true

	for _, child := range n.children {
		cn := child.node()
		if cn.parent != n {
			return fmt.Errorf("%s under %s: %w", child, n.self, ErrParentMismatch)
		}
		if err := validate(cn, seen); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the tree under root, one coordinator per line, indented by depth.
func Dump(root Coordinator) string {
	var b strings.Builder
	Walk(root, func(c Coordinator, depth int) bool {
		fmt.Fprintf(&b, "%s%s [%s]\n", strings.Repeat("  ", depth), c, c.node().State())
		return true
	})
	return b.String()
}

// Size returns the number of coordinators in the tree under root, root included.
func Size(root Coordinator) int {
	n := 0
	Walk(root, func(Coordinator, int) bool {
		n++
		return true
	})
	return n
}

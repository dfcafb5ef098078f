package coordinator

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/nav"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// Coordinator is a node of the navigation tree.
//
// Flows implement Begin and embed *Node for everything else. The unexported
// method means only types embedding *Node satisfy the interface.
type Coordinator interface {
	// Begin presents the flow's first screen. Start calls it exactly once.
	Begin() error

	Start() error
	Finish() error
	ChildDidFinish(child Coordinator)

	ID() uuid.UUID
	Name() string
	String() string

	node() *Node
}

// DeepLinker is implemented by coordinators that can resolve routes.
type DeepLinker interface {
	// CanHandleRoute reports whether the coordinator, or a child it would create,
	// can resolve r. It has no side effects.
	CanHandleRoute(r *route.Route) bool

	// HandleRoute resolves r. It returns false without side effects when
	// CanHandleRoute would; the error is reserved for lifecycle misuse.
	HandleRoute(r *route.Route) (bool, error)
}

// Resetter is implemented by coordinators holding flow state that must be
// discarded before a new deep link is applied.
type Resetter interface {
	ResetForDeepLink()
}

// Teardown is implemented by coordinators that undo their screens on finish.
type Teardown interface {
	Teardown()
}

// State is the lifecycle state of a coordinator.
type State int32

const (
	StateCreated State = iota
	StateStarted
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Node carries the tree links and lifecycle shared by every coordinator.
//
// A Node exclusively owns its children. The parent field is a non-owning
// back-reference used only to notify the parent on finish; it is cleared by
// the parent when the child is removed.
type Node struct {
	id   uuid.UUID
	name string
	nav  nav.Navigator
	self Coordinator

	// capabilities, resolved once in NewNode
	linker   DeepLinker
	resetter Resetter
	teardown Teardown

	parent   *Node
	children []Coordinator

	state  *atomic.Int32
	logger *slog.Logger
}

// NewNode creates the node for self. Call it from the flow's constructor:
//
//	c := &Products{catalog: cat}
//	c.Node = coordinator.NewNode(c, "products", navigator)
func NewNode(self Coordinator, name string, navigator nav.Navigator) *Node {
	n := &Node{
		id:     uuid.New(),
		name:   name,
		nav:    navigator,
		self:   self,
		state:  atomic.NewInt32(int32(StateCreated)),
		logger: internal.GetInternalLogger().With("coordinator", name),
	}
	n.linker, _ = self.(DeepLinker)
	n.resetter, _ = self.(Resetter)
	n.teardown, _ = self.(Teardown)
	return n
}

func (n *Node) node() *Node { return n }

// ID returns the identity assigned when the node was created.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the display name used in logs and tree dumps.
func (n *Node) Name() string { return n.name }

func (n *Node) String() string { return n.name }

// Navigator returns the navigation context shared with the host UI.
func (n *Node) Navigator() nav.Navigator { return n.nav }

// State returns the current lifecycle state.
func (n *Node) State() State { return State(n.state.Load()) }

// Start moves the coordinator to started and presents its first screen.
// If Begin fails the coordinator returns to created and Start may be retried.
func (n *Node) Start() error {
	if !n.state.CompareAndSwap(int32(StateCreated), int32(StateStarted)) {
		if n.State() == StateFinished {
			return n.misuse("start", ErrFinished)
		}
		return n.misuse("start", ErrAlreadyStarted)
	}

	if err := n.self.Begin(); err != nil {
		n.state.Store(int32(StateCreated))
		return fmt.Errorf("coordinator %s: begin: %w", n.self, err)
	}

	n.logger.Debug("coordinator started", "id", n.id.String())
	return nil
}

// Finish ends the flow. Owned children are finished first, then Teardown runs
// and the parent is notified through ChildDidFinish, which detaches this node.
// A finished coordinator cannot be reused.
func (n *Node) Finish() error {
	prev := State(n.state.Swap(int32(StateFinished)))
	if prev == StateFinished {
		return n.misuse("finish", ErrFinished)
	}

	for _, child := range n.Children() {
		if err := child.Finish(); err != nil && !errors.Is(err, ErrFinished) {
			n.logger.Error("finishing child failed", "child", child.String(), "error", err)
		}
	}

	// Teardown only undoes screens Begin actually presented.
	if n.teardown != nil && prev == StateStarted {
		n.teardown.Teardown()
	}

	if p := n.parent; p != nil {
		p.self.ChildDidFinish(n.self)
		// Flows overriding ChildDidFinish may forget to call through.
		if n.parent == p {
			p.RemoveChild(n.self)
		}
	}

	n.logger.Debug("coordinator finished", "id", n.id.String())
	return nil
}

// ChildDidFinish removes a finished child. Flows that track children in their
// own fields override it and call through.
func (n *Node) ChildDidFinish(child Coordinator) {
	n.RemoveChild(child)
}

// AddChild takes ownership of child.
func (n *Node) AddChild(child Coordinator) error {
	cn := child.node()

	if n.State() == StateFinished {
		return n.misuse("add_child", ErrFinished)
	}
	if cn.State() == StateFinished {
		return cn.misuse("add_child", ErrFinished)
	}
	for a := n; a != nil; a = a.parent {
		if a == cn {
			return n.misuse("add_child", ErrCycle)
		}
	}
	if cn.parent != nil {
		return cn.misuse("add_child", ErrAlreadyAttached)
	}

	cn.parent = n
	n.children = append(n.children, child)
	n.logger.Debug("child added", "child", child.String(), "children", len(n.children))
	return nil
}

// RemoveChild releases child and clears its parent reference.
// It reports whether child was owned by n.
func (n *Node) RemoveChild(child Coordinator) bool {
	cn := child.node()
	idx := slices.IndexFunc(n.children, func(c Coordinator) bool { return c.node() == cn })
	if idx < 0 {
		return false
	}

	n.children = slices.Delete(n.children, idx, idx+1)
	cn.parent = nil
	n.logger.Debug("child removed", "child", child.String(), "children", len(n.children))
	return true
}

// RemoveAllChildren releases every child without finishing them.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.children {
		c.node().parent = nil
	}
	n.children = nil
}

// Children returns a copy of the owned children in insertion order.
func (n *Node) Children() []Coordinator {
	return slices.Clone(n.children)
}

// ChildCount returns the number of attached children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Parent returns the owning coordinator while this one is attached.
func (n *Node) Parent() (Coordinator, bool) {
	if n.parent == nil {
		return nil, false
	}
	return n.parent.self, true
}

// Guard returns a LifecycleError unless the coordinator is started.
// Flows call it at the top of every capability method.
func (n *Node) Guard(op string) error {
	switch n.State() {
	case StateStarted:
		return nil
	case StateCreated:
		return n.misuse(op, ErrNotStarted)
	default:
		return n.misuse(op, ErrFinished)
	}
}

func (n *Node) misuse(op string, err error) error {
	lcErr := &LifecycleError{Op: op, Coordinator: n.self.String(), Err: err}
	n.logger.Error("coordinator misuse", "op", op, "id", n.id.String(), "error", err)
	return lcErr
}

// DeepLinkerOf returns the deep-link capability of c, if it has one.
func DeepLinkerOf(c Coordinator) (DeepLinker, bool) {
	if c == nil {
		return nil, false
	}
	l := c.node().linker
	return l, l != nil
}

// Reset asks c to discard its flow state before a new deep link.
// It reports whether c has the capability.
func Reset(c Coordinator) bool {
	r := c.node().resetter
	if r == nil {
		return false
	}
	r.ResetForDeepLink()
	c.node().logger.Debug("coordinator reset for deep link")
	return true
}

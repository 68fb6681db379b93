package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// NodeID names a node type.
type NodeID string

// Node is one render pass of a compositor graph.
//
// Render acquires the node's transient resources and records its work;
// Clear returns them to the pool. Each node is rendered at most once per
// execution and cleared before it renders again.
type Node interface {
	Render(in *Inputs)
	Clear()
}

// NodeState is the lifecycle state of a node within a graph.
type NodeState uint8

const (
	// StateUninitialized means the node holds no resources.
	StateUninitialized NodeState = iota

	// StateRendered means the node's outputs are valid for later nodes.
	StateRendered
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateRendered:
		return "Rendered"
	default:
		return fmt.Sprintf("NodeState(%d)", uint8(s))
	}
}

// Frame is what a graph execution renders: one view of one scene through
// one API.
type Frame struct {
	View      *view.View
	Scene     *view.Scene
	Options   view.RenderOptions
	API       render.API
	Pool      *pool.Pool
	Materials *Materials
}

// Inputs is the context handed to Node.Render. It is rebuilt for every
// call and must not be retained.
type Inputs struct {
	Frame

	ids   []NodeID
	nodes []Node
}

// InputIDs returns the ids of the resolved input nodes in declared order.
func (in *Inputs) InputIDs() []NodeID { return in.ids }

// InputCount returns the number of resolved inputs.
func (in *Inputs) InputCount() int { return len(in.nodes) }

// Input returns the input node registered as id, as type T.
//
// A missing input or a node of another type means the dependency
// declarations are wrong, and Input panics.
func Input[T Node](in *Inputs, id NodeID) T {
	for i, dep := range in.ids {
		if dep != id {
			continue
		}
		n, ok := in.nodes[i].(T)
		if !ok {
			var want T
			panic(fmt.Sprintf("compositor: input %q is %T, not %T", id, in.nodes[i], want))
		}
		return n
	}
	panic(fmt.Sprintf("compositor: %q is not an input of this node (inputs %v)", id, in.ids))
}

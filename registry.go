package compositor

import (
	"slices"

	"github.com/gogpu/compositor/view"
)

// NodeType describes a kind of node: how to create one and which nodes it
// needs as inputs for a given view.
type NodeType struct {
	// ID is the unique node id.
	ID NodeID

	// New allocates a node in the Uninitialized state.
	New func() Node

	// Dependencies returns the ids of the input nodes, in the order the node
	// expects them. The list may depend on the view's settings. A nil
	// function means the node has no dependencies.
	Dependencies func(v *view.View) []NodeID
}

// dependencies evaluates the dependency list for v.
func (t *NodeType) dependencies(v *view.View) []NodeID {
	if t.Dependencies == nil {
		return nil
	}
	return t.Dependencies(v)
}

// Registry maps node ids to node types.
//
// A Registry is populated during initialization and read by graph builds.
// It is not safe to register types concurrently with builds.
type Registry struct {
	types map[NodeID]*NodeType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[NodeID]*NodeType)}
}

// NewBuiltinRegistry creates a registry holding the built-in node types.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// Register adds a node type.
//
// Register panics if:
//   - the id is empty
//   - the factory is nil
//   - a type with the same id is already registered
//
// This ensures that duplicate registrations are caught early during
// initialization rather than silently replacing a node type.
func (r *Registry) Register(t NodeType) {
	if t.ID == "" {
		panic("compositor: Register with empty node id")
	}
	if t.New == nil {
		panic("compositor: Register factory is nil for " + string(t.ID))
	}
	if _, dup := r.types[t.ID]; dup {
		panic("compositor: Register called twice for " + string(t.ID))
	}
	r.types[t.ID] = &t
}

// Lookup returns the node type registered under id.
func (r *Registry) Lookup(id NodeID) (*NodeType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []NodeID {
	ids := make([]NodeID, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }

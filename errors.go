package compositor

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph is returned by Execute when the last Build failed.
var ErrInvalidGraph = errors.New("compositor: graph is invalid")

// ErrEmptyView is returned by Renderer.RenderView for a view with no pixels:
// neither a view rectangle nor an output target gives it a size.
var ErrEmptyView = errors.New("compositor: view has zero size")

// UnknownNodeError reports a node id missing from the registry.
type UnknownNodeError struct {
	// ID is the unregistered node id.
	ID NodeID

	// Requester is the node that declared ID as a dependency. It is empty
	// when ID was the final node.
	Requester NodeID
}

func (e *UnknownNodeError) Error() string {
	if e.Requester == "" {
		return fmt.Sprintf("compositor: unknown final node %q", e.ID)
	}
	return fmt.Sprintf("compositor: unknown node %q required by %q", e.ID, e.Requester)
}

// CycleError reports a dependency that leads back to a node still being
// resolved.
type CycleError struct {
	// Node is the node whose dependency closed the cycle.
	Node NodeID

	// Dependency is the node still in progress.
	Dependency NodeID
}

func (e *CycleError) Error() string {
	if e.Node == e.Dependency {
		return fmt.Sprintf("compositor: node %q depends on itself", e.Node)
	}
	return fmt.Sprintf("compositor: cyclic dependency between %q and %q", e.Node, e.Dependency)
}

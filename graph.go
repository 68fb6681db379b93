package compositor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/compositor/view"
)

// nodeInfo is the per-build record of one node.
type nodeInfo struct {
	id      NodeID
	typ     *NodeType
	node    Node
	inputs  []int
	lastUse int
	state   NodeState
}

// NodeInfo is a snapshot of one node of a built graph.
type NodeInfo struct {
	ID       NodeID
	Position int

	// Inputs holds the positions of the input nodes in declared order.
	Inputs []int

	// LastUse is the highest position of a node consuming this one, or -1
	// when nothing consumes it.
	LastUse int

	State NodeState
}

// depRecord is the dependency list a node reported during the last build.
type depRecord struct {
	id    NodeID
	known bool
	deps  []NodeID
}

// markState is the traversal state of a node id during Build.
type markState uint8

const (
	unseen markState = iota
	inProgress
	resolved
)

type mark struct {
	state markState
	pos   int
}

// frame is one entry of the Build worklist.
type frame struct {
	id   NodeID
	typ  *NodeType
	deps []NodeID
	next int
}

// Graph is the execution order of the nodes needed to produce one final
// node for one view.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes []*nodeInfo
	valid bool
	final NodeID

	// records holds the dependency list of every node visited by the last
	// build, successful or not, in visit order.
	records []depRecord

	warned bool
}

// Build resolves final and its transitive dependencies for v into an
// execution order. Every node appears after all of its inputs, and a node
// reachable through several paths is instantiated once.
//
// On failure the graph is left empty and invalid and the error is an
// *UnknownNodeError or a *CycleError.
func (g *Graph) Build(reg *Registry, v *view.View, final NodeID) error {
	g.Clear()
	g.nodes = nil
	g.records = g.records[:0]
	g.valid = false
	g.warned = false
	g.final = final

	if err := g.build(reg, v, final); err != nil {
		g.nodes = nil
		Logger().Warn("compositor: graph build failed", "view", v.Name(), "final", final, "err", err)
		return err
	}
	g.valid = true
	Logger().Debug("compositor: graph built", "view", v.Name(), "final", final, "order", g.Order())
	return nil
}

func (g *Graph) build(reg *Registry, v *view.View, final NodeID) error {
	marks := make(map[NodeID]mark)
	var stack []frame

	push := func(id, requester NodeID) error {
		typ, ok := reg.Lookup(id)
		if !ok {
			g.records = append(g.records, depRecord{id: id})
			return &UnknownNodeError{ID: id, Requester: requester}
		}
		deps := slices.Clone(typ.dependencies(v))
		g.records = append(g.records, depRecord{id: id, known: true, deps: deps})
		marks[id] = mark{state: inProgress}
		stack = append(stack, frame{id: id, typ: typ, deps: deps})
		return nil
	}

	if err := push(final, ""); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.deps) {
			dep := top.deps[top.next]
			top.next++
			switch marks[dep].state {
			case unseen:
				if err := push(dep, top.id); err != nil {
					return err
				}
			case inProgress:
				return &CycleError{Node: top.id, Dependency: dep}
			case resolved:
				// Shared input, already placed.
			}
			continue
		}

		done := *top
		stack = stack[:len(stack)-1]

		pos := len(g.nodes)
		info := &nodeInfo{
			id:      done.id,
			typ:     done.typ,
			node:    done.typ.New(),
			inputs:  make([]int, len(done.deps)),
			lastUse: -1,
		}
		for i, dep := range done.deps {
			depPos := marks[dep].pos
			info.inputs[i] = depPos
			g.nodes[depPos].lastUse = max(g.nodes[depPos].lastUse, pos)
		}
		g.nodes = append(g.nodes, info)
		marks[done.id] = mark{state: resolved, pos: pos}
		Logger().Debug("compositor: node placed", "node", done.id, "position", pos, "inputs", done.deps)
	}
	return nil
}

// Stale reports whether building final for v would produce a different
// graph: the final node changed, or some visited node now reports a
// different dependency list. A graph that was never built is stale.
func (g *Graph) Stale(reg *Registry, v *view.View, final NodeID) bool {
	if final != g.final || len(g.records) == 0 {
		return true
	}
	for _, rec := range g.records {
		typ, ok := reg.Lookup(rec.id)
		if ok != rec.known {
			return true
		}
		if ok && !slices.Equal(rec.deps, typ.dependencies(v)) {
			return true
		}
	}
	return false
}

// IsValid reports whether the last Build succeeded.
func (g *Graph) IsValid() bool { return g.valid }

// Final returns the final node id of the last Build.
func (g *Graph) Final() NodeID { return g.final }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Order returns the node ids in execution order.
func (g *Graph) Order() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.id
	}
	return ids
}

// Info returns a snapshot of the node at position i.
func (g *Graph) Info(i int) NodeInfo {
	n := g.nodes[i]
	return NodeInfo{
		ID:       n.id,
		Position: i,
		Inputs:   slices.Clone(n.inputs),
		LastUse:  n.lastUse,
		State:    n.state,
	}
}

// Node returns the node instance at position i.
func (g *Graph) Node(i int) Node { return g.nodes[i].node }

// Position returns the position of id, or -1.
func (g *Graph) Position(id NodeID) int {
	for i, n := range g.nodes {
		if n.id == id {
			return i
		}
	}
	return -1
}

// Clear releases the resources of every rendered node. The graph keeps
// its nodes and can execute again.
func (g *Graph) Clear() {
	for _, n := range g.nodes {
		if n.state == StateRendered {
			n.node.Clear()
			n.state = StateUninitialized
		}
	}
}

// String lists the nodes with their inputs and last use, one per line.
func (g *Graph) String() string {
	if !g.valid {
		return fmt.Sprintf("Graph[%s invalid]", g.final)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Graph[%s, %d nodes]\n", g.final, len(g.nodes))
	for i, n := range g.nodes {
		fmt.Fprintf(&sb, "%3d %-14s inputs=%v lastUse=%d\n", i, n.id, n.inputs, n.lastUse)
	}
	return sb.String()
}

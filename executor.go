package compositor

import "fmt"

// ExecuteStats summarizes one graph execution.
type ExecuteStats struct {
	// Rendered is the number of Render calls.
	Rendered int

	// Cleared is the number of Clear calls.
	Cleared int

	// PeakLive is the largest number of nodes holding resources at once.
	PeakLive int
}

// String returns a human-readable summary.
func (s ExecuteStats) String() string {
	return fmt.Sprintf("Execute[%d rendered, %d cleared, peak %d live]", s.Rendered, s.Cleared, s.PeakLive)
}

// Execute renders every node in order. After each node renders, every
// node whose last consumer has now rendered is cleared, returning its
// resources to the pool. The last node is always cleared at the end.
//
// Executing an invalid graph does nothing and returns ErrInvalidGraph.
// Rendering a node that was not cleared since its previous Render panics.
func (g *Graph) Execute(f Frame) (ExecuteStats, error) {
	var stats ExecuteStats
	if !g.valid {
		if !g.warned {
			g.warned = true
			Logger().Warn("compositor: skipping execution of invalid graph", "final", g.final)
		}
		return stats, ErrInvalidGraph
	}

	live := 0
	release := func(n *nodeInfo) {
		n.node.Clear()
		n.state = StateUninitialized
		stats.Cleared++
		live--
		Logger().Debug("compositor: node cleared", "node", n.id)
	}

	for i, n := range g.nodes {
		if n.state == StateRendered {
			panic(fmt.Sprintf("compositor: node %q rendered twice without Clear", n.id))
		}

		in := &Inputs{
			Frame: f,
			ids:   make([]NodeID, len(n.inputs)),
			nodes: make([]Node, len(n.inputs)),
		}
		for k, pos := range n.inputs {
			in.ids[k] = g.nodes[pos].id
			in.nodes[k] = g.nodes[pos].node
		}

		n.node.Render(in)
		n.state = StateRendered
		stats.Rendered++
		live++
		stats.PeakLive = max(stats.PeakLive, live)
		Logger().Debug("compositor: node rendered", "node", n.id, "position", i)

		for _, done := range g.nodes[:i+1] {
			if done.state == StateRendered && done.lastUse <= i {
				release(done)
			}
		}
	}

	if last := g.nodes[len(g.nodes)-1]; last.state == StateRendered {
		release(last)
	}
	return stats, nil
}

package compositor

import (
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// newTestView returns a 64x64 single-sample view that runs post-processing
// with default settings.
func newTestView() *view.View {
	return view.New("test", view.Properties{
		RunPostProcessing: true,
		Target:            view.Target{Target: render.NewImageTarget(64, 64)},
	}, nil)
}

// eventLog records node Render and Clear calls in order.
type eventLog struct {
	events []string
}

func (l *eventLog) add(kind string, id NodeID) {
	l.events = append(l.events, kind+":"+string(id))
}

// testNode logs its lifecycle.
type testNode struct {
	id     NodeID
	log    *eventLog
	inputs []NodeID
}

func (n *testNode) Render(in *Inputs) {
	n.inputs = append([]NodeID(nil), in.InputIDs()...)
	n.log.add("render", n.id)
}

func (n *testNode) Clear() {
	n.log.add("clear", n.id)
}

// mockBuiltinRegistry has the built-in dependency lists with logging nodes.
func mockBuiltinRegistry(log *eventLog) *Registry {
	builtin := NewBuiltinRegistry()
	reg := NewRegistry()
	for _, id := range builtin.IDs() {
		typ, _ := builtin.Lookup(id)
		reg.Register(NodeType{
			ID:           id,
			New:          func() Node { return &testNode{id: id, log: log} },
			Dependencies: typ.Dependencies,
		})
	}
	return reg
}

// edgeRegistry builds a registry of logging nodes with static edges.
func edgeRegistry(log *eventLog, edges map[NodeID][]NodeID) *Registry {
	reg := NewRegistry()
	for id, deps := range edges {
		reg.Register(NodeType{
			ID:           id,
			New:          func() Node { return &testNode{id: id, log: log} },
			Dependencies: static(deps...),
		})
	}
	return reg
}

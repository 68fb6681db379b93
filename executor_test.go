package compositor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExecuteEarlyClear(t *testing.T) {
	g, log := buildDefault(t)

	stats, err := g.Execute(Frame{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"render:ForwardPass",
		"render:Skybox",
		"render:PostProcess",
		"clear:Skybox",
		"render:MotionBlur",
		"render:Tonemapping",
		"clear:MotionBlur",
		"render:GaussianDOF",
		"clear:Tonemapping",
		"render:FXAA",
		"clear:ForwardPass",
		"clear:GaussianDOF",
		"render:FinalResolve",
		"clear:PostProcess",
		"clear:FXAA",
		"clear:FinalResolve",
	}
	if diff := cmp.Diff(want, log.events); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}

	wantStats := ExecuteStats{Rendered: 8, Cleared: 8, PeakLive: 4}
	if stats != wantStats {
		t.Errorf("stats = %v, want %v", stats, wantStats)
	}
	for i := 0; i < g.Len(); i++ {
		if g.Info(i).State != StateUninitialized {
			t.Errorf("%s left in state %v", g.Info(i).ID, g.Info(i).State)
		}
	}
}

func TestExecuteHandsInputsInDeclaredOrder(t *testing.T) {
	g, _ := buildDefault(t)
	if _, err := g.Execute(Frame{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	fxaa := g.Node(g.Position(FXAAID)).(*testNode)
	want := []NodeID{GaussianDOFID, ForwardPassID, PostProcessID}
	if diff := cmp.Diff(want, fxaa.inputs); diff != "" {
		t.Errorf("FXAA inputs mismatch (-want +got):\n%s", diff)
	}
	fwd := g.Node(g.Position(ForwardPassID)).(*testNode)
	if len(fwd.inputs) != 0 {
		t.Errorf("ForwardPass inputs = %v, want none", fwd.inputs)
	}
}

func TestExecuteRepeatable(t *testing.T) {
	g, log := buildDefault(t)

	for frame := 0; frame < 3; frame++ {
		log.events = log.events[:0]
		stats, err := g.Execute(Frame{})
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if stats.Rendered != 8 || stats.Cleared != 8 {
			t.Errorf("frame %d: stats = %v", frame, stats)
		}
		if len(log.events) != 16 {
			t.Errorf("frame %d: %d events, want 16", frame, len(log.events))
		}
	}
}

func TestExecuteSingleNode(t *testing.T) {
	log := &eventLog{}
	var g Graph
	if err := g.Build(edgeRegistry(log, map[NodeID][]NodeID{"Only": nil}), newTestView(), "Only"); err != nil {
		t.Fatalf("Build: %v", err)
	}
	stats, err := g.Execute(Frame{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if diff := cmp.Diff([]string{"render:Only", "clear:Only"}, log.events); diff != "" {
		t.Errorf("event log mismatch (-want +got):\n%s", diff)
	}
	if stats.PeakLive != 1 {
		t.Errorf("PeakLive = %d, want 1", stats.PeakLive)
	}
}

func TestExecuteInvalidGraph(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log := &eventLog{}
	var g Graph
	_ = g.Build(edgeRegistry(log, map[NodeID][]NodeID{"A": {"B"}, "B": {"A"}}), newTestView(), "A")
	buf.Reset()

	for i := 0; i < 3; i++ {
		stats, err := g.Execute(Frame{})
		if !errors.Is(err, ErrInvalidGraph) {
			t.Fatalf("err = %v, want ErrInvalidGraph", err)
		}
		if stats != (ExecuteStats{}) {
			t.Errorf("stats = %v, want zero", stats)
		}
	}
	if len(log.events) != 0 {
		t.Errorf("invalid graph produced events %v", log.events)
	}
	if n := strings.Count(buf.String(), "skipping execution of invalid graph"); n != 1 {
		t.Errorf("warning logged %d times, want once:\n%s", n, buf.String())
	}
}

func TestExecuteRenderTwicePanics(t *testing.T) {
	g, _ := buildDefault(t)
	g.nodes[0].state = StateRendered

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "rendered twice") {
			t.Errorf("panic = %v", r)
		}
	}()
	_, _ = g.Execute(Frame{})
}

func TestGraphClear(t *testing.T) {
	g, log := buildDefault(t)
	for _, n := range g.nodes[:3] {
		n.state = StateRendered
	}

	g.Clear()
	want := []string{"clear:ForwardPass", "clear:Skybox", "clear:PostProcess"}
	if diff := cmp.Diff(want, log.events); diff != "" {
		t.Errorf("Clear events mismatch (-want +got):\n%s", diff)
	}

	log.events = nil
	g.Clear()
	if len(log.events) != 0 {
		t.Errorf("second Clear produced %v", log.events)
	}
}

func TestExecuteStatsString(t *testing.T) {
	s := ExecuteStats{Rendered: 8, Cleared: 8, PeakLive: 4}
	if got, want := s.String(), "Execute[8 rendered, 8 cleared, peak 4 live]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNodeStateString(t *testing.T) {
	tests := []struct {
		s    NodeState
		want string
	}{
		{StateUninitialized, "Uninitialized"},
		{StateRendered, "Rendered"},
		{NodeState(9), "NodeState(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInputPanics(t *testing.T) {
	in := &Inputs{ids: []NodeID{"A"}, nodes: []Node{&testNode{}}}

	if got := Input[*testNode](in, "A"); got == nil {
		t.Error("Input returned nil")
	}

	expectPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	expectPanic("missing", func() { Input[*testNode](in, "B") })
	expectPanic("wrong type", func() { Input[*ForwardPass](in, "A") })
}

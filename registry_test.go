package compositor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NodeType{ID: "A", New: func() Node { return &testNode{} }})

	typ, ok := reg.Lookup("A")
	if !ok || typ.ID != "A" {
		t.Fatalf("Lookup(A) = %v, %v", typ, ok)
	}
	if typ.dependencies(newTestView()) != nil {
		t.Error("nil Dependencies should report no dependencies")
	}
	if _, ok := reg.Lookup("B"); ok {
		t.Error("Lookup(B) should fail for an unregistered id")
	}
}

func TestRegistryRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		typ  NodeType
	}{
		{"empty id", NodeType{New: func() Node { return &testNode{} }}},
		{"nil factory", NodeType{ID: "B"}},
		{"duplicate", NodeType{ID: "A", New: func() Node { return &testNode{} }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			reg.Register(NodeType{ID: "A", New: func() Node { return &testNode{} }})

			defer func() {
				if recover() == nil {
					t.Errorf("Register(%+v) should panic", tt.typ)
				}
			}()
			reg.Register(tt.typ)
		})
	}
}

func TestBuiltinRegistry(t *testing.T) {
	reg := NewBuiltinRegistry()

	want := []NodeID{
		BloomID, FXAAID, FinalResolveID, ForwardPassID, GaussianDOFID,
		MotionBlurID, PostProcessID, SSAOID, SkyboxID, TonemappingID,
	}
	if diff := cmp.Diff(want, reg.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	if reg.Len() != 10 {
		t.Errorf("Len() = %d, want 10", reg.Len())
	}

	for _, id := range reg.IDs() {
		typ, _ := reg.Lookup(id)
		if typ.New() == nil {
			t.Errorf("%s factory returned nil", id)
		}
	}
}

func TestBuiltinDependencies(t *testing.T) {
	reg := NewBuiltinRegistry()
	msaa := newTestView()
	props := msaa.Properties()
	props.Target.NumSamples = 4
	msaa.SetProperties(props)

	noPost := newTestView()
	props = noPost.Properties()
	props.RunPostProcessing = false
	noPost.SetProperties(props)

	effects := newTestView()
	effects.Settings().Bloom.Enabled = true
	effects.Settings().AmbientOcclusion.Enabled = true

	tests := []struct {
		name string
		id   NodeID
		want []NodeID
	}{
		{"forward", ForwardPassID, nil},
		{"skybox", SkyboxID, []NodeID{ForwardPassID}},
		{"postprocess", PostProcessID, []NodeID{ForwardPassID, SkyboxID}},
		{"tonemapping", TonemappingID, []NodeID{MotionBlurID, PostProcessID}},
		{"motion blur", MotionBlurID, []NodeID{PostProcessID}},
		{"dof", GaussianDOFID, []NodeID{TonemappingID, ForwardPassID, PostProcessID}},
		{"fxaa", FXAAID, []NodeID{GaussianDOFID, ForwardPassID, PostProcessID}},
		{"ssao", SSAOID, []NodeID{ForwardPassID, PostProcessID}},
		{"bloom", BloomID, []NodeID{PostProcessID}},
		{"final", FinalResolveID, []NodeID{PostProcessID, FXAAID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, _ := reg.Lookup(tt.id)
			if diff := cmp.Diff(tt.want, typ.dependencies(newTestView())); diff != "" {
				t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
			}
		})
	}

	tonemap, _ := reg.Lookup(TonemappingID)
	if diff := cmp.Diff([]NodeID{MotionBlurID, PostProcessID, BloomID, SSAOID}, tonemap.dependencies(effects)); diff != "" {
		t.Errorf("tonemapping with effects mismatch (-want +got):\n%s", diff)
	}

	final, _ := reg.Lookup(FinalResolveID)
	for _, v := range []struct {
		name string
		deps []NodeID
	}{
		{"msaa", final.dependencies(msaa)},
		{"no post", final.dependencies(noPost)},
	} {
		if diff := cmp.Diff([]NodeID{ForwardPassID, SkyboxID}, v.deps); diff != "" {
			t.Errorf("final resolve %s mismatch (-want +got):\n%s", v.name, diff)
		}
	}
}

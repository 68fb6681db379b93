package compositor

import "github.com/gogpu/compositor/view"

// Built-in node ids.
const (
	ForwardPassID  NodeID = "ForwardPass"
	SkyboxID       NodeID = "Skybox"
	PostProcessID  NodeID = "PostProcess"
	TonemappingID  NodeID = "Tonemapping"
	MotionBlurID   NodeID = "MotionBlur"
	GaussianDOFID  NodeID = "GaussianDOF"
	FXAAID         NodeID = "FXAA"
	SSAOID         NodeID = "SSAO"
	BloomID        NodeID = "Bloom"
	FinalResolveID NodeID = "FinalResolve"
)

// resolvesPostProcess reports whether the final resolve reads the
// post-process chain rather than the forward pass directly.
func resolvesPostProcess(v *view.View) bool {
	return v.Properties().RunPostProcessing && v.Properties().Target.NumSamples <= 1
}

func static(ids ...NodeID) func(*view.View) []NodeID {
	return func(*view.View) []NodeID { return ids }
}

// RegisterBuiltins registers the ten built-in node types in r.
func RegisterBuiltins(r *Registry) {
	r.Register(NodeType{
		ID:  ForwardPassID,
		New: func() Node { return &ForwardPass{} },
	})
	r.Register(NodeType{
		ID:           SkyboxID,
		New:          func() Node { return &Skybox{} },
		Dependencies: static(ForwardPassID),
	})
	r.Register(NodeType{
		ID:           PostProcessID,
		New:          func() Node { return &PostProcess{} },
		Dependencies: static(ForwardPassID, SkyboxID),
	})
	r.Register(NodeType{
		ID:  TonemappingID,
		New: func() Node { return &Tonemapping{} },
		Dependencies: func(v *view.View) []NodeID {
			deps := []NodeID{MotionBlurID, PostProcessID}
			if v.Settings().Bloom.Enabled {
				deps = append(deps, BloomID)
			}
			if v.Settings().AmbientOcclusion.Enabled {
				deps = append(deps, SSAOID)
			}
			return deps
		},
	})
	r.Register(NodeType{
		ID:           MotionBlurID,
		New:          func() Node { return &MotionBlur{} },
		Dependencies: static(PostProcessID),
	})
	r.Register(NodeType{
		ID:           GaussianDOFID,
		New:          func() Node { return &GaussianDOF{} },
		Dependencies: static(TonemappingID, ForwardPassID, PostProcessID),
	})
	r.Register(NodeType{
		ID:           FXAAID,
		New:          func() Node { return &FXAA{} },
		Dependencies: static(GaussianDOFID, ForwardPassID, PostProcessID),
	})
	r.Register(NodeType{
		ID:           SSAOID,
		New:          func() Node { return &SSAO{} },
		Dependencies: static(ForwardPassID, PostProcessID),
	})
	r.Register(NodeType{
		ID:           BloomID,
		New:          func() Node { return &Bloom{} },
		Dependencies: static(PostProcessID),
	})
	r.Register(NodeType{
		ID:  FinalResolveID,
		New: func() Node { return &FinalResolve{} },
		Dependencies: func(v *view.View) []NodeID {
			if resolvesPostProcess(v) {
				return []NodeID{PostProcessID, FXAAID}
			}
			return []NodeID{ForwardPassID, SkyboxID}
		},
	})
}

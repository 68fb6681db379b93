package compositor

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor/render"
)

// Blit techniques.
const (
	blitTechnique        = 0
	blitFlippedTechnique = 1
)

// Material parameter keys of the built-in effects.
const (
	ParamTint          = "Tint"
	ParamExposure      = "Exposure"
	ParamGamma         = "Gamma"
	ParamBloomEnabled  = "BloomEnabled"
	ParamAOEnabled     = "AOEnabled"
	ParamBlurSamples   = "BlurSamples"
	ParamPrevViewProj  = "PrevViewProj"
	ParamFocalDistance = "FocalDistance"
	ParamFocalRange    = "FocalRange"
	ParamBlurRadius    = "BlurRadius"
	ParamAORadius      = "AORadius"
	ParamAOIntensity   = "AOIntensity"
	ParamBloomScale    = "BloomIntensity"
	ParamBloomCutoff   = "BloomThreshold"
	ParamInvTargetSize = "InvTargetSize"
)

// Materials holds the materials and meshes of the built-in nodes.
type Materials struct {
	Blit        *render.Material
	Skybox      *render.Material
	Tonemapping *render.Material
	MotionBlur  *render.Material
	GaussianDOF *render.Material
	FXAA        *render.Material
	SSAO        *render.Material
	Bloom       *render.Material

	Quad    *render.Mesh
	SkyMesh *render.Mesh
}

// NewMaterials creates the built-in materials.
func NewMaterials() *Materials {
	fullscreen := func(name string) *render.Material {
		return render.NewSinglePassMaterial(name, render.Pass{Fullscreen: true})
	}

	blit := render.NewMaterial("Blit",
		&render.Technique{Name: "Blit", Passes: []*render.Pass{{Name: "Blit", Fullscreen: true}}},
		&render.Technique{Name: "BlitFlipped", Passes: []*render.Pass{{Name: "BlitFlipped", Fullscreen: true, FlipY: true}}},
	)

	sky := render.NewSinglePassMaterial("Skybox", render.Pass{DepthTest: true})
	sky.SetDefault(ParamTint, gputypes.Color{R: 1, G: 1, B: 1, A: 1})

	tonemap := fullscreen("Tonemapping")
	tonemap.SetDefault(ParamExposure, float32(1))
	tonemap.SetDefault(ParamGamma, float32(2.2))

	return &Materials{
		Blit:        blit,
		Skybox:      sky,
		Tonemapping: tonemap,
		MotionBlur:  fullscreen("MotionBlur"),
		GaussianDOF: fullscreen("GaussianDOF"),
		FXAA:        fullscreen("FXAA"),
		SSAO:        fullscreen("SSAO"),
		Bloom:       fullscreen("Bloom"),
		Quad:        render.FullscreenQuad(),
		SkyMesh:     render.SkyboxMesh(),
	}
}

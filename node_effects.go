package compositor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/compositor/render"
)

// Tonemapping maps the HDR post-process chain to display range, compositing
// bloom and ambient occlusion when they are enabled.
type Tonemapping struct {
	params *render.GpuParams
}

// Render implements Node.
func (n *Tonemapping) Render(in *Inputs) {
	settings := in.View.Settings()
	if !settings.Tonemapping.Enabled {
		return
	}
	pp := Input[*PostProcess](in, PostProcessID)
	if n.params == nil {
		n.params = newParams(in.Materials.Tonemapping)
	}

	setParam(n.params, ParamExposure, settings.Tonemapping.Exposure)
	setParam(n.params, ParamGamma, settings.Tonemapping.Gamma)

	setParam(n.params, ParamBloomEnabled, settings.Bloom.Enabled)
	if settings.Bloom.Enabled {
		n.params.SetTexture(render.AuxTextureSlot, Input[*Bloom](in, BloomID).Output())
	} else {
		n.params.SetTexture(render.AuxTextureSlot, nil)
	}

	setParam(n.params, ParamAOEnabled, settings.AmbientOcclusion.Enabled)
	if settings.AmbientOcclusion.Enabled {
		n.params.SetTexture(render.OcclusionTextureSlot, Input[*SSAO](in, SSAOID).Output())
	} else {
		n.params.SetTexture(render.OcclusionTextureSlot, nil)
	}

	drawEffect(in, pp, in.Materials.Tonemapping, n.params)
}

// Clear implements Node.
func (n *Tonemapping) Clear() {}

// MotionBlur blurs the post-process chain along camera motion.
type MotionBlur struct {
	params       *render.GpuParams
	prevViewProj mgl32.Mat4
	hasPrev      bool
}

// Render implements Node.
func (n *MotionBlur) Render(in *Inputs) {
	settings := in.View.Settings().MotionBlur
	if !settings.Enabled {
		return
	}
	pp := Input[*PostProcess](in, PostProcessID)
	if n.params == nil {
		n.params = newParams(in.Materials.MotionBlur)
	}

	viewProj := in.View.ViewProj()
	if !n.hasPrev {
		n.prevViewProj, n.hasPrev = viewProj, true
	}
	setParam(n.params, ParamBlurSamples, int32(settings.Samples)) //nolint:gosec // G115: sample counts are small
	setParam(n.params, ParamPrevViewProj, n.prevViewProj)
	n.prevViewProj = viewProj

	drawEffect(in, pp, in.Materials.MotionBlur, n.params)
}

// Clear implements Node. The previous frame transform is kept.
func (n *MotionBlur) Clear() {}

// GaussianDOF blurs the image by distance from the focal plane.
type GaussianDOF struct {
	params *render.GpuParams
}

// Render implements Node.
func (n *GaussianDOF) Render(in *Inputs) {
	settings := in.View.Settings().DepthOfField
	if !settings.Enabled {
		return
	}
	fwd := Input[*ForwardPass](in, ForwardPassID)
	pp := Input[*PostProcess](in, PostProcessID)
	if n.params == nil {
		n.params = newParams(in.Materials.GaussianDOF)
	}

	setParam(n.params, ParamFocalDistance, settings.FocalDistance)
	setParam(n.params, ParamFocalRange, settings.FocalRange)
	setParam(n.params, ParamBlurRadius, settings.BlurRadius)
	n.params.SetTexture(render.DepthTextureSlot, fwd.DepthTex.Tex)

	drawEffect(in, pp, in.Materials.GaussianDOF, n.params)
}

// Clear implements Node.
func (n *GaussianDOF) Clear() {
	if n.params != nil {
		n.params.SetTexture(render.DepthTextureSlot, nil)
	}
}

// FXAA applies fast approximate antialiasing. It does nothing when the
// view is multisampled.
//
// FXAA samples the latest post-process output, so it runs on the tonemapped
// image rather than on the forward pass scene texture. With no effect
// before it, that output is the scene texture.
type FXAA struct {
	params *render.GpuParams
}

// Render implements Node.
func (n *FXAA) Render(in *Inputs) {
	if !in.View.Settings().EnableFXAA || numSamples(in.View) > 1 {
		return
	}
	pp := Input[*PostProcess](in, PostProcessID)
	if n.params == nil {
		n.params = newParams(in.Materials.FXAA)
	}

	w, h := in.View.TargetSize()
	if w > 0 && h > 0 {
		setParam(n.params, ParamInvTargetSize, mgl32.Vec2{1 / float32(w), 1 / float32(h)})
	}

	drawEffect(in, pp, in.Materials.FXAA, n.params)
}

// Clear implements Node.
func (n *FXAA) Clear() {}

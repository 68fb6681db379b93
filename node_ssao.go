package compositor

import (
	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
)

// SSAO computes screen-space ambient occlusion from the forward pass
// depth and normals into its own single-channel target.
type SSAO struct {
	output *pool.Texture
	params *render.GpuParams
}

// Output returns the occlusion texture, or nil when the pass is disabled.
func (n *SSAO) Output() render.Texture {
	if n.output == nil {
		return nil
	}
	return n.output.Tex
}

// Render implements Node.
func (n *SSAO) Render(in *Inputs) {
	settings := in.View.Settings().AmbientOcclusion
	if !settings.Enabled {
		return
	}
	fwd := Input[*ForwardPass](in, ForwardPassID)
	if n.params == nil {
		n.params = newParams(in.Materials.SSAO)
	}

	w, h := in.View.TargetSize()
	n.output = in.Pool.Acquire(pool.Create2D(render.PixelFormatR8, w, h,
		render.TextureUsageRenderTarget|render.TextureUsageTextureBinding))

	setParam(n.params, ParamAORadius, settings.Radius)
	setParam(n.params, ParamAOIntensity, settings.Intensity)
	n.params.SetTexture(render.SourceTextureSlot, fwd.DepthTex.Tex)
	n.params.SetTexture(render.DepthTextureSlot, fwd.DepthTex.Tex)
	n.params.SetTexture(render.NormalTextureSlot, fwd.NormalTex.Tex)

	api := in.API
	api.SetRenderTarget(n.output.RenderTex, 0)
	api.SetViewport(render.FullRect2)
	drawFullscreen(api, in.Materials.SSAO, 0, n.params, in.Materials.Quad)
	api.SetRenderTarget(nil, 0)
}

// Clear implements Node.
func (n *SSAO) Clear() {
	n.output = releaseTexture(n.output)
}

package compositor

import (
	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
)

// bloomDownsample is the resolution divisor of the bloom target.
const bloomDownsample = 4

// Bloom extracts and blurs the bright parts of the post-process chain into
// a quarter resolution target composited by tonemapping.
type Bloom struct {
	output *pool.Texture
	params *render.GpuParams
}

// Output returns the bloom texture, or nil when the pass is disabled.
func (n *Bloom) Output() render.Texture {
	if n.output == nil {
		return nil
	}
	return n.output.Tex
}

// Render implements Node.
func (n *Bloom) Render(in *Inputs) {
	settings := in.View.Settings().Bloom
	if !settings.Enabled {
		return
	}
	pp := Input[*PostProcess](in, PostProcessID)
	if n.params == nil {
		n.params = newParams(in.Materials.Bloom)
	}

	w, h := in.View.TargetSize()
	n.output = in.Pool.Acquire(pool.Create2D(render.PixelFormatRGBA8,
		max(w/bloomDownsample, 1), max(h/bloomDownsample, 1),
		render.TextureUsageRenderTarget|render.TextureUsageTextureBinding))

	setParam(n.params, ParamBloomScale, settings.Intensity)
	setParam(n.params, ParamBloomCutoff, settings.Threshold)
	n.params.SetTexture(render.SourceTextureSlot, pp.LastOutput())

	api := in.API
	api.SetRenderTarget(n.output.RenderTex, 0)
	api.SetViewport(render.FullRect2)
	drawFullscreen(api, in.Materials.Bloom, 0, n.params, in.Materials.Quad)
	api.SetRenderTarget(nil, 0)
}

// Clear implements Node.
func (n *Bloom) Clear() {
	n.output = releaseTexture(n.output)
}

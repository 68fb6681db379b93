package compositor

import (
	"github.com/gogpu/compositor/render"
)

// FinalResolve blits the composited image into the view's output target.
type FinalResolve struct {
	params *render.GpuParams
}

// Render implements Node.
func (n *FinalResolve) Render(in *Inputs) {
	v := in.View
	props := v.Properties()
	if props.Target.Target == nil {
		Logger().Warn("compositor: view has no output target", "view", v.Name())
		return
	}
	if n.params == nil {
		n.params = newParams(in.Materials.Blit)
	}

	var src render.Texture
	if resolvesPostProcess(v) {
		src = Input[*PostProcess](in, PostProcessID).LastOutput()
	} else {
		src = Input[*ForwardPass](in, ForwardPassID).SceneTex.Tex
	}
	n.params.SetTexture(render.SourceTextureSlot, src)

	tech := blitTechnique
	if props.FlipView {
		tech = blitFlippedTechnique
	}

	api := in.API
	api.SetRenderTarget(props.Target.Target, 0)
	api.SetViewport(props.Target.NrmViewRect)
	drawFullscreen(api, in.Materials.Blit, tech, n.params, in.Materials.Quad)
	v.NotifyCompositorTargetChanged(nil)
	api.SetRenderTarget(nil, 0)
}

// Clear implements Node.
func (n *FinalResolve) Clear() {
	if n.params != nil {
		n.params.SetTexture(render.SourceTextureSlot, nil)
	}
}

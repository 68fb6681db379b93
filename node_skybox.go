package compositor

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// Skybox draws the environment behind the forward pass geometry, testing
// against its depth buffer. Without radiance, or with the skybox disabled in
// the view settings, the sky mesh is still drawn in the target clear color.
type Skybox struct {
	params *render.GpuParams
}

// Render implements Node.
func (n *Skybox) Render(in *Inputs) {
	fwd := Input[*ForwardPass](in, ForwardPassID)
	mat := in.Materials.Skybox
	if n.params == nil {
		n.params = newParams(mat)
	}

	var sky *view.Skybox
	if in.View.Settings().EnableSkybox {
		sky = in.Scene.Skybox
	}
	if sky != nil && sky.Radiance != nil {
		n.params.SetTexture(render.SourceTextureSlot, sky.Radiance)
		setParam(n.params, ParamTint, gputypes.Color{R: 1, G: 1, B: 1, A: 1})
	} else {
		n.params.SetTexture(render.SourceTextureSlot, nil)
		setParam(n.params, ParamTint, in.View.Properties().Target.ClearColor)
	}

	api := in.API
	api.SetRenderTarget(fwd.RenderTargetTex, render.FramebufferDepth|render.FramebufferStencil)
	api.SetViewport(render.FullRect2)
	api.SetPipeline(mat.Pass(0, 0))
	api.SetGpuParams(n.params, render.BindAll)
	api.Draw(in.Materials.SkyMesh, in.Materials.SkyMesh.SubMesh(0), 0)
}

// Clear implements Node.
func (n *Skybox) Clear() {}

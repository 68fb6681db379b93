package compositor

import (
	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// drawFullscreen draws the quad with pass 0 of technique tech of mat.
func drawFullscreen(api render.API, mat *render.Material, tech int, params *render.GpuParams, quad *render.Mesh) {
	api.SetPipeline(mat.Pass(tech, 0))
	api.SetGpuParams(params, render.BindAll)
	api.Draw(quad, quad.SubMesh(0), 0)
}

// drawEffect runs mat over the latest post-process output into the next
// ping-pong target.
func drawEffect(in *Inputs, pp *PostProcess, mat *render.Material, params *render.GpuParams) {
	src := pp.LastOutput()
	out, _ := pp.GetAndSwitch(in)
	params.SetTexture(render.SourceTextureSlot, src)

	api := in.API
	api.SetRenderTarget(out, 0)
	api.SetViewport(render.FullRect2)
	drawFullscreen(api, mat, 0, params, in.Materials.Quad)
	api.SetRenderTarget(nil, 0)
}

// releaseTexture returns t to its pool and reports nil for assignment.
func releaseTexture(t *pool.Texture) *pool.Texture {
	if t != nil {
		t.Release()
	}
	return nil
}

// numSamples returns the view's MSAA sample count.
func numSamples(v *view.View) uint32 {
	return max(v.Properties().Target.NumSamples, 1)
}

// newParams creates a parameter set holding the defaults of mat.
func newParams(mat *render.Material) *render.GpuParams {
	p := render.NewGpuParams()
	mat.ApplyParams(p)
	return p
}

// setParam writes a value into the material block of p.
func setParam(p *render.GpuParams, key string, value any) {
	p.ParamBlock(render.PerMaterialBlock).Set(key, value)
}

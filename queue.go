package compositor

import (
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// RenderQueueElements draws the sorted elements of q.
//
// The pipeline is rebound for elements flagged ApplyPass. The first element
// of each run sharing a material binds its full parameter set including the
// view's camera block; the following elements of the run bind only their
// per-object block.
func RenderQueueElements(api render.API, v *view.View, q *view.RenderQueue) {
	var last *render.Material
	for _, e := range q.Elements() {
		el := e.Element
		if e.ApplyPass {
			api.SetPipeline(el.Material.Pass(e.Technique, e.Pass))
		}

		if el.Material != last {
			el.Params.SetParamBlockBuffer(render.PerCameraBlock, v.PerViewBuffer())
			el.Material.ApplyParams(el.Params)
			api.SetGpuParams(el.Params, render.BindAll)
			last = el.Material
		} else {
			api.SetGpuParams(el.Params, render.BindParamBlocks, render.PerObjectBlock)
		}

		api.Draw(el.Mesh, el.SubMesh, el.InstanceCount)
	}
}

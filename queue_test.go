package compositor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

func smallBox(name string) *render.Mesh {
	return render.NewBoxMesh(name, render.Bounds{Min: mgl32.Vec3{-0.1, -0.1, -0.1}, Max: mgl32.Vec3{0.1, 0.1, 0.1}})
}

func TestRenderQueueElements(t *testing.T) {
	matA := render.NewSinglePassMaterial("A", render.Pass{DepthTest: true, DepthWrite: true})
	matB := render.NewSinglePassMaterial("B", render.Pass{DepthTest: true, DepthWrite: true})

	near := view.NewRenderable("near", smallBox("near"), matA, mgl32.Translate3D(0.1, 0, 0))
	far := view.NewRenderable("far", smallBox("far"), matA, mgl32.Translate3D(0.4, 0, 0))
	other := view.NewRenderable("other", smallBox("other"), matB, mgl32.Translate3D(0.2, 0, 0))
	other.Elements[0].InstanceCount = 3

	var scene view.Scene
	scene.Add(far, other, near)

	v := newTestView()
	v.UpdateVisibility(&scene)
	v.PrepareQueues(&scene)

	rec := render.NewRecorder()
	RenderQueueElements(rec, v, v.OpaqueQueue())

	var types []render.CommandType
	for _, c := range rec.Commands() {
		types = append(types, c.Type())
	}
	want := []render.CommandType{
		render.CmdSetPipeline, render.CmdSetGpuParams, render.CmdDraw,
		render.CmdSetGpuParams, render.CmdDraw,
		render.CmdSetPipeline, render.CmdSetGpuParams, render.CmdDraw,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("command types mismatch (-want +got):\n%s\n%s", diff, rec)
	}

	cmds := rec.Commands()
	first := cmds[1].(render.SetGpuParamsCommand)
	if first.Flags != render.BindAll || len(first.Blocks) != 0 {
		t.Errorf("first bind = %+v, want full bind", first)
	}
	if first.Params.ParamBlock(render.PerCameraBlock) != v.PerViewBuffer() {
		t.Error("full bind should carry the per-view buffer")
	}

	cheap := cmds[3].(render.SetGpuParamsCommand)
	if cheap.Flags != render.BindParamBlocks {
		t.Errorf("cheap bind flags = %v, want BindParamBlocks", cheap.Flags)
	}
	if diff := cmp.Diff([]string{render.PerObjectBlock}, cheap.Blocks); diff != "" {
		t.Errorf("cheap bind blocks mismatch (-want +got):\n%s", diff)
	}

	if d := cmds[2].(render.DrawCommand); d.Mesh.Name != "near" {
		t.Errorf("first draw = %s, want near", d.Mesh.Name)
	}
	if d := cmds[4].(render.DrawCommand); d.Mesh.Name != "far" {
		t.Errorf("second draw = %s, want far", d.Mesh.Name)
	}
	if d := cmds[7].(render.DrawCommand); d.Mesh.Name != "other" || d.Instances != 3 {
		t.Errorf("third draw = %s x%d, want other x3", d.Mesh.Name, d.Instances)
	}
	if p := cmds[5].(render.SetPipelineCommand); p.Pass != matB.Pass(0, 0) {
		t.Errorf("pipeline = %v, want pass of B", p.Pass)
	}
}

func TestRenderQueueElementsEmpty(t *testing.T) {
	rec := render.NewRecorder()
	RenderQueueElements(rec, newTestView(), view.NewRenderQueue(view.SortFrontToBack))
	if len(rec.Commands()) != 0 {
		t.Errorf("empty queue recorded %d commands", len(rec.Commands()))
	}
}

func TestRenderQueueElementsMultiPass(t *testing.T) {
	mat := render.NewMaterial("TwoPass", &render.Technique{
		Name:   "Default",
		Passes: []*render.Pass{{Name: "Base"}, {Name: "Outline"}},
	})
	r := view.NewRenderable("r", smallBox("r"), mat, mgl32.Ident4())

	q := view.NewRenderQueue(view.SortFrontToBack)
	q.Add(r.Elements[0], 1)
	q.Sort()

	rec := render.NewRecorder()
	RenderQueueElements(rec, newTestView(), q)

	if got := rec.Count(render.CmdSetPipeline); got != 2 {
		t.Errorf("SetPipeline count = %d, want 2", got)
	}
	if got := rec.Count(render.CmdDraw); got != 2 {
		t.Errorf("Draw count = %d, want 2", got)
	}
	// Same material on both passes: the second bind takes the cheap path.
	binds := 0
	for _, c := range rec.Commands() {
		if b, ok := c.(render.SetGpuParamsCommand); ok && b.Flags == render.BindAll {
			binds++
		}
	}
	if binds != 1 {
		t.Errorf("full binds = %d, want 1", binds)
	}
}

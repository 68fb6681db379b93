package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/view"
)

// Renderer keeps one compositor graph per view and executes it every
// frame, rebuilding it whenever its dependency lists change.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	api       render.API
	pool      *pool.Pool
	registry  *Registry
	final     NodeID
	options   view.RenderOptions
	materials *Materials

	graphs map[*view.View]*Graph
}

// NewRenderer creates a renderer drawing through api with transient
// textures from p.
func NewRenderer(api render.API, p *pool.Pool, opts ...Option) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewBuiltinRegistry()
	}
	if o.materials == nil {
		o.materials = NewMaterials()
	}
	return &Renderer{
		api:       api,
		pool:      p,
		registry:  o.registry,
		final:     o.final,
		options:   o.options,
		materials: o.materials,
		graphs:    make(map[*view.View]*Graph),
	}
}

// Registry returns the node type registry.
func (r *Renderer) Registry() *Registry { return r.registry }

// Options returns the render options handed to nodes.
func (r *Renderer) Options() view.RenderOptions { return r.options }

// SetOptions replaces the render options.
func (r *Renderer) SetOptions(o view.RenderOptions) { r.options = o }

// Graph returns the graph cached for v, or nil.
func (r *Renderer) Graph(v *view.View) *Graph { return r.graphs[v] }

// RenderView renders one frame of scene through v. The view's visibility
// and queues must be current; see view.View.UpdateVisibility and
// view.View.PrepareQueues.
//
// The cached graph is rebuilt first if it is stale. A failed build is
// returned as is; executing a graph whose earlier build failed returns
// ErrInvalidGraph. A view whose TargetSize is zero renders nothing and
// returns ErrEmptyView.
func (r *Renderer) RenderView(v *view.View, scene *view.Scene) (ExecuteStats, error) {
	if w, h := v.TargetSize(); w == 0 || h == 0 {
		return ExecuteStats{}, fmt.Errorf("%w: %q", ErrEmptyView, v.Name())
	}
	g, ok := r.graphs[v]
	if !ok {
		g = &Graph{}
		r.graphs[v] = g
	}
	if g.Stale(r.registry, v, r.final) {
		if err := g.Build(r.registry, v, r.final); err != nil {
			return ExecuteStats{}, err
		}
	}
	return g.Execute(Frame{
		View:      v,
		Scene:     scene,
		Options:   r.options,
		API:       r.api,
		Pool:      r.pool,
		Materials: r.materials,
	})
}

// Forget drops the graph of v, clearing any node still holding resources.
func (r *Renderer) Forget(v *view.View) {
	if g, ok := r.graphs[v]; ok {
		g.Clear()
		delete(r.graphs, v)
	}
}

// Close forgets every view.
func (r *Renderer) Close() {
	for v := range r.graphs {
		r.Forget(v)
	}
}

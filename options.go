package compositor

import "github.com/gogpu/compositor/view"

// rendererOptions holds configuration for Renderer creation.
type rendererOptions struct {
	registry  *Registry
	final     NodeID
	options   view.RenderOptions
	materials *Materials
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		final:   FinalResolveID,
		options: view.DefaultRenderOptions(),
	}
}

// Option configures a Renderer.
type Option func(*rendererOptions)

// WithRegistry sets the node type registry. The default is
// NewBuiltinRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *rendererOptions) {
		o.registry = r
	}
}

// WithFinalNode sets the node every view graph is built for.
// The default is FinalResolveID.
func WithFinalNode(id NodeID) Option {
	return func(o *rendererOptions) {
		o.final = id
	}
}

// WithRenderOptions sets the culling and instancing options handed to
// every node.
func WithRenderOptions(opts view.RenderOptions) Option {
	return func(o *rendererOptions) {
		o.options = opts
	}
}

// WithMaterials replaces the built-in node materials.
func WithMaterials(m *Materials) Option {
	return func(o *rendererOptions) {
		o.materials = m
	}
}

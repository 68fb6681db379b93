// Package compositor orders and executes the render passes that produce a
// view's final image.
//
// # Overview
//
// Render passes are nodes. Each node type is registered in a Registry with
// a factory and a function reporting the ids of the nodes it reads, which
// may depend on the view's settings. A Graph resolves a final node and
// its transitive dependencies into an execution order where every node
// follows its inputs and a node shared by several consumers is created
// once. Each node also records the last position that reads it.
//
// Execute walks that order. After every Render it clears the nodes no
// later node reads, so transient textures go back to the pool as early as
// possible and peak memory stays bounded.
//
// # Built-in Nodes
//
// The built-in registry holds a forward pass, skybox, post-process
// ping-pong buffers, tonemapping, motion blur, gaussian depth of field,
// FXAA, SSAO, bloom and the final resolve into the view's output target.
//
// # Usage
//
//	api := render.NewSoftware(nil)
//	p, _ := pool.New(api)
//	r := compositor.NewRenderer(api, p)
//
//	for frame := range frames {
//	    v.UpdateVisibility(scene)
//	    v.PrepareQueues(scene)
//	    if _, err := r.RenderView(v, scene); err != nil {
//	        // the view renders nothing until its settings change
//	    }
//	}
//
// # Errors
//
// Referencing an unregistered node yields an *UnknownNodeError and a
// dependency cycle a *CycleError. Either leaves the graph invalid so that
// Execute does nothing. Registering a node type twice, or reading an input
// that was not declared, panics.
package compositor

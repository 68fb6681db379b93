package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
)

// ForwardPass renders the scene geometry into the G-buffer: scene color,
// normals, emissive, optional velocity and depth-stencil.
type ForwardPass struct {
	SceneTex    *pool.Texture
	NormalTex   *pool.Texture
	EmissiveTex *pool.Texture
	VelocityTex *pool.Texture
	DepthTex    *pool.Texture

	// RenderTargetTex binds every G-buffer surface. It survives Clear and is
	// rebuilt only when the pool hands out different textures.
	RenderTargetTex *render.RenderTexture

	bound [5]render.Texture
}

// Render implements Node.
func (n *ForwardPass) Render(in *Inputs) {
	v := in.View
	w, h := v.TargetSize()
	samples := numSamples(v)
	usage := render.TextureUsageRenderTarget | render.TextureUsageTextureBinding

	color := pool.Create2D(render.PixelFormatRGBA8, w, h, usage).WithSamples(samples).WithHWGamma(true)
	n.SceneTex = in.Pool.Acquire(color)
	n.NormalTex = in.Pool.Acquire(color)
	n.EmissiveTex = in.Pool.Acquire(color)
	if v.RequiresVelocityWrites() {
		n.VelocityTex = in.Pool.Acquire(pool.Create2D(render.PixelFormatRG16S, w, h, usage).WithSamples(samples))
	}
	n.DepthTex = in.Pool.Acquire(pool.Create2D(render.PixelFormatD32S8X24, w, h,
		render.TextureUsageDepthStencil|render.TextureUsageTextureBinding).WithSamples(samples))

	n.updateRenderTarget()

	opts := in.Options
	vis := v.Visibility().Renderables
	viewProj := v.ViewProj()
	for i, r := range in.Scene.Renderables {
		if i < len(vis) {
			if !vis[i].Visible && opts.CullingFlags != 0 {
				continue
			}
			if vis[i].Instanced && opts.InstancingMode.Batched() {
				continue
			}
		}
		r.UpdatePerCallBuffer(viewProj)
	}

	api := in.API
	api.SetRenderTarget(n.RenderTargetTex, 0)
	api.ClearViewport(render.FramebufferAll, v.Properties().Target.ClearColor)
	RenderQueueElements(api, v, v.OpaqueQueue())
	RenderQueueElements(api, v, v.TransparentQueue())
	api.SetRenderTarget(nil, 0)
}

// updateRenderTarget rebuilds RenderTargetTex if any surface changed.
func (n *ForwardPass) updateRenderTarget() {
	var velocity render.Texture
	if n.VelocityTex != nil {
		velocity = n.VelocityTex.Tex
	}
	bound := [5]render.Texture{n.SceneTex.Tex, n.NormalTex.Tex, n.EmissiveTex.Tex, velocity, n.DepthTex.Tex}
	if n.RenderTargetTex != nil && bound == n.bound {
		return
	}

	colors := []render.Surface{
		{Texture: bound[0]},
		{Texture: bound[1]},
		{Texture: bound[2]},
	}
	if velocity != nil {
		colors = append(colors, render.Surface{Texture: velocity})
	}
	rt, err := render.NewRenderTexture(render.RenderTextureDesc{
		ColorSurfaces:       colors,
		DepthStencilSurface: render.Surface{Texture: n.DepthTex.Tex},
	})
	if err != nil {
		panic(fmt.Sprintf("compositor: forward pass target: %v", err))
	}
	n.RenderTargetTex = rt
	n.bound = bound
}

// Clear implements Node. Textures are released in reverse acquisition
// order so the next frame gets them back in the same slots.
func (n *ForwardPass) Clear() {
	n.DepthTex = releaseTexture(n.DepthTex)
	n.VelocityTex = releaseTexture(n.VelocityTex)
	n.EmissiveTex = releaseTexture(n.EmissiveTex)
	n.NormalTex = releaseTexture(n.NormalTex)
	n.SceneTex = releaseTexture(n.SceneTex)
}

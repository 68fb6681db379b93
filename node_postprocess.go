package compositor

import (
	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/render"
)

// PostProcess owns the two ping-pong targets post effects alternate
// between. Effects read LastOutput and write the target returned by
// GetAndSwitch.
type PostProcess struct {
	output  [2]*pool.Texture
	current int
	writes  int
	scene   *pool.Texture
}

// Render implements Node. It takes a reference to the forward pass scene
// texture, which may outlive the forward pass; targets are acquired on
// first use.
func (n *PostProcess) Render(in *Inputs) {
	fwd := Input[*ForwardPass](in, ForwardPassID)
	fwd.SceneTex.Retain()
	n.scene = fwd.SceneTex
}

// GetAndSwitch returns the next target to write and the texture of the
// other target, nil before it was first acquired, then flips the current
// index.
func (n *PostProcess) GetAndSwitch(in *Inputs) (output *render.RenderTexture, lastFrame render.Texture) {
	if n.output[n.current] == nil {
		w, h := in.View.TargetSize()
		n.output[n.current] = in.Pool.Acquire(pool.Create2D(render.PixelFormatRGBA8, w, h,
			render.TextureUsageRenderTarget|render.TextureUsageTextureBinding))
	}
	output = n.output[n.current].RenderTex
	if other := n.output[1-n.current]; other != nil {
		lastFrame = other.Tex
	}
	n.current = 1 - n.current
	n.writes++
	return output, lastFrame
}

// LastOutput returns the texture written last, or the forward pass scene
// texture when no effect wrote one yet.
func (n *PostProcess) LastOutput() render.Texture {
	if n.writes == 0 {
		if n.scene == nil {
			return nil
		}
		return n.scene.Tex
	}
	return n.output[1-n.current].Tex
}

// Writes returns how many times GetAndSwitch was called since Render.
func (n *PostProcess) Writes() int { return n.writes }

// Clear implements Node.
func (n *PostProcess) Clear() {
	n.output[1] = releaseTexture(n.output[1])
	n.output[0] = releaseTexture(n.output[0])
	n.current = 0
	n.writes = 0
	n.scene = releaseTexture(n.scene)
}

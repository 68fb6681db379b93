// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// FramebufferType selects frame-buffer planes for clears and read-only binds.
type FramebufferType uint32

const (
	// FramebufferColor selects the color attachments.
	FramebufferColor FramebufferType = 1 << iota

	// FramebufferDepth selects the depth plane.
	FramebufferDepth

	// FramebufferStencil selects the stencil plane.
	FramebufferStencil
)

// FramebufferAll selects every plane.
const FramebufferAll = FramebufferColor | FramebufferDepth | FramebufferStencil

// BindFlags controls which parts of a GpuParams set are bound.
type BindFlags uint32

const (
	// BindParamBlocks binds parameter block buffers.
	BindParamBlocks BindFlags = 1 << iota

	// BindTextures binds sampled textures.
	BindTextures

	// BindSamplers binds sampler states.
	BindSamplers
)

// BindAll binds everything in a GpuParams set.
const BindAll = BindParamBlocks | BindTextures | BindSamplers

// Rect2 is a rectangle in normalized [0, 1] target coordinates.
type Rect2 struct {
	X, Y, Width, Height float32
}

// FullRect2 covers the whole target.
var FullRect2 = Rect2{X: 0, Y: 0, Width: 1, Height: 1}

// IsEmpty reports whether the rectangle has no area.
func (r Rect2) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Rect2I is a rectangle in pixels.
type Rect2I struct {
	X, Y          int32
	Width, Height uint32
}

// API is the stateful command sink the compositor drives.
//
// Exactly one API context is shared across a whole graph execution. It holds
// the currently bound target, viewport and pipeline; calls are not reentrant
// and must come from a single goroutine.
type API interface {
	// SetRenderTarget binds a target for subsequent draws. A nil target
	// unbinds. Planes in readOnly are bound for reading only.
	SetRenderTarget(target RenderTarget, readOnly FramebufferType)

	// SetViewport sets the normalized viewport of the bound target.
	SetViewport(area Rect2)

	// ClearViewport clears the selected planes of the bound target inside the
	// current viewport.
	ClearViewport(buffers FramebufferType, color gputypes.Color)

	// SetPipeline binds the pipeline state of a material pass.
	SetPipeline(pass *Pass)

	// SetGpuParams binds parameters. When blocks is non-empty only the
	// listed parameter blocks are bound.
	SetGpuParams(params *GpuParams, flags BindFlags, blocks ...string)

	// Draw issues a draw of one sub-mesh. An instance count of zero draws
	// without instancing.
	Draw(mesh *Mesh, sub SubMesh, instances uint32)
}

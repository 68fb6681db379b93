// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the rendering primitives the compositor drives.
//
// The compositor never submits GPU work itself. It talks to an API, a
// stateful command sink that binds targets, sets pipeline state and issues
// draws. Concrete GPU backends implement API on top of the device the host
// application hands over through DeviceHandle.
//
// # Core Types
//
//   - API: the command sink shared by a whole graph execution
//   - Texture, TextureDescriptor: GPU textures and how to create them
//   - RenderTarget, RenderTexture: what SetRenderTarget can bind
//   - Material, Technique, Pass: pipeline state selected per draw
//   - GpuParams, ParamBlockBuffer: parameters bound with a pass
//   - Mesh, SubMesh: geometry handed to Draw
//
// # API Implementations
//
//   - Software: CPU implementation backed by *image.RGBA, also usable as the
//     texture allocator of the resource pool
//   - Recorder: records every call as a Command, for tests and debugging
//
// # Usage
//
//	api := render.NewSoftware(nil)
//	target := render.NewImageTarget(800, 600)
//
//	api.SetRenderTarget(target, 0)
//	api.ClearViewport(render.FramebufferAll, gputypes.Color{R: 0, G: 0, B: 0, A: 1})
//	api.SetRenderTarget(nil, 0)
//
// # Thread Safety
//
// API implementations are not safe for concurrent use. The compositor calls
// them from a single render goroutine.
package render

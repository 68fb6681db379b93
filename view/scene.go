// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/compositor/render"
)

// Per-object parameter keys written by UpdatePerCallBuffer.
const (
	WorldKey         = "World"
	WorldViewProjKey = render.WorldViewProjKey
)

// RenderElement is one drawable piece of a renderable: a sub-mesh with the
// material and parameters it is drawn with.
type RenderElement struct {
	Mesh      *render.Mesh
	SubMesh   render.SubMesh
	Material  *render.Material
	Params    *render.GpuParams
	Technique int

	// InstanceCount is zero for non-instanced draws.
	InstanceCount uint32
}

// Renderable is a scene object the forward pass draws.
type Renderable struct {
	Name        string
	World       mgl32.Mat4
	Elements    []*RenderElement
	Transparent bool

	// Instanced marks renderables drawn by an instancing batch.
	Instanced bool

	perCall *render.ParamBlockBuffer
}

// NewRenderable creates a renderable drawing every sub-mesh of mesh with
// material. Each element's parameters share the renderable's per-object block.
// A nil mesh or material is a programmer error and panics.
func NewRenderable(name string, mesh *render.Mesh, material *render.Material, world mgl32.Mat4) *Renderable {
	if mesh == nil || material == nil {
		panic(fmt.Sprintf("view: renderable %q needs a mesh and a material", name))
	}
	r := &Renderable{
		Name:    name,
		World:   world,
		perCall: render.NewParamBlockBuffer(render.PerObjectBlock),
	}
	for _, sub := range mesh.SubMeshes {
		params := render.NewGpuParams()
		params.SetParamBlockBuffer(render.PerObjectBlock, r.perCall)
		r.Elements = append(r.Elements, &RenderElement{
			Mesh:     mesh,
			SubMesh:  sub,
			Material: material,
			Params:   params,
		})
	}
	return r
}

// PerCallBuffer returns the per-object parameter block.
func (r *Renderable) PerCallBuffer() *render.ParamBlockBuffer { return r.perCall }

// UpdatePerCallBuffer writes the object transforms for viewProj.
func (r *Renderable) UpdatePerCallBuffer(viewProj mgl32.Mat4) {
	r.perCall.Set(WorldKey, r.World)
	r.perCall.Set(WorldViewProjKey, viewProj.Mul4(r.World))
}

// WorldBounds returns the union of the element mesh bounds transformed by
// World, as an axis-aligned box.
func (r *Renderable) WorldBounds() render.Bounds {
	first := true
	var out render.Bounds
	for _, e := range r.Elements {
		for _, c := range e.Mesh.Bounds.Corners() {
			p := mgl32.TransformCoordinate(c, r.World)
			if first {
				out = render.Bounds{Min: p, Max: p}
				first = false
				continue
			}
			out.Min = mgl32.Vec3{min(out.Min.X(), p.X()), min(out.Min.Y(), p.Y()), min(out.Min.Z(), p.Z())}
			out.Max = mgl32.Vec3{max(out.Max.X(), p.X()), max(out.Max.Y(), p.Y()), max(out.Max.Z(), p.Z())}
		}
	}
	return out
}

// Skybox is the scene's environment.
type Skybox struct {
	// Radiance is sampled by the skybox pass. A nil texture draws the view's
	// clear color instead.
	Radiance   render.Texture
	Brightness float32
}

// Scene is the set of renderables drawn by a view.
type Scene struct {
	Renderables []*Renderable
	Skybox      *Skybox
}

// Add appends renderables to the scene.
func (s *Scene) Add(r ...*Renderable) {
	s.Renderables = append(s.Renderables, r...)
}

// RenderableVisibility is the per-view culling result of one renderable.
type RenderableVisibility struct {
	Visible   bool
	Instanced bool
}

// VisibilityInfo holds culling results indexed like Scene.Renderables.
type VisibilityInfo struct {
	Renderables []RenderableVisibility
}

// VisibleCount returns the number of visible renderables.
func (v VisibilityInfo) VisibleCount() int {
	n := 0
	for _, r := range v.Renderables {
		if r.Visible {
			n++
		}
	}
	return n
}

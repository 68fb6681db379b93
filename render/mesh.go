// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SubMesh is a contiguous index range drawn with one material.
type SubMesh struct {
	IndexOffset uint32
	IndexCount  uint32
}

// Bounds is an axis-aligned box in object space.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Mesh is vertex/index data uploaded by the asset pipeline. The compositor
// only needs its sub-mesh table and bounds.
type Mesh struct {
	Name      string
	SubMeshes []SubMesh
	Bounds    Bounds
}

// SubMesh returns sub-mesh i. Out-of-range indices panic.
func (m *Mesh) SubMesh(i int) SubMesh {
	if i < 0 || i >= len(m.SubMeshes) {
		panic(fmt.Sprintf("render: mesh %q has no sub-mesh %d", m.Name, i))
	}
	return m.SubMeshes[i]
}

// NewBoxMesh returns a unit-cube style mesh with the given bounds.
func NewBoxMesh(name string, b Bounds) *Mesh {
	return &Mesh{
		Name:      name,
		SubMeshes: []SubMesh{{IndexOffset: 0, IndexCount: 36}},
		Bounds:    b,
	}
}

// FullscreenQuad returns a two-triangle mesh covering clip space.
func FullscreenQuad() *Mesh {
	return &Mesh{
		Name:      "FullscreenQuad",
		SubMeshes: []SubMesh{{IndexOffset: 0, IndexCount: 6}},
		Bounds:    Bounds{Min: mgl32.Vec3{-1, -1, 0}, Max: mgl32.Vec3{1, 1, 0}},
	}
}

// SkyboxMesh returns the cube drawn behind all geometry by the skybox pass.
func SkyboxMesh() *Mesh {
	return NewBoxMesh("Skybox", Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}})
}

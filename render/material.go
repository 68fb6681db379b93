// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// Parameter block names shared by materials and the compositor.
const (
	PerCameraBlock   = "PerCameraBuffer"
	PerObjectBlock   = "PerCallBuffer"
	PerMaterialBlock = "PerMaterialBuffer"
)

// Texture slot names used by full-screen passes.
const (
	SourceTextureSlot    = "SourceTex"
	DepthTextureSlot     = "DepthTex"
	NormalTextureSlot    = "NormalTex"
	AuxTextureSlot       = "AuxTex"
	OcclusionTextureSlot = "OcclusionTex"
)

// Pass is the pipeline state of one rendering pass of a technique.
type Pass struct {
	// Name identifies the pass in diagnostics.
	Name string

	// DepthTest enables depth comparison against the bound depth buffer.
	DepthTest bool

	// DepthWrite enables writes to the depth buffer.
	DepthWrite bool

	// Fullscreen marks passes that cover the whole viewport and sample
	// SourceTextureSlot, such as blits and post effects.
	Fullscreen bool

	// FlipY flips the sampled source vertically.
	FlipY bool
}

// Technique groups the passes a material renders with.
type Technique struct {
	Name   string
	Passes []*Pass
}

// Material is a set of techniques plus default parameter values.
type Material struct {
	name       string
	techniques []*Technique
	defaults   map[string]any
}

// NewMaterial creates a material. A material needs at least one technique.
func NewMaterial(name string, techniques ...*Technique) *Material {
	return &Material{
		name:       name,
		techniques: techniques,
		defaults:   make(map[string]any),
	}
}

// NewSinglePassMaterial creates a material with one technique holding pass.
func NewSinglePassMaterial(name string, pass Pass) *Material {
	if pass.Name == "" {
		pass.Name = name
	}
	return NewMaterial(name, &Technique{Name: name, Passes: []*Pass{&pass}})
}

// Name returns the material name.
func (m *Material) Name() string { return m.name }

// TechniqueCount returns the number of techniques.
func (m *Material) TechniqueCount() int { return len(m.techniques) }

// PassCount returns the number of passes of technique t, or zero.
func (m *Material) PassCount(t int) int {
	if t < 0 || t >= len(m.techniques) {
		return 0
	}
	return len(m.techniques[t].Passes)
}

// Pass returns pass p of technique t. Indexing a pass that does not exist
// is a programmer error and panics.
func (m *Material) Pass(t, p int) *Pass {
	if t < 0 || t >= len(m.techniques) {
		panic(fmt.Sprintf("render: material %q has no technique %d", m.name, t))
	}
	tech := m.techniques[t]
	if p < 0 || p >= len(tech.Passes) {
		panic(fmt.Sprintf("render: material %q technique %d has no pass %d", m.name, t, p))
	}
	return tech.Passes[p]
}

// SetDefault sets a default value written into PerMaterialBlock by ApplyParams.
func (m *Material) SetDefault(key string, value any) {
	m.defaults[key] = value
}

// Default returns a default parameter value.
func (m *Material) Default(key string) (any, bool) {
	v, ok := m.defaults[key]
	return v, ok
}

// ApplyParams copies the material's default values into the
// PerMaterialBlock of params, creating the block if needed.
func (m *Material) ApplyParams(params *GpuParams) {
	block := params.ParamBlock(PerMaterialBlock)
	if block == nil {
		block = NewParamBlockBuffer(PerMaterialBlock)
		params.SetParamBlockBuffer(PerMaterialBlock, block)
	}
	for k, v := range m.defaults {
		block.Set(k, v)
	}
}

// ParamBlockBuffer is a named block of shader constants.
type ParamBlockBuffer struct {
	name    string
	values  map[string]any
	version atomic.Uint64
}

// NewParamBlockBuffer creates an empty parameter block.
func NewParamBlockBuffer(name string) *ParamBlockBuffer {
	return &ParamBlockBuffer{name: name, values: make(map[string]any)}
}

// Name returns the block name.
func (b *ParamBlockBuffer) Name() string { return b.name }

// Set writes a value and bumps the block version.
func (b *ParamBlockBuffer) Set(key string, value any) {
	b.values[key] = value
	b.version.Add(1)
}

// Get reads a value.
func (b *ParamBlockBuffer) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Keys returns the sorted keys held by the block.
func (b *ParamBlockBuffer) Keys() []string {
	return slices.Sorted(maps.Keys(b.values))
}

// Version increases on every Set; backends use it to skip uploads.
func (b *ParamBlockBuffer) Version() uint64 { return b.version.Load() }

// GpuParams is the full parameter set bound for one pass: parameter blocks
// and textures by slot name.
type GpuParams struct {
	blocks   map[string]*ParamBlockBuffer
	textures map[string]Texture
}

// NewGpuParams creates an empty parameter set.
func NewGpuParams() *GpuParams {
	return &GpuParams{
		blocks:   make(map[string]*ParamBlockBuffer),
		textures: make(map[string]Texture),
	}
}

// SetParamBlockBuffer binds a block by name.
func (p *GpuParams) SetParamBlockBuffer(name string, block *ParamBlockBuffer) {
	p.blocks[name] = block
}

// ParamBlock returns a block by name, or nil.
func (p *GpuParams) ParamBlock(name string) *ParamBlockBuffer {
	return p.blocks[name]
}

// BlockNames returns the sorted names of the bound blocks.
func (p *GpuParams) BlockNames() []string {
	return slices.Sorted(maps.Keys(p.blocks))
}

// SetTexture binds a texture to a slot. A nil texture clears the slot.
func (p *GpuParams) SetTexture(slot string, tex Texture) {
	if tex == nil {
		delete(p.textures, slot)
		return
	}
	p.textures[slot] = tex
}

// Texture returns the texture bound to a slot, or nil.
func (p *GpuParams) Texture(slot string) Texture {
	return p.textures[slot]
}

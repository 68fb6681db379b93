// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import "fmt"

// ToneMappingSettings controls the tonemapping pass.
type ToneMappingSettings struct {
	Enabled  bool    `toml:"enabled"`
	Exposure float32 `toml:"exposure"`
	Gamma    float32 `toml:"gamma"`
}

// BloomSettings controls the bloom pass.
type BloomSettings struct {
	Enabled   bool    `toml:"enabled"`
	Intensity float32 `toml:"intensity"`
	Threshold float32 `toml:"threshold"`
}

// MotionBlurSettings controls the motion blur pass.
type MotionBlurSettings struct {
	Enabled bool `toml:"enabled"`
	Samples int  `toml:"samples"`
}

// DepthOfFieldSettings controls the gaussian depth of field pass.
type DepthOfFieldSettings struct {
	Enabled       bool    `toml:"enabled"`
	FocalDistance float32 `toml:"focal_distance"`
	FocalRange    float32 `toml:"focal_range"`
	BlurRadius    float32 `toml:"blur_radius"`
}

// AmbientOcclusionSettings controls the SSAO pass.
type AmbientOcclusionSettings struct {
	Enabled   bool    `toml:"enabled"`
	Radius    float32 `toml:"radius"`
	Intensity float32 `toml:"intensity"`
}

// RenderSettings are the per-view feature toggles. Several of them change
// which nodes the compositor graph contains.
type RenderSettings struct {
	EnableSkybox     bool                     `toml:"enable_skybox"`
	EnableFXAA       bool                     `toml:"enable_fxaa"`
	Tonemapping      ToneMappingSettings      `toml:"tonemapping"`
	Bloom            BloomSettings            `toml:"bloom"`
	MotionBlur       MotionBlurSettings       `toml:"motion_blur"`
	DepthOfField     DepthOfFieldSettings     `toml:"depth_of_field"`
	AmbientOcclusion AmbientOcclusionSettings `toml:"ambient_occlusion"`
}

// DefaultRenderSettings returns the settings a new view starts with:
// skybox, FXAA and tonemapping on, every other effect off.
func DefaultRenderSettings() *RenderSettings {
	return &RenderSettings{
		EnableSkybox: true,
		EnableFXAA:   true,
		Tonemapping:  ToneMappingSettings{Enabled: true, Exposure: 1, Gamma: 2.2},
		Bloom:        BloomSettings{Intensity: 1, Threshold: 1},
		MotionBlur:   MotionBlurSettings{Samples: 8},
		DepthOfField: DepthOfFieldSettings{FocalDistance: 10, FocalRange: 5, BlurRadius: 4},
		AmbientOcclusion: AmbientOcclusionSettings{
			Radius:    0.5,
			Intensity: 1,
		},
	}
}

// CullingFlags selects the culling methods applied before drawing.
type CullingFlags uint8

const (
	// CullFrustum skips renderables outside the view frustum.
	CullFrustum CullingFlags = 1 << iota

	// CullOcclusion skips renderables hidden behind others.
	CullOcclusion
)

// String returns a readable list of the set flags.
func (f CullingFlags) String() string {
	switch f {
	case 0:
		return "None"
	case CullFrustum:
		return "Frustum"
	case CullOcclusion:
		return "Occlusion"
	case CullFrustum | CullOcclusion:
		return "Frustum|Occlusion"
	default:
		return fmt.Sprintf("CullingFlags(%d)", uint8(f))
	}
}

// InstancingMode selects how instanced renderables are batched.
type InstancingMode uint8

const (
	// InstancingNone draws every renderable individually.
	InstancingNone InstancingMode = iota

	// InstancingAutomatic batches renderables sharing mesh and material.
	InstancingAutomatic

	// InstancingManual batches renderables the application grouped itself.
	InstancingManual
)

// String returns the mode name.
func (m InstancingMode) String() string {
	switch m {
	case InstancingNone:
		return "None"
	case InstancingAutomatic:
		return "Automatic"
	case InstancingManual:
		return "Manual"
	default:
		return fmt.Sprintf("InstancingMode(%d)", uint8(m))
	}
}

// Batched reports whether renderables flagged as instanced are drawn by a
// batch instead of individually.
func (m InstancingMode) Batched() bool {
	return m == InstancingAutomatic || m == InstancingManual
}

// RenderOptions are renderer-wide options handed to every node.
type RenderOptions struct {
	CullingFlags   CullingFlags
	InstancingMode InstancingMode
}

// DefaultRenderOptions enables frustum culling without instancing.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{CullingFlags: CullFrustum, InstancingMode: InstancingNone}
}

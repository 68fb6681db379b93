// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMaterialPass(t *testing.T) {
	mat := NewSinglePassMaterial("blit", Pass{Fullscreen: true})

	if mat.Name() != "blit" {
		t.Errorf("Name() = %q, want blit", mat.Name())
	}
	if mat.TechniqueCount() != 1 {
		t.Errorf("TechniqueCount() = %d, want 1", mat.TechniqueCount())
	}
	pass := mat.Pass(0, 0)
	if pass.Name != "blit" || !pass.Fullscreen {
		t.Errorf("Pass(0, 0) = %+v", pass)
	}
}

func TestMaterialPassOutOfRange(t *testing.T) {
	mat := NewSinglePassMaterial("blit", Pass{})

	for _, idx := range [][2]int{{1, 0}, {0, 1}, {-1, 0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Pass(%d, %d) should panic", idx[0], idx[1])
				}
			}()
			mat.Pass(idx[0], idx[1])
		}()
	}
}

func TestMaterialApplyParams(t *testing.T) {
	mat := NewSinglePassMaterial("tint", Pass{})
	mat.SetDefault("Exposure", float32(1.5))
	mat.SetDefault("Gamma", float32(2.2))

	params := NewGpuParams()
	mat.ApplyParams(params)

	block := params.ParamBlock(PerMaterialBlock)
	if block == nil {
		t.Fatal("ApplyParams should create the material block")
	}
	if diff := cmp.Diff([]string{"Exposure", "Gamma"}, block.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := block.Get("Gamma"); v != float32(2.2) {
		t.Errorf("Gamma = %v, want 2.2", v)
	}
	if block.Version() != 2 {
		t.Errorf("Version() = %d, want 2", block.Version())
	}
}

func TestGpuParams(t *testing.T) {
	params := NewGpuParams()
	cam := NewParamBlockBuffer(PerCameraBlock)
	params.SetParamBlockBuffer(PerCameraBlock, cam)
	params.SetParamBlockBuffer(PerObjectBlock, NewParamBlockBuffer(PerObjectBlock))

	if params.ParamBlock(PerCameraBlock) != cam {
		t.Error("ParamBlock should return the bound block")
	}
	if params.ParamBlock("missing") != nil {
		t.Error("missing block should be nil")
	}
	if diff := cmp.Diff([]string{PerObjectBlock, PerCameraBlock}, params.BlockNames()); diff != "" {
		t.Errorf("BlockNames() mismatch (-want +got):\n%s", diff)
	}

	tex, _ := NewSoftware(nil).CreateTexture(DefaultTextureDescriptor(2, 2, PixelFormatRGBA8))
	params.SetTexture(SourceTextureSlot, tex)
	if params.Texture(SourceTextureSlot) != tex {
		t.Error("Texture should return the bound texture")
	}
	params.SetTexture(SourceTextureSlot, nil)
	if params.Texture(SourceTextureSlot) != nil {
		t.Error("nil SetTexture should clear the slot")
	}
}

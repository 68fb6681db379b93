// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func newTestTexture(t *testing.T, api *Software, w, h uint32, format PixelFormat) Texture {
	t.Helper()
	tex, err := api.CreateTexture(DefaultTextureDescriptor(w, h, format))
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	return tex
}

func TestNewRenderTexture(t *testing.T) {
	api := NewSoftware(nil)
	colorTex := newTestTexture(t, api, 64, 32, PixelFormatRGBA8)
	normalTex := newTestTexture(t, api, 64, 32, PixelFormatRGBA8)
	depthTex := newTestTexture(t, api, 64, 32, PixelFormatD32S8X24)

	rt, err := NewRenderTexture(RenderTextureDesc{
		ColorSurfaces:       []Surface{{Texture: colorTex}, {Texture: normalTex}},
		DepthStencilSurface: Surface{Texture: depthTex},
	})
	if err != nil {
		t.Fatalf("NewRenderTexture: %v", err)
	}

	if rt.Width() != 64 || rt.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", rt.Width(), rt.Height())
	}
	if rt.SampleCount() != 1 {
		t.Errorf("SampleCount() = %d, want 1", rt.SampleCount())
	}
	if rt.ColorCount() != 2 {
		t.Errorf("ColorCount() = %d, want 2", rt.ColorCount())
	}
	if rt.ColorTexture(1) != normalTex {
		t.Error("ColorTexture(1) should be the normal texture")
	}
	if rt.ColorTexture(5) != nil {
		t.Error("ColorTexture(5) should be nil")
	}
	if rt.DepthStencilTexture() != depthTex {
		t.Error("DepthStencilTexture() should be the depth texture")
	}
}

func TestNewRenderTextureErrors(t *testing.T) {
	api := NewSoftware(nil)
	small := newTestTexture(t, api, 16, 16, PixelFormatRGBA8)
	large := newTestTexture(t, api, 32, 32, PixelFormatRGBA8)

	tooMany := make([]Surface, MaxColorSurfaces+1)
	for i := range tooMany {
		tooMany[i] = Surface{Texture: small}
	}

	tests := []struct {
		name string
		desc RenderTextureDesc
		want error
	}{
		{"empty", RenderTextureDesc{}, ErrNoSurfaces},
		{"nil textures", RenderTextureDesc{ColorSurfaces: []Surface{{}}}, ErrNoSurfaces},
		{"size mismatch", RenderTextureDesc{ColorSurfaces: []Surface{{Texture: small}, {Texture: large}}}, ErrSurfaceSizeMismatch},
		{"depth mismatch", RenderTextureDesc{
			ColorSurfaces:       []Surface{{Texture: small}},
			DepthStencilSurface: Surface{Texture: large},
		}, ErrSurfaceSizeMismatch},
		{"too many", RenderTextureDesc{ColorSurfaces: tooMany}, ErrTooManySurfaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderTexture(tt.desc)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewImageTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 100, 100},
		{"medium", 800, 600},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewImageTarget(tt.width, tt.height)

			if target.Width() != uint32(tt.width) {
				t.Errorf("Width() = %d, want %d", target.Width(), tt.width)
			}
			if target.Height() != uint32(tt.height) {
				t.Errorf("Height() = %d, want %d", target.Height(), tt.height)
			}
			if target.SampleCount() != 1 {
				t.Errorf("SampleCount() = %d, want 1", target.SampleCount())
			}
			if target.Image() == nil {
				t.Error("Image() should not be nil")
			}
		})
	}
}

func TestImageTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{R: 255, A: 255})
	target := NewImageTargetFromImage(img)

	if target.Image() != img {
		t.Error("Image() should return the wrapped image")
	}
	r, _, _, _ := target.GetPixel(1, 2).RGBA()
	if r != 0xffff {
		t.Errorf("GetPixel red = %#x, want 0xffff", r)
	}

	target.Resize(8, 2)
	if target.Width() != 8 || target.Height() != 2 {
		t.Errorf("after Resize size = %dx%d, want 8x2", target.Width(), target.Height())
	}
}

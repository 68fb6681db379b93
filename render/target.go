// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxColorSurfaces is the number of color attachments a RenderTexture can hold.
const MaxColorSurfaces = 8

// Errors returned when assembling render textures.
var (
	// ErrNoSurfaces is returned when a RenderTexture has neither color nor depth surfaces.
	ErrNoSurfaces = errors.New("render: render texture has no surfaces")

	// ErrSurfaceSizeMismatch is returned when attachments differ in size or sample count.
	ErrSurfaceSizeMismatch = errors.New("render: render texture surfaces differ in size")

	// ErrTooManySurfaces is returned when more than MaxColorSurfaces are attached.
	ErrTooManySurfaces = errors.New("render: too many color surfaces")
)

// RenderTarget is anything SetRenderTarget can bind: an aggregate
// RenderTexture or a view output such as a window surface.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() uint32

	// Height returns the target height in pixels.
	Height() uint32

	// SampleCount returns the number of samples per pixel.
	SampleCount() uint32
}

// Surface selects one face and mip of a texture for attachment.
type Surface struct {
	Texture  Texture
	Face     uint32
	NumFaces uint32
	MipLevel uint32
}

// RenderTextureDesc lists the attachments of a RenderTexture.
type RenderTextureDesc struct {
	ColorSurfaces       []Surface
	DepthStencilSurface Surface
}

// RenderTexture is an aggregate render target built from pooled textures.
// Its identity is what nodes compare to decide whether a target must be
// recreated after the pool handed out different textures.
type RenderTexture struct {
	color   []Surface
	depth   Surface
	width   uint32
	height  uint32
	samples uint32
}

// NewRenderTexture validates the attachments and builds a RenderTexture.
func NewRenderTexture(desc RenderTextureDesc) (*RenderTexture, error) {
	if len(desc.ColorSurfaces) > MaxColorSurfaces {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySurfaces, len(desc.ColorSurfaces), MaxColorSurfaces)
	}

	rt := &RenderTexture{
		color: make([]Surface, 0, len(desc.ColorSurfaces)),
		depth: desc.DepthStencilSurface,
	}

	all := make([]Texture, 0, len(desc.ColorSurfaces)+1)
	for _, s := range desc.ColorSurfaces {
		if s.Texture == nil {
			continue
		}
		if s.NumFaces == 0 {
			s.NumFaces = 1
		}
		rt.color = append(rt.color, s)
		all = append(all, s.Texture)
	}
	if desc.DepthStencilSurface.Texture != nil {
		all = append(all, desc.DepthStencilSurface.Texture)
	}
	if len(all) == 0 {
		return nil, ErrNoSurfaces
	}

	first := all[0].Descriptor()
	rt.width, rt.height, rt.samples = first.Width, first.Height, max(first.SampleCount, 1)
	for _, tex := range all[1:] {
		d := tex.Descriptor()
		if d.Width != rt.width || d.Height != rt.height || max(d.SampleCount, 1) != rt.samples {
			return nil, fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrSurfaceSizeMismatch,
				d.Width, d.Height, d.SampleCount, rt.width, rt.height, rt.samples)
		}
	}
	return rt, nil
}

// Width returns the target width in pixels.
func (rt *RenderTexture) Width() uint32 { return rt.width }

// Height returns the target height in pixels.
func (rt *RenderTexture) Height() uint32 { return rt.height }

// SampleCount returns the number of samples per pixel.
func (rt *RenderTexture) SampleCount() uint32 { return rt.samples }

// ColorCount returns the number of color surfaces.
func (rt *RenderTexture) ColorCount() int { return len(rt.color) }

// ColorTexture returns the texture bound at color slot idx, or nil.
func (rt *RenderTexture) ColorTexture(idx int) Texture {
	if idx < 0 || idx >= len(rt.color) {
		return nil
	}
	return rt.color[idx].Texture
}

// DepthStencilTexture returns the depth-stencil texture, or nil.
func (rt *RenderTexture) DepthStencilTexture() Texture {
	return rt.depth.Texture
}

// Ensure RenderTexture implements RenderTarget.
var _ RenderTarget = (*RenderTexture)(nil)

// ImageTarget is a CPU-backed view output target using *image.RGBA.
//
// It plays the role of a window surface for the software API: the final
// resolve node blits the composited frame into it.
//
// Example:
//
//	target := render.NewImageTarget(800, 600)
//	// ... execute a compositor graph whose view renders into target ...
//	img := target.Image()
type ImageTarget struct {
	img *image.RGBA
}

// NewImageTarget creates a new CPU-backed output target.
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageTargetFromImage wraps an existing *image.RGBA as a target.
// The image is used directly without copying.
func NewImageTargetFromImage(img *image.RGBA) *ImageTarget {
	return &ImageTarget{img: img}
}

// Width returns the target width in pixels.
func (t *ImageTarget) Width() uint32 {
	return uint32(t.img.Bounds().Dx()) //nolint:gosec // G115: image bounds are non-negative
}

// Height returns the target height in pixels.
func (t *ImageTarget) Height() uint32 {
	return uint32(t.img.Bounds().Dy()) //nolint:gosec // G115: image bounds are non-negative
}

// SampleCount returns 1; window surfaces are never multisampled.
func (t *ImageTarget) SampleCount() uint32 { return 1 }

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *ImageTarget) Image() *image.RGBA {
	return t.img
}

// GetPixel returns the color at the given coordinates.
func (t *ImageTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}

// Resize creates a new backing image with the given dimensions.
// The contents are not preserved.
func (t *ImageTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure ImageTarget implements RenderTarget.
var _ RenderTarget = (*ImageTarget)(nil)

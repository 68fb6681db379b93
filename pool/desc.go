// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"fmt"

	"github.com/gogpu/compositor/render"
)

// Descriptor identifies a class of interchangeable pooled textures. Two
// textures with equal descriptors can be handed out for each other.
type Descriptor struct {
	Format      render.PixelFormat
	Width       uint32
	Height      uint32
	Usage       render.TextureUsage
	NumSamples  uint32
	MipLevels   uint32
	ArrayLayers uint32
	HWGamma     bool
}

// Create2D describes a single-sample 2D texture.
func Create2D(format render.PixelFormat, width, height uint32, usage render.TextureUsage) Descriptor {
	return Descriptor{
		Format:      format,
		Width:       width,
		Height:      height,
		Usage:       usage,
		NumSamples:  1,
		MipLevels:   1,
		ArrayLayers: 1,
	}
}

// WithSamples returns a copy of d with n samples per pixel.
func (d Descriptor) WithSamples(n uint32) Descriptor {
	d.NumSamples = n
	return d
}

// WithHWGamma returns a copy of d with hardware sRGB conversion set.
func (d Descriptor) WithHWGamma(on bool) Descriptor {
	d.HWGamma = on
	return d
}

// normalized fills zero counts with 1 so equal requests share a key.
func (d Descriptor) normalized() Descriptor {
	d.NumSamples = max(d.NumSamples, 1)
	d.MipLevels = max(d.MipLevels, 1)
	d.ArrayLayers = max(d.ArrayLayers, 1)
	return d
}

// SizeBytes estimates the memory held by a texture of this descriptor.
func (d Descriptor) SizeBytes() uint64 {
	d = d.normalized()
	base := uint64(d.Width) * uint64(d.Height) * uint64(d.Format.BytesPerPixel())
	size := uint64(0)
	for mip := uint32(0); mip < d.MipLevels; mip++ {
		size += base >> (2 * mip)
	}
	return size * uint64(d.NumSamples) * uint64(d.ArrayLayers)
}

// TextureDescriptor converts to the descriptor passed to the allocator.
func (d Descriptor) TextureDescriptor(label string) render.TextureDescriptor {
	d = d.normalized()
	return render.TextureDescriptor{
		Label:         label,
		Width:         d.Width,
		Height:        d.Height,
		ArrayLayers:   d.ArrayLayers,
		MipLevelCount: d.MipLevels,
		SampleCount:   d.NumSamples,
		Format:        d.Format,
		Usage:         d.Usage,
		HWGamma:       d.HWGamma,
	}
}

// String returns a compact description for logs.
func (d Descriptor) String() string {
	s := fmt.Sprintf("%s %dx%d", d.Format, d.Width, d.Height)
	if d.NumSamples > 1 {
		s += fmt.Sprintf(" x%d", d.NumSamples)
	}
	if d.HWGamma {
		s += " sRGB"
	}
	return s
}

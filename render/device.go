// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The compositor never creates a device. Backends implementing API receive
// the host device through this handle and report the surface format that
// view output targets should use.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used by the software API when no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// PixelFormat is the storage format of a texture.
type PixelFormat uint8

const (
	// PixelFormatRGBA8 is 8 bits per channel RGBA.
	PixelFormatRGBA8 PixelFormat = iota

	// PixelFormatBGRA8 is 8 bits per channel BGRA, common for surfaces.
	PixelFormatBGRA8

	// PixelFormatR8 is a single 8-bit channel, used for occlusion masks.
	PixelFormatR8

	// PixelFormatRG16S is two signed 16-bit channels, used for velocity.
	PixelFormatRG16S

	// PixelFormatD24S8 is 24-bit depth with 8-bit stencil.
	PixelFormatD24S8

	// PixelFormatD32S8X24 is 32-bit float depth with 8-bit stencil.
	PixelFormatD32S8X24
)

// String returns a human-readable name for the format.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA8:
		return "RGBA8"
	case PixelFormatBGRA8:
		return "BGRA8"
	case PixelFormatR8:
		return "R8"
	case PixelFormatRG16S:
		return "RG16S"
	case PixelFormatD24S8:
		return "D24S8"
	case PixelFormatD32S8X24:
		return "D32S8X24"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatR8:
		return 1
	case PixelFormatRGBA8, PixelFormatBGRA8, PixelFormatRG16S, PixelFormatD24S8:
		return 4
	case PixelFormatD32S8X24:
		return 8
	default:
		return 4
	}
}

// IsDepth reports whether the format holds depth (and stencil) data.
func (f PixelFormat) IsDepth() bool {
	return f == PixelFormatD24S8 || f == PixelFormatD32S8X24
}

// GPUFormat converts to the WebGPU texture format.
// Formats without a portable equivalent return TextureFormatUndefined and are
// resolved by the backend.
func (f PixelFormat) GPUFormat() gputypes.TextureFormat {
	switch f {
	case PixelFormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case PixelFormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case PixelFormatR8:
		return gputypes.TextureFormatR8Unorm
	case PixelFormatD24S8, PixelFormatD32S8X24:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}

// PixelFormatFromGPU maps a WebGPU surface format to a PixelFormat.
// Unknown formats fall back to RGBA8.
func PixelFormatFromGPU(f gputypes.TextureFormat) PixelFormat {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm:
		return PixelFormatBGRA8
	case gputypes.TextureFormatR8Unorm:
		return PixelFormatR8
	case gputypes.TextureFormatDepth24PlusStencil8:
		return PixelFormatD24S8
	default:
		return PixelFormatRGBA8
	}
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows the texture to be sampled by shaders.
	TextureUsageTextureBinding

	// TextureUsageRenderTarget allows the texture to be a color attachment.
	TextureUsageRenderTarget

	// TextureUsageDepthStencil allows the texture to be a depth-stencil attachment.
	TextureUsageDepthStencil
)

// IsAttachment reports whether the usage allows binding as a render target.
func (u TextureUsage) IsAttachment() bool {
	return u&(TextureUsageRenderTarget|TextureUsageDepthStencil) != 0
}

// GPUUsage converts to WebGPU texture usage flags.
func (u TextureUsage) GPUUsage() gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u&TextureUsageCopySrc != 0 {
		out |= gputypes.TextureUsageCopySrc
	}
	if u&TextureUsageCopyDst != 0 {
		out |= gputypes.TextureUsageCopyDst
	}
	if u&TextureUsageTextureBinding != 0 {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u.IsAttachment() {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// ArrayLayers is the array layer count. Use 1 for regular 2D textures.
	ArrayLayers uint32

	// MipLevelCount is the number of mipmap levels.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling.
	SampleCount uint32

	// Format is the texture pixel format.
	Format PixelFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage

	// HWGamma requests sRGB conversion on read and write.
	HWGamma bool
}

// DefaultTextureDescriptor returns a TextureDescriptor with sensible defaults.
// Only Width, Height, and Format need to be set.
func DefaultTextureDescriptor(width, height uint32, format PixelFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:         width,
		Height:        height,
		ArrayLayers:   1,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        format,
		Usage:         TextureUsageTextureBinding | TextureUsageRenderTarget,
	}
}

// Texture represents a GPU texture resource.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Descriptor returns the descriptor the texture was created with.
	Descriptor() TextureDescriptor

	// Destroy releases GPU resources associated with this texture.
	Destroy()
}

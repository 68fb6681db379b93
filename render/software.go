// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Parameter keys the software API understands.
const (
	// WorldViewProjKey is the mgl32.Mat4 in PerObjectBlock used to place meshes.
	WorldViewProjKey = "WorldViewProj"

	// ColorKey is the gputypes.Color in PerMaterialBlock used to shade meshes.
	ColorKey = "Color"
)

// ErrInvalidTextureSize is returned when creating a texture with a zero dimension.
var ErrInvalidTextureSize = errors.New("render: texture dimensions must be positive")

// ImageTexture is a CPU texture created by the Software API.
// Color formats are backed by *image.RGBA; depth formats carry no pixels.
type ImageTexture struct {
	id        uint64
	desc      TextureDescriptor
	img       *image.RGBA
	destroyed bool
}

// Width returns the texture width in pixels.
func (t *ImageTexture) Width() uint32 { return t.desc.Width }

// Height returns the texture height in pixels.
func (t *ImageTexture) Height() uint32 { return t.desc.Height }

// Descriptor returns the creation descriptor.
func (t *ImageTexture) Descriptor() TextureDescriptor { return t.desc }

// Image returns the backing image, or nil for depth textures.
func (t *ImageTexture) Image() *image.RGBA { return t.img }

// ID returns the creation sequence number.
func (t *ImageTexture) ID() uint64 { return t.id }

// Destroyed reports whether Destroy was called.
func (t *ImageTexture) Destroyed() bool { return t.destroyed }

// Destroy releases the backing image.
func (t *ImageTexture) Destroy() {
	t.img = nil
	t.destroyed = true
}

// SoftwareStats counts work done by the Software API.
type SoftwareStats struct {
	Draws            int
	FullscreenPasses int
	Clears           int
	TexturesCreated  int
	TexturesLive     int
}

// String returns a human-readable summary.
func (s SoftwareStats) String() string {
	return fmt.Sprintf("Software[%d draws, %d fullscreen, %d clears, %d/%d textures live]",
		s.Draws, s.FullscreenPasses, s.Clears, s.TexturesLive, s.TexturesCreated)
}

// Software is a CPU implementation of API and of the texture allocator used
// by the resource pool.
//
// Clears fill pixels, full-screen passes copy SourceTextureSlot into the
// bound color surface with bilinear scaling, and mesh draws fill the
// screen-space bounds of the mesh with the material color. It exists to run
// the compositor end to end without a GPU.
//
// Software is not safe for concurrent use.
type Software struct {
	device DeviceHandle

	target   RenderTarget
	readOnly FramebufferType
	viewport Rect2
	pipeline *Pass
	params   *GpuParams

	nextID uint64
	stats  SoftwareStats
}

// NewSoftware creates a software API bound to a host device handle.
// A nil handle is replaced by NullDeviceHandle.
func NewSoftware(device DeviceHandle) *Software {
	if device == nil {
		device = NullDeviceHandle{}
	}
	return &Software{device: device, viewport: FullRect2}
}

// SurfaceFormat returns the pixel format for view output targets, taken
// from the host surface.
func (s *Software) SurfaceFormat() PixelFormat {
	return PixelFormatFromGPU(s.device.SurfaceFormat())
}

// CreateTexture allocates a CPU texture.
func (s *Software) CreateTexture(desc TextureDescriptor) (Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, desc.Width, desc.Height)
	}
	s.nextID++
	tex := &ImageTexture{id: s.nextID, desc: desc}
	if !desc.Format.IsDepth() {
		tex.img = image.NewRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
	}
	s.stats.TexturesCreated++
	s.stats.TexturesLive++
	return &trackedTexture{ImageTexture: tex, owner: s}, nil
}

// trackedTexture decrements the live count when destroyed.
type trackedTexture struct {
	*ImageTexture
	owner *Software
}

func (t *trackedTexture) Destroy() {
	if !t.destroyed {
		t.owner.stats.TexturesLive--
	}
	t.ImageTexture.Destroy()
}

// Stats returns the work counters.
func (s *Software) Stats() SoftwareStats { return s.stats }

// SetRenderTarget implements API.
func (s *Software) SetRenderTarget(target RenderTarget, readOnly FramebufferType) {
	s.target = target
	s.readOnly = readOnly
	s.viewport = FullRect2
}

// SetViewport implements API.
func (s *Software) SetViewport(area Rect2) {
	s.viewport = area
}

// ClearViewport implements API.
func (s *Software) ClearViewport(buffers FramebufferType, c gputypes.Color) {
	s.stats.Clears++
	if buffers&FramebufferColor == 0 || s.readOnly&FramebufferColor != 0 {
		return
	}
	for _, dst := range s.colorImages() {
		xdraw.Draw(dst, s.viewportRect(dst.Bounds()), image.NewUniform(toRGBA(c)), image.Point{}, xdraw.Src)
	}
}

// SetPipeline implements API.
func (s *Software) SetPipeline(pass *Pass) {
	s.pipeline = pass
}

// SetGpuParams implements API.
func (s *Software) SetGpuParams(params *GpuParams, _ BindFlags, _ ...string) {
	s.params = params
}

// Draw implements API.
func (s *Software) Draw(mesh *Mesh, _ SubMesh, _ uint32) {
	s.stats.Draws++
	images := s.colorImages()
	if len(images) == 0 || s.params == nil {
		return
	}
	dst := images[0]
	dr := s.viewportRect(dst.Bounds())

	if s.pipeline != nil && s.pipeline.Fullscreen {
		s.stats.FullscreenPasses++
		src := imageOf(s.params.Texture(SourceTextureSlot))
		if src == nil {
			return
		}
		copyScaled(dst, dr, src, s.pipeline.FlipY)
		return
	}

	s.fillBounds(dst, dr, mesh)
}

// fillBounds fills the projected screen-space bounds of mesh.
func (s *Software) fillBounds(dst *image.RGBA, dr image.Rectangle, mesh *Mesh) {
	obj := s.params.ParamBlock(PerObjectBlock)
	mat := s.params.ParamBlock(PerMaterialBlock)
	if obj == nil || mat == nil || mesh == nil {
		return
	}
	mvpVal, ok := obj.Get(WorldViewProjKey)
	if !ok {
		return
	}
	mvp, ok := mvpVal.(mgl32.Mat4)
	if !ok {
		return
	}
	colVal, ok := mat.Get(ColorKey)
	if !ok {
		return
	}
	col, ok := colVal.(gputypes.Color)
	if !ok {
		return
	}

	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	visible := false
	for _, c := range mesh.Bounds.Corners() {
		clip := mvp.Mul4x1(c.Vec4(1))
		if clip.W() <= 0 {
			continue
		}
		visible = true
		nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
		sx := float32(dr.Min.X) + (nx*0.5+0.5)*float32(dr.Dx())
		sy := float32(dr.Min.Y) + (0.5-ny*0.5)*float32(dr.Dy())
		minX, maxX = min(minX, sx), max(maxX, sx)
		minY, maxY = min(minY, sy), max(maxY, sy)
	}
	if !visible {
		return
	}
	r := image.Rect(int(minX), int(minY), int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY)))).Intersect(dr)
	if r.Empty() {
		return
	}
	xdraw.Draw(dst, r, image.NewUniform(toRGBA(col)), image.Point{}, xdraw.Over)
}

// colorImages returns the writable color images of the bound target.
func (s *Software) colorImages() []*image.RGBA {
	switch t := s.target.(type) {
	case *ImageTarget:
		return []*image.RGBA{t.Image()}
	case *RenderTexture:
		out := make([]*image.RGBA, 0, t.ColorCount())
		for i := 0; i < t.ColorCount(); i++ {
			if img := imageOf(t.ColorTexture(i)); img != nil {
				out = append(out, img)
			}
		}
		return out
	default:
		return nil
	}
}

// viewportRect converts the normalized viewport to pixels inside bounds.
func (s *Software) viewportRect(bounds image.Rectangle) image.Rectangle {
	vp := s.viewport
	if vp.IsEmpty() {
		vp = FullRect2
	}
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	r := image.Rect(
		bounds.Min.X+int(vp.X*w),
		bounds.Min.Y+int(vp.Y*h),
		bounds.Min.X+int((vp.X+vp.Width)*w),
		bounds.Min.Y+int((vp.Y+vp.Height)*h),
	)
	return r.Intersect(bounds)
}

// imageOf returns the pixels behind a software texture.
func imageOf(tex Texture) *image.RGBA {
	switch t := tex.(type) {
	case *trackedTexture:
		return t.Image()
	case *ImageTexture:
		return t.Image()
	default:
		return nil
	}
}

// copyScaled copies src into dr of dst with bilinear filtering.
func copyScaled(dst *image.RGBA, dr image.Rectangle, src *image.RGBA, flipY bool) {
	sr := src.Bounds()
	if !flipY {
		xdraw.BiLinear.Scale(dst, dr, src, sr, xdraw.Src, nil)
		return
	}
	sx := float64(dr.Dx()) / float64(sr.Dx())
	sy := float64(dr.Dy()) / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, float64(dr.Min.X) - sx*float64(sr.Min.X),
		0, -sy, float64(dr.Max.Y) + sy*float64(sr.Min.Y),
	}
	xdraw.BiLinear.Transform(dst, s2d, src, sr, xdraw.Src, nil)
}

// toRGBA converts a linear [0, 1] color to 8-bit RGBA.
func toRGBA(c gputypes.Color) color.RGBA {
	return color.RGBA{
		R: unorm8(float64(c.R)),
		G: unorm8(float64(c.G)),
		B: unorm8(float64(c.B)),
		A: unorm8(float64(c.A)),
	}
}

func unorm8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Ensure Software implements API.
var _ API = (*Software)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor/render"
)

// Per-view parameter keys written by UpdateTransforms.
const (
	ViewKey       = "View"
	ProjKey       = "Proj"
	ViewProjKey   = "ViewProj"
	ViewOriginKey = "ViewOrigin"
)

// Target describes where a view renders.
type Target struct {
	// Target is the output the final resolve writes to.
	Target render.RenderTarget

	// ViewRect is the view area in pixels. A zero size means the whole target.
	ViewRect render.Rect2I

	// NrmViewRect is ViewRect normalized to the target size.
	NrmViewRect render.Rect2

	// NumSamples is the MSAA sample count of intermediate targets.
	NumSamples uint32

	ClearColor gputypes.Color
}

// Properties are the view parameters that rarely change between frames.
type Properties struct {
	Target Target

	// RunPostProcessing routes the frame through the post-process chain.
	RunPostProcessing bool

	// FlipView flips the image vertically on resolve.
	FlipView bool
}

// View is one camera rendering into one target.
//
// A View is not safe for concurrent use.
type View struct {
	name     string
	props    Properties
	settings *RenderSettings

	viewMat, projMat mgl32.Mat4
	origin           mgl32.Vec3

	perView     *render.ParamBlockBuffer
	opaque      *RenderQueue
	transparent *RenderQueue
	visibility  VisibilityInfo

	compositorTarget render.RenderTarget
}

// New creates a view. Nil settings are replaced with DefaultRenderSettings.
func New(name string, props Properties, settings *RenderSettings) *View {
	if settings == nil {
		settings = DefaultRenderSettings()
	}
	if props.Target.NumSamples == 0 {
		props.Target.NumSamples = 1
	}
	if props.Target.NrmViewRect.IsEmpty() {
		props.Target.NrmViewRect = render.FullRect2
	}
	v := &View{
		name:        name,
		props:       props,
		settings:    settings,
		viewMat:     mgl32.Ident4(),
		projMat:     mgl32.Ident4(),
		perView:     render.NewParamBlockBuffer(render.PerCameraBlock),
		opaque:      NewRenderQueue(SortFrontToBack),
		transparent: NewRenderQueue(SortBackToFront),
	}
	v.writePerView()
	return v
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Properties returns the view properties.
func (v *View) Properties() Properties { return v.props }

// SetProperties replaces the view properties.
func (v *View) SetProperties(p Properties) {
	if p.Target.NumSamples == 0 {
		p.Target.NumSamples = 1
	}
	if p.Target.NrmViewRect.IsEmpty() {
		p.Target.NrmViewRect = render.FullRect2
	}
	v.props = p
}

// Settings returns the live render settings. Changes made through the
// returned pointer are seen by the next compositor staleness check.
func (v *View) Settings() *RenderSettings { return v.settings }

// SetSettings replaces the render settings.
func (v *View) SetSettings(s *RenderSettings) {
	if s == nil {
		s = DefaultRenderSettings()
	}
	v.settings = s
}

// RequiresVelocityWrites reports whether the forward pass must write a
// velocity buffer.
func (v *View) RequiresVelocityWrites() bool {
	return v.settings.MotionBlur.Enabled
}

// TargetSize returns the size of intermediate targets in pixels: the view
// rectangle, or the whole output target when the rectangle is empty.
func (v *View) TargetSize() (width, height uint32) {
	r := v.props.Target.ViewRect
	if r.Width > 0 && r.Height > 0 {
		return r.Width, r.Height
	}
	if t := v.props.Target.Target; t != nil {
		return t.Width(), t.Height()
	}
	return 0, 0
}

// UpdateTransforms sets the camera transforms and refreshes the per-view buffer.
func (v *View) UpdateTransforms(viewMat, projMat mgl32.Mat4) {
	v.viewMat, v.projMat = viewMat, projMat
	v.origin = viewMat.Inv().Col(3).Vec3()
	v.writePerView()
}

// ViewProj returns projection times view.
func (v *View) ViewProj() mgl32.Mat4 { return v.projMat.Mul4(v.viewMat) }

// Origin returns the camera position in world space.
func (v *View) Origin() mgl32.Vec3 { return v.origin }

func (v *View) writePerView() {
	v.perView.Set(ViewKey, v.viewMat)
	v.perView.Set(ProjKey, v.projMat)
	v.perView.Set(ViewProjKey, v.ViewProj())
	v.perView.Set(ViewOriginKey, v.origin)
}

// PerViewBuffer returns the camera parameter block.
func (v *View) PerViewBuffer() *render.ParamBlockBuffer { return v.perView }

// Visibility returns the culling results of the last UpdateVisibility.
func (v *View) Visibility() VisibilityInfo { return v.visibility }

// UpdateVisibility frustum-tests every renderable of scene against the
// current camera.
func (v *View) UpdateVisibility(scene *Scene) {
	vis := make([]RenderableVisibility, len(scene.Renderables))
	viewProj := v.ViewProj()
	for i, r := range scene.Renderables {
		vis[i] = RenderableVisibility{
			Visible:   inFrustum(viewProj, r.WorldBounds()),
			Instanced: r.Instanced,
		}
	}
	v.visibility = VisibilityInfo{Renderables: vis}
}

// inFrustum reports whether the projected bounds overlap clip space.
func inFrustum(viewProj mgl32.Mat4, b render.Bounds) bool {
	minX, minY, minZ := float32(1), float32(1), float32(1)
	maxX, maxY, maxZ := float32(-1), float32(-1), float32(-1)
	seen := false
	for _, c := range b.Corners() {
		clip := viewProj.Mul4x1(c.Vec4(1))
		if clip.W() <= 0 {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if !seen {
			minX, minY, minZ = ndc.X(), ndc.Y(), ndc.Z()
			maxX, maxY, maxZ = minX, minY, minZ
			seen = true
			continue
		}
		minX, maxX = min(minX, ndc.X()), max(maxX, ndc.X())
		minY, maxY = min(minY, ndc.Y()), max(maxY, ndc.Y())
		minZ, maxZ = min(minZ, ndc.Z()), max(maxZ, ndc.Z())
	}
	if !seen {
		return false
	}
	return maxX >= -1 && minX <= 1 && maxY >= -1 && minY <= 1 && maxZ >= -1 && minZ <= 1
}

// OpaqueQueue returns the sorted opaque draws.
func (v *View) OpaqueQueue() *RenderQueue { return v.opaque }

// TransparentQueue returns the sorted transparent draws.
func (v *View) TransparentQueue() *RenderQueue { return v.transparent }

// PrepareQueues fills and sorts the draw queues from the visible
// renderables of scene. Call UpdateVisibility first.
func (v *View) PrepareQueues(scene *Scene) {
	v.opaque.Clear()
	v.transparent.Clear()
	for i, r := range scene.Renderables {
		if i < len(v.visibility.Renderables) && !v.visibility.Renderables[i].Visible {
			continue
		}
		b := r.WorldBounds()
		center := b.Min.Add(b.Max).Mul(0.5)
		dist := center.Sub(v.origin).Len()
		q := v.opaque
		if r.Transparent {
			q = v.transparent
		}
		for _, e := range r.Elements {
			q.Add(e, dist)
		}
	}
	v.opaque.Sort()
	v.transparent.Sort()
}

// NotifyCompositorTargetChanged records the target the compositor resolved
// into this frame. A nil target means the output target itself.
func (v *View) NotifyCompositorTargetChanged(target render.RenderTarget) {
	v.compositorTarget = target
}

// CompositorTarget returns the target recorded by the last resolve.
func (v *View) CompositorTarget() render.RenderTarget {
	if v.compositorTarget == nil {
		return v.props.Target.Target
	}
	return v.compositorTarget
}

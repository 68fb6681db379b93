// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/gogpu/compositor/render"
)

// Pool errors.
var (
	// ErrBudgetExceeded is returned when an allocation does not fit the
	// memory budget even after evicting every free texture.
	ErrBudgetExceeded = errors.New("pool: memory budget exceeded")

	// ErrPoolClosed is returned when acquiring from a closed pool.
	ErrPoolClosed = errors.New("pool: closed")

	// ErrNotPooled is returned when releasing a texture the pool does not
	// hold a live reference to.
	ErrNotPooled = errors.New("pool: texture not owned by pool")
)

// Default limits.
const (
	// DefaultMaxMemoryMB is the default memory budget.
	DefaultMaxMemoryMB = 512

	// DefaultMaxFree is the default number of free textures kept for reuse.
	DefaultMaxFree = 64
)

// Allocator creates the textures the pool hands out.
// render.Software implements it; GPU backends provide their own.
type Allocator interface {
	CreateTexture(desc render.TextureDescriptor) (render.Texture, error)
}

// Texture is a pooled texture borrowed from a Pool. It stays valid until
// its last reference is released.
type Texture struct {
	// ID identifies the allocation in logs and statistics.
	ID uuid.UUID

	// Desc is the descriptor the texture was allocated for.
	Desc Descriptor

	// Tex is the underlying texture.
	Tex render.Texture

	// RenderTex binds Tex as a render target. It is nil unless Desc.Usage
	// allows attachment.
	RenderTex *render.RenderTexture

	pool *Pool
	refs int
	size uint64
}

// Refs returns the number of live references.
func (t *Texture) Refs() int {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()
	return t.refs
}

// Retain adds a reference.
func (t *Texture) Retain() {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()
	t.refs++
}

// Release drops a reference, returning the texture to its pool on the last.
func (t *Texture) Release() {
	if err := t.pool.Release(t); err != nil {
		Logger().Warn("pool: release failed", "id", t.ID, "err", err)
	}
}

// Stats contains pool usage statistics.
type Stats struct {
	Live        int
	Free        int
	PeakLive    int
	UsedBytes   uint64
	BudgetBytes uint64
	Allocations uint64
	Reuses      uint64
	Evictions   uint64
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("Pool[%d live (peak %d), %d free, %d/%d MB, %d allocs, %d reuses, %d evictions]",
		s.Live, s.PeakLive, s.Free,
		s.UsedBytes/(1024*1024), s.BudgetBytes/(1024*1024),
		s.Allocations, s.Reuses, s.Evictions)
}

// Pool is the transient texture pool shared by compositor nodes.
//
// Acquire returns a texture compatible with a descriptor, reusing the most
// recently released free texture with an equal descriptor when there is one.
// Release makes a texture available again. Free textures are evicted least
// recently released first when the free list or the memory budget is full.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu sync.Mutex

	alloc       Allocator
	budgetBytes uint64
	usedBytes   uint64

	live       map[uuid.UUID]*Texture
	free       *lru.Cache
	freeByDesc map[Descriptor][]*Texture

	peakLive    int
	allocations uint64
	reuses      uint64
	evictions   uint64

	closed bool
}

// New creates a pool allocating through alloc.
func New(alloc Allocator, opts ...Option) (*Pool, error) {
	if alloc == nil {
		return nil, errors.New("pool: nil allocator")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxMemoryMB <= 0 {
		return nil, fmt.Errorf("pool: invalid memory budget %d MB", cfg.maxMemoryMB)
	}

	p := &Pool{
		alloc:       alloc,
		budgetBytes: uint64(cfg.maxMemoryMB) * 1024 * 1024, //nolint:gosec // G115: checked positive above
		live:        make(map[uuid.UUID]*Texture),
		freeByDesc:  make(map[Descriptor][]*Texture),
	}
	free, err := lru.NewWithEvict(cfg.maxFree, p.onEvict)
	if err != nil {
		return nil, fmt.Errorf("pool: free list: %w", err)
	}
	p.free = free
	return p, nil
}

// Acquire returns a texture for desc with one reference. Allocation
// failures are fatal and panic; use TryAcquire to handle them.
func (p *Pool) Acquire(desc Descriptor) *Texture {
	t, err := p.TryAcquire(desc)
	if err != nil {
		panic(fmt.Sprintf("pool: acquire %s: %v", desc, err))
	}
	return t
}

// TryAcquire is Acquire returning allocation failures as errors.
func (p *Pool) TryAcquire(desc Descriptor) (*Texture, error) {
	desc = desc.normalized()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	if list := p.freeByDesc[desc]; len(list) > 0 {
		t := list[len(list)-1]
		p.freeByDesc[desc] = list[:len(list)-1]
		// Live before Remove so onEvict keeps the texture.
		t.refs = 1
		p.free.Remove(t.ID)
		p.addLiveLocked(t)
		p.reuses++
		Logger().Debug("pool: reuse", "id", t.ID, "desc", desc)
		return t, nil
	}

	size := desc.SizeBytes()
	if size > p.budgetBytes {
		return nil, fmt.Errorf("%w: %s needs %d bytes, budget %d", ErrBudgetExceeded, desc, size, p.budgetBytes)
	}
	for p.usedBytes+size > p.budgetBytes && p.free.Len() > 0 {
		p.free.RemoveOldest()
	}
	if p.usedBytes+size > p.budgetBytes {
		return nil, fmt.Errorf("%w: %s needs %d bytes, %d of %d in use", ErrBudgetExceeded,
			desc, size, p.usedBytes, p.budgetBytes)
	}

	id := uuid.New()
	tex, err := p.alloc.CreateTexture(desc.TextureDescriptor(id.String()))
	if err != nil {
		return nil, fmt.Errorf("pool: create %s: %w", desc, err)
	}

	t := &Texture{ID: id, Desc: desc, Tex: tex, pool: p, refs: 1, size: size}
	if desc.Usage.IsAttachment() {
		rd := render.RenderTextureDesc{}
		if desc.Format.IsDepth() {
			rd.DepthStencilSurface = render.Surface{Texture: tex, NumFaces: 1}
		} else {
			rd.ColorSurfaces = []render.Surface{{Texture: tex, NumFaces: 1}}
		}
		rt, err := render.NewRenderTexture(rd)
		if err != nil {
			tex.Destroy()
			return nil, fmt.Errorf("pool: render texture %s: %w", desc, err)
		}
		t.RenderTex = rt
	}

	p.usedBytes += size
	p.allocations++
	p.addLiveLocked(t)
	Logger().Debug("pool: allocate", "id", id, "desc", desc, "bytes", size)
	return t, nil
}

func (p *Pool) addLiveLocked(t *Texture) {
	p.live[t.ID] = t
	p.peakLive = max(p.peakLive, len(p.live))
}

// Release drops one reference to t. When the last reference goes, t joins
// the free list, or is destroyed if the pool is closed.
func (p *Pool) Release(t *Texture) error {
	if t == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if t.pool != p || p.live[t.ID] != t {
		return fmt.Errorf("%w: %s", ErrNotPooled, t.ID)
	}
	t.refs--
	if t.refs > 0 {
		return nil
	}
	delete(p.live, t.ID)

	if p.closed {
		p.destroyLocked(t)
		return nil
	}
	p.freeByDesc[t.Desc] = append(p.freeByDesc[t.Desc], t)
	p.free.Add(t.ID, t)
	return nil
}

// onEvict runs inside free list calls, which are made with p.mu held.
func (p *Pool) onEvict(_, value interface{}) {
	t := value.(*Texture)
	if t.refs > 0 {
		return
	}
	list := p.freeByDesc[t.Desc]
	for i, e := range list {
		if e == t {
			p.freeByDesc[t.Desc] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(p.freeByDesc[t.Desc]) == 0 {
		delete(p.freeByDesc, t.Desc)
	}
	p.evictions++
	p.destroyLocked(t)
	Logger().Debug("pool: evict", "id", t.ID, "desc", t.Desc)
}

func (p *Pool) destroyLocked(t *Texture) {
	t.Tex.Destroy()
	p.usedBytes -= t.size
}

// SetBudgetMB changes the memory budget, evicting free textures until the
// pool fits.
func (p *Pool) SetBudgetMB(mb int) error {
	if mb <= 0 {
		return fmt.Errorf("pool: invalid memory budget %d MB", mb)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.budgetBytes = uint64(mb) * 1024 * 1024
	for p.usedBytes > p.budgetBytes && p.free.Len() > 0 {
		p.free.RemoveOldest()
	}
	Logger().Info("pool: budget changed", "mb", mb, "used", p.usedBytes)
	return nil
}

// Stats returns current pool statistics.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Live:        len(p.live),
		Free:        p.free.Len(),
		PeakLive:    p.peakLive,
		UsedBytes:   p.usedBytes,
		BudgetBytes: p.budgetBytes,
		Allocations: p.allocations,
		Reuses:      p.reuses,
		Evictions:   p.evictions,
	}
}

// Close destroys every free texture. Live textures are destroyed when
// their last reference is released. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.free.Purge()
}

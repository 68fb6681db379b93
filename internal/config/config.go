// Package config loads renderer configuration from TOML files.
//
// A file has three optional tables:
//
//	[settings]          # view.RenderSettings: effect toggles and parameters
//	enable_fxaa = true
//	[settings.bloom]
//	enabled = true
//
//	[render]            # renderer options
//	culling = ["frustum"]
//	instancing = "automatic"
//
//	[pool]              # transient texture pool limits
//	max_memory_mb = 256
//	max_free = 32
//
// Missing keys keep their defaults. Unknown keys are an error.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/view"
)

// Configuration errors.
var (
	// ErrUnknownKey is returned when a file contains keys no field decodes.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrInvalidValue is returned for values outside their allowed range.
	ErrInvalidValue = errors.New("config: invalid value")
)

// RenderSection is the [render] table.
type RenderSection struct {
	// Culling lists culling methods: "frustum", "occlusion".
	Culling []string `toml:"culling"`

	// Instancing is "none", "automatic" or "manual".
	Instancing string `toml:"instancing"`
}

// PoolSection is the [pool] table.
type PoolSection struct {
	MaxMemoryMB int `toml:"max_memory_mb"`
	MaxFree     int `toml:"max_free"`
}

// File is a decoded configuration file.
type File struct {
	Settings view.RenderSettings `toml:"settings"`
	Render   RenderSection       `toml:"render"`
	Pool     PoolSection         `toml:"pool"`

	options view.RenderOptions
}

// Default returns the configuration used when no file is given.
func Default() *File {
	f := &File{
		Settings: *view.DefaultRenderSettings(),
		Render:   RenderSection{Culling: []string{"frustum"}, Instancing: "none"},
		Pool:     PoolSection{MaxMemoryMB: pool.DefaultMaxMemoryMB, MaxFree: pool.DefaultMaxFree},
	}
	f.options = view.DefaultRenderOptions()
	return f
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	f := Default()
	md, err := toml.DecodeFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := f.finish(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates TOML text.
func Parse(data string) (*File, error) {
	f := Default()
	md, err := toml.Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := f.finish(md); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) finish(md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	flags, err := ParseCulling(f.Render.Culling)
	if err != nil {
		return err
	}
	mode, err := ParseInstancing(f.Render.Instancing)
	if err != nil {
		return err
	}
	f.options = view.RenderOptions{CullingFlags: flags, InstancingMode: mode}

	switch {
	case f.Pool.MaxMemoryMB <= 0:
		return fmt.Errorf("%w: pool.max_memory_mb = %d", ErrInvalidValue, f.Pool.MaxMemoryMB)
	case f.Pool.MaxFree <= 0:
		return fmt.Errorf("%w: pool.max_free = %d", ErrInvalidValue, f.Pool.MaxFree)
	case f.Settings.MotionBlur.Enabled && f.Settings.MotionBlur.Samples < 1:
		return fmt.Errorf("%w: settings.motion_blur.samples = %d", ErrInvalidValue, f.Settings.MotionBlur.Samples)
	case f.Settings.Tonemapping.Enabled && f.Settings.Tonemapping.Gamma <= 0:
		return fmt.Errorf("%w: settings.tonemapping.gamma = %g", ErrInvalidValue, f.Settings.Tonemapping.Gamma)
	}
	return nil
}

// RenderOptions returns the renderer options of the [render] table.
func (f *File) RenderOptions() view.RenderOptions { return f.options }

// RenderSettings returns a copy of the [settings] table for one view.
func (f *File) RenderSettings() *view.RenderSettings {
	s := f.Settings
	return &s
}

// PoolOptions returns the pool options of the [pool] table.
func (f *File) PoolOptions() []pool.Option {
	return []pool.Option{
		pool.WithMaxMemoryMB(f.Pool.MaxMemoryMB),
		pool.WithMaxFree(f.Pool.MaxFree),
	}
}

// ParseCulling converts culling method names to flags.
func ParseCulling(names []string) (view.CullingFlags, error) {
	var flags view.CullingFlags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "frustum":
			flags |= view.CullFrustum
		case "occlusion":
			flags |= view.CullOcclusion
		default:
			return 0, fmt.Errorf("%w: culling method %q", ErrInvalidValue, name)
		}
	}
	return flags, nil
}

// ParseInstancing converts an instancing mode name. The empty string is
// InstancingNone.
func ParseInstancing(name string) (view.InstancingMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return view.InstancingNone, nil
	case "automatic":
		return view.InstancingAutomatic, nil
	case "manual":
		return view.InstancingManual, nil
	default:
		return 0, fmt.Errorf("%w: instancing mode %q", ErrInvalidValue, name)
	}
}

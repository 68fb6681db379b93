package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/compositor/pool"
	"github.com/gogpu/compositor/view"
)

func TestParseEmpty(t *testing.T) {
	f, err := Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(view.DefaultRenderSettings(), f.RenderSettings()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if f.RenderOptions() != view.DefaultRenderOptions() {
		t.Errorf("RenderOptions() = %+v, want defaults", f.RenderOptions())
	}
	if f.Pool.MaxMemoryMB != pool.DefaultMaxMemoryMB || f.Pool.MaxFree != pool.DefaultMaxFree {
		t.Errorf("pool = %+v, want defaults", f.Pool)
	}
}

func TestParse(t *testing.T) {
	f, err := Parse(`
[settings]
enable_fxaa = false

[settings.bloom]
enabled = true
intensity = 0.5

[settings.motion_blur]
enabled = true
samples = 4

[render]
culling = ["frustum", "Occlusion"]
instancing = "automatic"

[pool]
max_memory_mb = 64
max_free = 8
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := view.DefaultRenderSettings()
	want.EnableFXAA = false
	want.Bloom.Enabled = true
	want.Bloom.Intensity = 0.5
	want.MotionBlur.Enabled = true
	want.MotionBlur.Samples = 4
	if diff := cmp.Diff(want, f.RenderSettings()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	wantOpts := view.RenderOptions{CullingFlags: view.CullFrustum | view.CullOcclusion, InstancingMode: view.InstancingAutomatic}
	if f.RenderOptions() != wantOpts {
		t.Errorf("RenderOptions() = %+v, want %+v", f.RenderOptions(), wantOpts)
	}
	if f.Pool != (PoolSection{MaxMemoryMB: 64, MaxFree: 8}) {
		t.Errorf("pool = %+v", f.Pool)
	}
	if len(f.PoolOptions()) != 2 {
		t.Errorf("PoolOptions() has %d options, want 2", len(f.PoolOptions()))
	}
}

func TestParseDisablesCulling(t *testing.T) {
	f, err := Parse("[render]\nculling = []\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.RenderOptions().CullingFlags != 0 {
		t.Errorf("CullingFlags = %v, want none", f.RenderOptions().CullingFlags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown top-level key", "colour = 1\n", ErrUnknownKey},
		{"unknown settings key", "[settings]\nenable_ssr = true\n", ErrUnknownKey},
		{"bad culling", "[render]\nculling = [\"portal\"]\n", ErrInvalidValue},
		{"bad instancing", "[render]\ninstancing = \"sometimes\"\n", ErrInvalidValue},
		{"zero budget", "[pool]\nmax_memory_mb = 0\n", ErrInvalidValue},
		{"negative free", "[pool]\nmax_free = -1\n", ErrInvalidValue},
		{"motion blur samples", "[settings.motion_blur]\nenabled = true\nsamples = 0\n", ErrInvalidValue},
		{"gamma", "[settings.tonemapping]\ngamma = 0.0\n", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse("[settings\n"); err == nil {
		t.Error("expected a decode error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	if err := os.WriteFile(path, []byte("[settings.depth_of_field]\nenabled = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !f.Settings.DepthOfField.Enabled {
		t.Error("depth of field should be enabled")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRenderSettingsCopies(t *testing.T) {
	f := Default()
	a, b := f.RenderSettings(), f.RenderSettings()
	a.EnableSkybox = false
	if !b.EnableSkybox || !f.Settings.EnableSkybox {
		t.Error("RenderSettings should return independent copies")
	}
}

func TestParseInstancing(t *testing.T) {
	tests := []struct {
		in   string
		want view.InstancingMode
	}{
		{"", view.InstancingNone},
		{"none", view.InstancingNone},
		{"Automatic", view.InstancingAutomatic},
		{" manual ", view.InstancingManual},
	}
	for _, tt := range tests {
		got, err := ParseInstancing(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseInstancing(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/wdmerger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if cfg.Name != name {
			t.Errorf("preset %s has name %s", name, cfg.Name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("relax")
	cfg.Dt = 99
	if Presets["relax"].Dt == 99 {
		t.Error("GetPreset exposed the shared preset")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrParameterBounds},
		{"negative steps", func(c *Config) { c.Steps = -1 }, dynamo.ErrParameterBounds},
		{"empty grid", func(c *Config) { c.Grid.Cells[1] = 0 }, dynamo.ErrParameterBounds},
		{"massless star", func(c *Config) { c.Binary.SecondaryMass = 0 }, dynamo.ErrParameterBounds},
		{"bad axes", func(c *Config) { c.Damping.OrbitalAxes = [3]int{1, 3, 3} }, dynamo.ErrInvalidConfig},
		{"unknown integrator", func(c *Config) { c.Integrator = "leapfrog" }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDampingConfig_DerivesFreeFallTimes(t *testing.T) {
	cfg := DefaultConfig()
	dc, err := cfg.DampingConfig()
	require.NoError(t, err)

	b := cfg.BinarySetup()
	assert.InDelta(t, wdmerger.FreeFallTime(b.Primary, b.G), dc.TffPrimary, 1e-15)
	assert.InDelta(t, wdmerger.FreeFallTime(b.Secondary, b.G), dc.TffSecondary, 1e-15)
	assert.Equal(t, damping.ProblemMerger, dc.Problem)
	assert.False(t, dc.Rotation.Active())

	cfg.Damping.TffPrimary = 3
	dc, err = cfg.DampingConfig()
	require.NoError(t, err)
	assert.Equal(t, 3.0, dc.TffPrimary)
}

func TestRotationFrame(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.RotationFrame().Active())

	cfg.Rotation.Enabled = true
	f := cfg.RotationFrame()
	assert.InDelta(t, cfg.BinarySetup().Period(), f.Period, 1e-12)
	assert.Equal(t, 2, f.Axis)

	cfg.Rotation.Period = 4
	cfg.Damping.OrbitalAxes = [3]int{3, 1, 2}
	f = cfg.RotationFrame()
	assert.Equal(t, 4.0, f.Period)
	assert.Equal(t, 1, f.Axis)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("hybrid")
	cfg.Dt = 0.005
	cfg.Rotation.PeriodDot = 1e-3

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 7\ndamping:\n  radial_damping_factor: 20\n"), 0644))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, loaded.Steps)
	assert.Equal(t, 20.0, loaded.Damping.RadialFactor)
	assert.Equal(t, DefaultDt, loaded.Dt)
	assert.Equal(t, DefaultRelaxation, loaded.Damping.RelaxationFactor)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

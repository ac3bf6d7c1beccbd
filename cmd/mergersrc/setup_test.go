package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mergersrc/internal/config"
	"github.com/san-kum/mergersrc/internal/dynamo"
)

func smallPreset(t *testing.T, name string) *config.Config {
	t.Helper()
	cfg := config.GetPreset(name)
	require.NotNil(t, cfg, name)
	cfg.Grid.Cells = [3]int{8, 8, 8}
	cfg.Steps = 3
	return cfg
}

func TestNewSetup_AllPresetsRun(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			s, err := newSetup(smallPreset(t, name))
			require.NoError(t, err)

			result, err := s.simulator().Run(context.Background(), s.state, s.simConfig())
			require.NoError(t, err)
			assert.Equal(t, 3, result.StepsTaken)
			assert.True(t, result.Final.IsValid())

			ke := result.KineticEnergy
			injected := result.EnergySource[len(result.EnergySource)-1]
			switch name {
			case "relax":
				assert.Less(t, ke[len(ke)-1], ke[0])
				assert.Less(t, injected, 0.0)
			case "inert":
				assert.Equal(t, ke[0], ke[len(ke)-1])
				assert.Equal(t, 0.0, injected)
			}
		})
	}
}

func TestNewSetup_InvalidConfig(t *testing.T) {
	cfg := smallPreset(t, "relax")
	cfg.Damping.OrbitalAxes = [3]int{1, 1, 3}
	_, err := newSetup(cfg)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)

	cfg = smallPreset(t, "relax")
	cfg.Backend = "gpu"
	_, err = newSetup(cfg)
	assert.ErrorIs(t, err, dynamo.ErrUnknownBackend)
}

func TestPresetSession(t *testing.T) {
	_, err := presetSession("nope")
	assert.Error(t, err)

	s, err := presetSession("inert")
	require.NoError(t, err)
	assert.Equal(t, "inert", s.Name)
	assert.Equal(t, s.Geometry.Nx*s.Geometry.Ny*s.Geometry.Nz, s.State0.Cells())
}

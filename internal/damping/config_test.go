package damping

import (
	"errors"
	"testing"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/rotation"
)

func TestConfig_Validate(t *testing.T) {
	base := Config{
		Problem:                 ProblemMerger,
		RelaxationDampingFactor: 0.1,
		TffPrimary:              1,
		TffSecondary:            2,
		Axes:                    DefaultAxes,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"permuted axes", func(c *Config) { c.Axes = [3]int{3, 1, 2} }, nil},
		{"repeated axis", func(c *Config) { c.Axes = [3]int{1, 1, 3} }, dynamo.ErrInvalidConfig},
		{"zero-based axes", func(c *Config) { c.Axes = [3]int{0, 1, 2} }, dynamo.ErrInvalidConfig},
		{"zero free-fall time", func(c *Config) { c.TffSecondary = 0 }, dynamo.ErrParameterBounds},
		{"inactive ignores free-fall", func(c *Config) { c.TffPrimary = 0; c.RelaxationDampingFactor = 0 }, nil},
		{"other problem ignores free-fall", func(c *Config) { c.TffPrimary = 0; c.Problem = 2 }, nil},
		{"bad rotation axis", func(c *Config) { c.Rotation = rotation.Frame{Axis: 3, Period: 1} }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewKernel_RejectsInvalid(t *testing.T) {
	_, err := NewKernel(Config{Axes: [3]int{1, 2, 2}})
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

package sim

import "github.com/san-kum/mergersrc/internal/dynamo"

type Config struct {
	Dt            float64
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Steps:         100,
		ValidateState: true,
	}
}

// Result holds per-step series and final metric values of a run.
type Result struct {
	Times         []float64
	KineticEnergy []float64
	EnergySource  []float64 // cumulative
	Metrics       map[string]float64
	StepsTaken    int
	Final         *dynamo.Field
}

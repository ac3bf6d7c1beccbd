package dynamo

// Snapshot is what observers and metrics see after each step: the state
// after the update and the source that produced it.
type Snapshot struct {
	Step     int
	Time     float64
	Dt       float64
	Geometry Geometry
	State    *Field
	Source   *Field
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

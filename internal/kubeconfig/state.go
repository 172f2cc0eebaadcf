package kubeconfig

import "time"

// State is the sync controller's lifecycle state
type State int32

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
	StateNoContextSelected
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateLoaded:
		return "Loaded"
	case StateFailed:
		return "Failed"
	case StateNoContextSelected:
		return "NoContextSelected"
	default:
		return "Unknown"
	}
}

// Status is the state plus the error that caused Failed. Values are
// replaced as a whole, never edited.
type Status struct {
	State State
	Err   error
	Since time.Time
}

// Signal names a surface that must reload
type Signal int

const (
	SignalClusterTree Signal = iota
	SignalResourceKinds
	SignalSourceTree
	SignalWorkloadTree
	SignalDocumentation
)

func (s Signal) String() string {
	switch s {
	case SignalClusterTree:
		return "cluster-tree"
	case SignalResourceKinds:
		return "resource-kinds"
	case SignalSourceTree:
		return "source-tree"
	case SignalWorkloadTree:
		return "workload-tree"
	case SignalDocumentation:
		return "documentation"
	default:
		return "unknown"
	}
}

// InvalidationSink receives the signals of a finished sync cycle
type InvalidationSink interface {
	Invalidate(signals ...Signal)
}

// SinkFunc adapts a function to InvalidationSink
type SinkFunc func(signals ...Signal)

func (f SinkFunc) Invalidate(signals ...Signal) { f(signals...) }

// Observer records sync metrics
type Observer interface {
	SyncCompleted(outcome string, duration time.Duration)
	Invalidated(signal string)
}

package tourism

import "time"

// NoopRecorder is a no-operation implementation of Recorder
type NoopRecorder struct{}

// NewNoopRecorder creates a new no-operation recorder
func NewNoopRecorder() Recorder {
	return NoopRecorder{}
}

// ObserveFetch does nothing
func (NoopRecorder) ObserveFetch(CollectionName, string, time.Duration) {}

// ObserveResolution does nothing
func (NoopRecorder) ObserveResolution(Section, Outcome) {}

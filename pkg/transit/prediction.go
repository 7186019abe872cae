package transit

import "time"

// NoData is the published sentinel for "no prediction currently available".
const NoData = -1

// Prediction is a single upstream arrival estimate, rebuilt fresh every poll
// cycle and never persisted across cycles.
type Prediction struct {
	StopID      string
	Route       string
	ETASeconds  int
	ArrivalTime time.Time
}

// PublishRecord is one resolved value on its way to the broker.
type PublishRecord struct {
	Topic string
	Value int
}

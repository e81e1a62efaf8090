package trace

import (
	"time"

	"dialogo/pkg/modal"
)

// Event is one snapshot published by a controller, in arrival order.
type Event[C any] struct {
	Seq       uint64         `json:"seq"`       // 1-based, never reused within a Recorder
	Timestamp time.Time      `json:"timestamp"` // When the snapshot arrived
	State     modal.State[C] `json:"state"`
}

// Direction classifies how the active view moved between two snapshots.
type Direction string

const (
	DirectionNone     Direction = "none"     // Same active view (visibility change or empty both sides)
	DirectionForward  Direction = "forward"  // Deeper into the flow
	DirectionBackward Direction = "backward" // Towards the root, or the history was dropped
)

// DirectionOf compares active view IDs the way a sliding renderer does:
// a higher ID slides in from the right, a lower one from the left.
func DirectionOf[C any](prev, next modal.State[C]) Direction {
	p, n := prev.ActiveID(), next.ActiveID()
	switch {
	case n > p:
		return DirectionForward
	case n < p:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

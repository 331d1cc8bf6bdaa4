// Package tracking projects a coarse delivery status onto the fixed
// four-stage timeline shown to customers.
package tracking

// Stage keys in timeline order.
const (
	StageOrdered        = "ORDERED"
	StageInTransit      = "IN_TRANSIT"
	StageOutForDelivery = "OUT_FOR_DELIVERY"
	StageDelivered      = "DELIVERED"
)

// Delivery statuses understood by the projector.
const (
	StatusPending        = "PENDING"
	StatusInTransit      = "IN_TRANSIT"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusFailed         = "FAILED"
)

// StageState is derived per stage on every projection and never stored.
type StageState string

const (
	StateDone     StageState = "done"
	StatePending  StageState = "pending"
	StateUpcoming StageState = "upcoming"
)

// Stage describes one step of the timeline.
type Stage struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var stages = [...]Stage{
	{Key: StageOrdered, Title: "Ordered", Description: "Your order has been confirmed and is being prepared."},
	{Key: StageInTransit, Title: "In Transit", Description: "Package is on the way to the destination hub."},
	{Key: StageOutForDelivery, Title: "Out for Delivery", Description: "Package is out for delivery."},
	{Key: StageDelivered, Title: "Delivered", Description: "Package delivered to recipient."},
}

// Stages returns a copy of the timeline definition.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages[:])
	return out
}

// StatusIndex maps a delivery status to the position of the current stage.
// Statuses outside the timeline map to 0.
func StatusIndex(status string) int {
	idx, _ := lookup(status)
	return idx
}

func lookup(status string) (int, bool) {
	switch status {
	case StatusPending:
		return 0, true
	case StatusInTransit:
		return 1, true
	case StatusOutForDelivery:
		return 2, true
	case StatusDelivered:
		return 3, true
	default:
		return 0, false
	}
}

// StageStateFor compares a stage position with the current one.
func StageStateFor(stageIndex, currentIndex int) StageState {
	switch {
	case stageIndex < currentIndex:
		return StateDone
	case stageIndex == currentIndex:
		return StatePending
	default:
		return StateUpcoming
	}
}

// TimelineStage is a Stage together with its state for one projection.
type TimelineStage struct {
	Stage
	State StageState `json:"state"`
}

// Timeline is the projection of a single delivery status.
type Timeline struct {
	Status       string          `json:"status"`
	CurrentIndex int             `json:"currentIndex"`
	Stages       []TimelineStage `json:"stages"`
	// Recognized is false when Status was not one of the timeline statuses.
	Recognized bool `json:"recognized"`
	Failed     bool `json:"failed"`
}

// Project builds the timeline for status.
func Project(status string) Timeline {
	current, recognized := lookup(status)

	out := Timeline{
		Status:       status,
		CurrentIndex: current,
		Stages:       make([]TimelineStage, len(stages)),
		Recognized:   recognized,
		Failed:       status == StatusFailed,
	}
	for i, s := range stages {
		out.Stages[i] = TimelineStage{Stage: s, State: StageStateFor(i, current)}
	}
	return out
}

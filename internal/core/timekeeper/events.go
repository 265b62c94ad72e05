package timekeeper

// State represents the observable countdown mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateAlert   State = "alert"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventSettings    EventType = "settings"
)

// Status is a snapshot of the controller.
type Status struct {
	State        State
	Remaining    int
	Duration     int
	AutoContinue bool
	AlwaysOnTop  bool
}

// Event represents a controller update for observers.
type Event struct {
	Type   EventType
	Status Status
}

package syncer

// State is the controller's current position in a sync cycle. Exactly one
// value holds at a time; transitions happen only inside controller methods.
type State int

const (
	StateIdle State = iota
	StateCheckingStatus
	StatePulling
	StateStaging
	StateCommitting
	StatePushing
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingStatus:
		return "checking-status"
	case StatePulling:
		return "pulling"
	case StateStaging:
		return "staging"
	case StateCommitting:
		return "committing"
	case StatePushing:
		return "pushing"
	}
	return "unknown"
}

// Progress returns the human-readable progress line for a non-idle state.
func (s State) Progress() string {
	switch s {
	case StateCheckingStatus:
		return "checking for changes..."
	case StatePulling:
		return "pulling updates..."
	case StateStaging:
		return "staging changes..."
	case StateCommitting:
		return "committing changes..."
	case StatePushing:
		return "pushing to remote..."
	}
	return ""
}

package checkin

// State of a user's check-in, derived from the pending cache entries.
type State int

const (
	StateIdle State = iota
	StateContactShared
	StateAwaitingTypeSelection
)

func (s State) String() string {
	switch s {
	case StateContactShared:
		return "contact_shared"
	case StateAwaitingTypeSelection:
		return "awaiting_type_selection"
	default:
		return "idle"
	}
}

// Lookups are the two cache probes a state is derived from.
type Lookups struct {
	Contact bool
	Picker  bool
}

func DeriveState(l Lookups) State {
	switch {
	case l.Picker:
		return StateAwaitingTypeSelection
	case l.Contact:
		return StateContactShared
	default:
		return StateIdle
	}
}

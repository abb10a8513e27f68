package splib

// LifecycleState represents the current state of an accessor instance.
type LifecycleState int

const (
	// StateUninitialized indicates Initialize has not succeeded yet.
	StateUninitialized LifecycleState = iota
	// StateReady indicates the library is loaded and accepts queries.
	StateReady
	// StateTerminated indicates Terminate ran; the instance is spent.
	StateTerminated
)

// String returns the string representation of the state.
func (s LifecycleState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Lifecycle manages the accessor state machine. Only the transitions
// Uninitialized→Ready and Ready→Terminated are meaningful; Terminate from
// Uninitialized is tolerated as a no-op at the accessor level, and
// re-initialization of a non-Uninitialized instance is rejected.
//
// Lifecycle itself is not goroutine safe; the contract leaves racing
// Initialize/Terminate against queries to the caller.
type Lifecycle struct {
	current     LifecycleState
	transitions map[LifecycleState][]LifecycleState
}

// NewLifecycle creates a lifecycle machine in the Uninitialized state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		current: StateUninitialized,
		transitions: map[LifecycleState][]LifecycleState{
			StateUninitialized: {StateReady, StateTerminated},
			StateReady:         {StateTerminated},
			StateTerminated:    {},
		},
	}
}

// Transition attempts to move to the specified state.
func (l *Lifecycle) Transition(to LifecycleState) error {
	for _, state := range l.transitions[l.current] {
		if state == to {
			l.current = to
			return nil
		}
	}
	return NewLibError(ErrStateTransition, "", "lifecycle").
		WithContext("from", l.current.String()).
		WithContext("to", to.String())
}

// Current returns the current state.
func (l *Lifecycle) Current() LifecycleState {
	return l.current
}

// Ready reports whether the machine is in the Ready state.
func (l *Lifecycle) Ready() bool {
	return l.current == StateReady
}

// CheckReady returns nil in the Ready state and the matching lifecycle
// sentinel otherwise. Backends call it at the top of every data query.
func (l *Lifecycle) CheckReady() error {
	switch l.current {
	case StateReady:
		return nil
	case StateTerminated:
		return ErrTerminated
	default:
		return ErrNotReady
	}
}

// CheckUninitialized returns nil when Initialize may proceed.
func (l *Lifecycle) CheckUninitialized() error {
	if l.current != StateUninitialized {
		return ErrAlreadyInitialized
	}
	return nil
}

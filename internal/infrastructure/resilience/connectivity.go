package resilience

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jdcrm/backend/internal/domain/shared"
)

// Connectivity is the facade's view of the remote store
type Connectivity string

const (
	ConnectivityUnknown  Connectivity = "UNKNOWN"
	ConnectivityLive     Connectivity = "LIVE"
	ConnectivityDegraded Connectivity = "DEGRADED"
)

// String returns the string representation
func (c Connectivity) String() string {
	return string(c)
}

// EventTypeConnectivityChanged is emitted after every completed data-access
// call; it is the only channel through which the rest of the system learns
// about connectivity.
const EventTypeConnectivityChanged = "ConnectivityChanged"

// ConnectivityChangedEvent carries the facade's connectivity verdict
type ConnectivityChangedEvent struct {
	shared.BaseDomainEvent
	State    Connectivity `json:"state"`
	Previous Connectivity `json:"previous"`
	Op       string       `json:"op"`
}

// NewConnectivityChangedEvent creates a connectivity signal for the given call
func NewConnectivityChangedEvent(op string, previous, state Connectivity) *ConnectivityChangedEvent {
	return &ConnectivityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeConnectivityChanged, "Facade", uuid.Nil, uuid.Nil),
		State:           state,
		Previous:        previous,
		Op:              op,
	}
}

// Monitor holds the explicit connectivity state machine:
// UNKNOWN -> LIVE or UNKNOWN -> DEGRADED on the first completed call, then
// LIVE <-> DEGRADED re-evaluated on every call. The state lives here, not in
// a package-level flag.
type Monitor struct {
	mu    sync.Mutex
	state Connectivity
}

// NewMonitor creates a monitor in the UNKNOWN state
func NewMonitor() *Monitor {
	return &Monitor{state: ConnectivityUnknown}
}

// State returns the current connectivity state
func (m *Monitor) State() Connectivity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Report records the outcome of one remote attempt and returns the previous
// state, the new state, and whether the state changed.
func (m *Monitor) Report(live bool) (previous, current Connectivity, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous = m.state
	if live {
		m.state = ConnectivityLive
	} else {
		m.state = ConnectivityDegraded
	}
	return previous, m.state, previous != m.state
}

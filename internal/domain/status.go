package domain

import "fmt"

// Status is the lifecycle state of an order. Transitions are linear:
// Received -> Preparing -> Ready -> Served.
type Status string

const (
	StatusReceived  Status = "Received"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusServed    Status = "Served"
)

// Next returns the status a client offers as the next step. Served is
// terminal and maps to itself; unknown values fall through to Served.
func (s Status) Next() Status {
	switch s {
	case StatusReceived:
		return StatusPreparing
	case StatusPreparing:
		return StatusReady
	default:
		return StatusServed
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusServed
}

func (s Status) Valid() bool {
	return s.rank() > 0
}

// CanTransitionTo reports whether moving from s to next keeps the
// progression monotonic. Repeating the current status is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() || next == StatusReceived {
		return false
	}
	return next.rank() >= s.rank()
}

func (s Status) rank() int {
	switch s {
	case StatusReceived:
		return 1
	case StatusPreparing:
		return 2
	case StatusReady:
		return 3
	case StatusServed:
		return 4
	default:
		return 0
	}
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

// Style is the display tone of a status badge.
type Style int

const (
	StyleUnknown Style = iota
	StyleInfo
	StyleWarning
	StyleSuccess
	StyleMuted
)

func (s Status) Style() Style {
	switch s {
	case StatusReceived:
		return StyleInfo
	case StatusPreparing:
		return StyleWarning
	case StatusReady:
		return StyleSuccess
	case StatusServed:
		return StyleMuted
	}
	return StyleUnknown
}

func (s Style) String() string {
	switch s {
	case StyleInfo:
		return "blue"
	case StyleWarning:
		return "orange"
	case StyleSuccess:
		return "green"
	case StyleMuted:
		return "gray"
	}
	return "none"
}

// AdditionStatus tracks kitchen acknowledgment of an item appended to an open order.
type AdditionStatus string

const (
	AdditionNew       AdditionStatus = "New"
	AdditionPreparing AdditionStatus = "Preparing"
)

func (s AdditionStatus) Valid() bool {
	return s == AdditionNew || s == AdditionPreparing
}

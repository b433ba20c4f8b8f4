package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrTerminalStatus          = errors.New("order already served")
	ErrUpdateInFlight          = errors.New("update already in flight")
	ErrOrderNotFound           = errors.New("order not found")
	ErrAdditionNotFound        = errors.New("addition not found")
	ErrMenuItemNotFound        = errors.New("menu item not found")
	ErrItemUnavailable         = errors.New("menu item unavailable")
	ErrInvalidItem             = errors.New("invalid item")
	ErrNoDate                  = errors.New("select a date")
	ErrNoComposition           = errors.New("no add-item composition open")
	ErrNothingSelected         = errors.New("select an item")
	ErrUnknownTemplate         = errors.New("unknown menu template")
)

// StatusError is returned when a backend answers with a non-success status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

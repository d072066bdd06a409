package warehouse

import (
	"errors"
	"fmt"
	"strings"
)

// Status is an order's fulfillment state. The backend owns the record; this
// table only decides which actions the operator is offered, and every
// transition is still confirmed upstream before local state changes.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusProcessing Status = "processing"
	StatusPacked     Status = "packed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
)

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrUnknownStatus = errors.New("unknown order status")

// transitions is the exhaustive edge set. rejected and delivered are
// terminal and have no row.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAccepted, StatusRejected},
	StatusAccepted:   {StatusProcessing},
	StatusProcessing: {StatusPacked},
	StatusPacked:     {StatusDispatched},
	StatusDispatched: {StatusDelivered},
}

// ActionLabels maps each reachable status to the operator action that
// produces it.
var ActionLabels = map[Status]string{
	StatusAccepted:   "Accept",
	StatusRejected:   "Reject",
	StatusProcessing: "Start Processing",
	StatusPacked:     "Mark Packed",
	StatusDispatched: "Dispatch",
	StatusDelivered:  "Mark Delivered",
}

// ParseStatus normalizes a backend status string.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusAccepted, StatusRejected, StatusProcessing,
		StatusPacked, StatusDispatched, StatusDelivered:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// NextStatuses returns the statuses reachable from s. Terminal statuses
// return an empty slice.
func NextStatuses(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Transition validates the edge from -> to against the table.
func Transition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Action describes one button the operator should see for an order.
type Action struct {
	To    Status `json:"to"`
	Label string `json:"label"`
}

// ActionsFor lists the operator actions for an order in status s, in table
// order.
func ActionsFor(s Status) []Action {
	next := transitions[s]
	actions := make([]Action, 0, len(next))
	for _, to := range next {
		actions = append(actions, Action{To: to, Label: ActionLabels[to]})
	}
	return actions
}

package warehouse

import (
	"errors"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	valid := []struct{ from, to Status }{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusRejected},
		{StatusAccepted, StatusProcessing},
		{StatusProcessing, StatusPacked},
		{StatusPacked, StatusDispatched},
		{StatusDispatched, StatusDelivered},
	}
	for _, tc := range valid {
		if err := Transition(tc.from, tc.to); err != nil {
			t.Errorf("expected %s -> %s to be valid: %v", tc.from, tc.to, err)
		}
	}

	invalid := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusDelivered},
		{StatusAccepted, StatusPacked},
		{StatusProcessing, StatusDispatched},
		{StatusPacked, StatusDelivered},
		{StatusDispatched, StatusPacked},
		{StatusRejected, StatusAccepted},
		{StatusDelivered, StatusDispatched},
	}
	for _, tc := range invalid {
		err := Transition(tc.from, tc.to)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected %s -> %s to be rejected, got %v", tc.from, tc.to, err)
		}
	}
}

func TestProcessingOnlyReachesPacked(t *testing.T) {
	next := NextStatuses(StatusProcessing)
	if len(next) != 1 || next[0] != StatusPacked {
		t.Fatalf("expected processing -> [packed], got %v", next)
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, st := range []Status{StatusRejected, StatusDelivered} {
		if !IsTerminal(st) {
			t.Errorf("expected %s to be terminal", st)
		}
		if len(NextStatuses(st)) != 0 {
			t.Errorf("expected no next statuses for %s", st)
		}
	}
	if IsTerminal(StatusPending) {
		t.Error("pending must not be terminal")
	}
}

func TestParseStatusNormalizes(t *testing.T) {
	st, err := ParseStatus("  Packed ")
	if err != nil || st != StatusPacked {
		t.Fatalf("expected packed, got %v (%v)", st, err)
	}

	if _, err := ParseStatus("shipped"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestActionsForPending(t *testing.T) {
	actions := ActionsFor(StatusPending)
	if len(actions) != 2 {
		t.Fatalf("expected two actions for pending, got %d", len(actions))
	}
	if actions[0].To != StatusAccepted || actions[0].Label != "Accept" {
		t.Errorf("unexpected first action: %+v", actions[0])
	}
	if actions[1].To != StatusRejected || actions[1].Label != "Reject" {
		t.Errorf("unexpected second action: %+v", actions[1])
	}
}

package model

import "testing"

func TestReservationStatusTransitions(t *testing.T) {
	allowed := map[[2]ReservationStatus]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			got := from.CanTransitionTo(to)
			want := allowed[[2]ReservationStatus{from, to}]
			if got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestReservationStatusTerminal(t *testing.T) {
	tests := []struct {
		status   ReservationStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusConfirmed, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestParseReservationStatus(t *testing.T) {
	if _, ok := ParseReservationStatus("confirmed"); !ok {
		t.Fatalf("expected confirmed to parse")
	}
	if _, ok := ParseReservationStatus("CONFIRMED"); ok {
		t.Fatalf("status parsing is case sensitive")
	}
	if _, ok := ParseReservationStatus(""); ok {
		t.Fatalf("empty status must not parse")
	}
}

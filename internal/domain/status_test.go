package domain

import (
	"testing"

	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"open", StatusOpen},
		{"OPEN", StatusOpen},
		{"  In_Progress ", StatusInProgress},
		{"pending", StatusPending},
		{"Resolved", StatusResolved},
		{"CLOSED", StatusClosed},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if err != nil {
			t.Fatalf("ParseStatus(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "ARCHIVED", "closed?"} {
		if _, err := ParseStatus(in); err == nil {
			t.Fatalf("ParseStatus(%q): expected error", in)
		} else if !apperrors.IsCode(err, "INVALID_VALUE") {
			t.Fatalf("ParseStatus(%q): expected INVALID_VALUE, got %v", in, err)
		}
	}
}

// TestCanTransitionTo covers the full 5x5 matrix so a change to the
// transition table cannot slip by unnoticed.
func TestCanTransitionTo(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusOpen:       {StatusInProgress: true, StatusClosed: true},
		StatusInProgress: {StatusPending: true, StatusResolved: true, StatusClosed: true},
		StatusPending:    {StatusInProgress: true, StatusClosed: true},
		StatusResolved:   {StatusClosed: true, StatusOpen: true},
		StatusClosed:     {StatusOpen: true},
	}
	all := []Status{StatusOpen, StatusInProgress, StatusPending, StatusResolved, StatusClosed}
	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%v -> %v: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsClosed(t *testing.T) {
	cases := map[Status]bool{
		StatusOpen:       false,
		StatusInProgress: false,
		StatusPending:    false,
		StatusResolved:   true,
		StatusClosed:     true,
	}
	for status, want := range cases {
		if got := status.IsClosed(); got != want {
			t.Fatalf("%v.IsClosed() = %v, want %v", status, got, want)
		}
	}
}

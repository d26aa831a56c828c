package domain

import "testing"

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
	}{
		{"low", PriorityLow},
		{"Medium", PriorityMedium},
		{" HIGH ", PriorityHigh},
		{"critical", PriorityCritical},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if err != nil {
			t.Fatalf("ParsePriority(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePriority(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("ParsePriority(urgent): expected error")
	}
}

func TestPriorityCategories(t *testing.T) {
	if PriorityLow.IsHighOrCritical() || PriorityMedium.IsHighOrCritical() {
		t.Fatal("LOW/MEDIUM must not be high-or-critical")
	}
	if !PriorityHigh.IsHighOrCritical() || !PriorityCritical.IsHighOrCritical() {
		t.Fatal("HIGH/CRITICAL must be high-or-critical")
	}
	if PriorityHigh.IsCritical() {
		t.Fatal("HIGH must not be critical")
	}
	if !PriorityCritical.IsCritical() {
		t.Fatal("CRITICAL must be critical")
	}
}

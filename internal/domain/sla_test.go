package domain

import (
	"testing"
	"time"

	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

func TestNewSLAValidatesBudgets(t *testing.T) {
	cases := []struct {
		name       string
		response   int
		resolution int
		wantErr    bool
	}{
		{"valid", 30, 31, false},
		{"equal budgets", 30, 30, true},
		{"resolution below response", 60, 30, true},
		{"zero response", 0, 60, true},
		{"negative resolution", 30, -1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sla, err := NewSLA("area-1", PriorityHigh, tc.response, tc.resolution)
			if tc.wantErr {
				if !apperrors.IsCode(err, "INVARIANT_VIOLATION") {
					t.Fatalf("expected INVARIANT_VIOLATION, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sla.IsActive {
				t.Fatal("new SLA must be active")
			}
		})
	}
}

func TestSLADeadlines(t *testing.T) {
	sla, err := NewSLA("area-1", PriorityHigh, 30, 60)
	if err != nil {
		t.Fatalf("NewSLA: %v", err)
	}
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if got := sla.ResponseDeadline(createdAt); !got.Equal(createdAt.Add(30 * time.Minute)) {
		t.Fatalf("response deadline = %v", got)
	}
	if got := sla.ResolutionDeadline(createdAt); !got.Equal(createdAt.Add(60 * time.Minute)) {
		t.Fatalf("resolution deadline = %v", got)
	}
}

func TestSLABreachChecks(t *testing.T) {
	sla, err := NewSLA("area-1", PriorityHigh, 30, 60)
	if err != nil {
		t.Fatalf("NewSLA: %v", err)
	}
	createdAt := time.Now().Add(-90 * time.Minute)

	onTime := createdAt.Add(29 * time.Minute)
	if sla.IsResponseBreached(createdAt, &onTime) {
		t.Fatal("response at T+29m within a 30m budget must not breach")
	}
	late := createdAt.Add(31 * time.Minute)
	if !sla.IsResponseBreached(createdAt, &late) {
		t.Fatal("response at T+31m against a 30m budget must breach")
	}

	resolvedAt := createdAt.Add(61 * time.Minute)
	if !sla.IsResolutionBreached(createdAt, &resolvedAt) {
		t.Fatal("resolution at T+61m against a 60m budget must breach")
	}
	resolvedAt = createdAt.Add(59 * time.Minute)
	if sla.IsResolutionBreached(createdAt, &resolvedAt) {
		t.Fatal("resolution at T+59m within a 60m budget must not breach")
	}

	// Unresolved ticket 90 minutes in: now is past both deadlines.
	if !sla.IsResponseBreached(createdAt, nil) || !sla.IsResolutionBreached(createdAt, nil) {
		t.Fatal("nil markers must fall back to the current time")
	}
}

func TestSLAUpdatesRevalidate(t *testing.T) {
	sla, err := NewSLA("area-1", PriorityLow, 30, 60)
	if err != nil {
		t.Fatalf("NewSLA: %v", err)
	}

	if err := sla.UpdateResponseTime(60); err == nil {
		t.Fatal("raising response to the resolution budget must fail")
	}
	if err := sla.UpdateResolutionTime(30); err == nil {
		t.Fatal("lowering resolution to the response budget must fail")
	}
	if sla.ResponseTimeMinutes != 30 || sla.ResolutionTimeMinutes != 60 {
		t.Fatal("failed updates must not mutate budgets")
	}

	if err := sla.UpdateBudgets(45, 90); err != nil {
		t.Fatalf("UpdateBudgets: %v", err)
	}
	if sla.ResponseTimeMinutes != 45 || sla.ResolutionTimeMinutes != 90 {
		t.Fatal("UpdateBudgets did not apply both fields")
	}
	if err := sla.UpdateBudgets(90, 45); err == nil {
		t.Fatal("inverted budgets must fail atomically")
	}
	if sla.ResponseTimeMinutes != 45 || sla.ResolutionTimeMinutes != 90 {
		t.Fatal("failed UpdateBudgets must leave both fields untouched")
	}
}

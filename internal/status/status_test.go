package status

import (
	"testing"

	"voice-orders/pkg/models"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    bool
	}{
		{"new to preparing", models.StatusNew, models.StatusPreparing, true},
		{"new to rejected", models.StatusNew, models.StatusRejected, true},
		{"preparing to delivered", models.StatusPreparing, models.StatusDelivered, true},
		{"new to delivered skips preparing", models.StatusNew, models.StatusDelivered, false},
		{"preparing to new moves backward", models.StatusPreparing, models.StatusNew, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusRejected, false},
		{"rejected is terminal", models.StatusRejected, models.StatusPreparing, false},
		{"unknown current state", "cooking", models.StatusDelivered, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ValidTransition(test.current, test.target); got != test.want {
				t.Errorf("ValidTransition(%q, %q) = %v, want %v", test.current, test.target, got, test.want)
			}
		})
	}
}

func TestValidTarget(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{models.StatusPreparing, true},
		{models.StatusDelivered, true},
		{models.StatusRejected, true},
		{models.StatusNew, false},
		{"cancelled", false},
		{"", false},
		{"PREPARING", false},
	}

	for _, test := range tests {
		t.Run(test.target, func(t *testing.T) {
			if got := ValidTarget(test.target); got != test.want {
				t.Errorf("ValidTarget(%q) = %v, want %v", test.target, got, test.want)
			}
		})
	}
}

func TestErrInvalidTargetListsAllowedValues(t *testing.T) {
	got := ErrInvalidTarget.Error()
	want := "invalid status, must be one of: preparing, delivered, rejected"
	if got != want {
		t.Errorf("ErrInvalidTarget = %q, want %q", got, want)
	}
}

package models

import "testing"

func TestWorkshopIsVisible(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		status   WorkshopStatus
		want     bool
	}{
		{"both set", true, StatusApproved, true},
		{"legacy flag only", true, StatusPending, true},
		{"status only", false, StatusApproved, true},
		{"pending", false, StatusPending, false},
		{"rejected", false, StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Workshop{Approved: tt.approved, Status: tt.status}
			if got := w.IsVisible(); got != tt.want {
				t.Errorf("IsVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory("Creatividad y artes") {
		t.Error("known category rejected")
	}
	if ValidCategory("Astrología") {
		t.Error("unknown category accepted")
	}
	if ValidCategory("") {
		t.Error("empty category accepted")
	}
}

package handlers

import (
	"testing"

	"tallerradar/internal/models"
)

func TestBuildWorkshop(t *testing.T) {
	t.Run("multi-date submission without a date uses the first day", func(t *testing.T) {
		in := validInput()
		in.DateType = string(models.DateTypeMultiple)
		in.Date = ""
		in.MultipleDates = []string{"2025-11-04", "2025-11-11"}

		w := buildWorkshop(in)

		if w.Date != "2025-11-04" {
			t.Errorf("date: got %q, want 2025-11-04", w.Date)
		}
		if len(w.MultipleDates) != 2 {
			t.Errorf("multiple dates: got %v", w.MultipleDates)
		}
	})

	t.Run("explicit date is kept over the listed days", func(t *testing.T) {
		in := validInput()
		in.DateType = string(models.DateTypeMultiple)
		in.Date = "2025-12-01"
		in.MultipleDates = []string{"2025-11-04"}

		w := buildWorkshop(in)

		if w.Date != "2025-12-01" {
			t.Errorf("date: got %q, want 2025-12-01", w.Date)
		}
	})

	t.Run("address derivations only for in-person workshops", func(t *testing.T) {
		in := validInput()
		in.Modality = string(models.ModalityOnline)
		in.Address = "Av. Italia 1234"
		in.Commune = "Providencia"
		in.City = "Santiago"

		w := buildWorkshop(in)

		if w.Address != "" || w.FullAddress != "" || w.MapURL != "" {
			t.Errorf("online workshop should carry no address fields: %+v", w)
		}
	})
}

package handlers

import "testing"

// validInput returns a submission that passes every check; tests mutate
// single fields to probe each rule.
func validInput() *workshopInput {
	return &workshopInput{
		Name:        "Taller de cerámica",
		Category:    []string{"Creatividad y artes"},
		Modality:    "presencial",
		DateType:    "single",
		Date:        "2025-11-04",
		Time:        "18:30",
		Price:       15000,
		Description: "Un taller introductorio de cerámica en torno.",
	}
}

func TestValidateSubmissionAccepts(t *testing.T) {
	if msg := validateSubmission(validInput()); msg != "" {
		t.Errorf("valid input rejected: %q", msg)
	}
}

func TestValidateSubmissionRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*workshopInput)
	}{
		{"short name", func(in *workshopInput) { in.Name = " a " }},
		{"no category", func(in *workshopInput) { in.Category = nil }},
		{"unknown category", func(in *workshopInput) { in.Category = []string{"Magia"} }},
		{"bad modality", func(in *workshopInput) { in.Modality = "híbrido" }},
		{"single without date", func(in *workshopInput) { in.Date = "" }},
		{"single with garbage date", func(in *workshopInput) { in.Date = "pronto" }},
		{"bad date type", func(in *workshopInput) { in.DateType = "sometimes" }},
		{"negative price", func(in *workshopInput) { in.Price = -100 }},
		{"short description", func(in *workshopInput) { in.Description = "corto" }},
		{"time not on half hour", func(in *workshopInput) { in.Time = "18:15" }},
		{"time not a time", func(in *workshopInput) { in.Time = "tarde" }},
		{"age zero", func(in *workshopInput) { age := 0; in.AgeMin = &age }},
		{"age too high", func(in *workshopInput) { age := 120; in.AgeMin = &age }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			if msg := validateSubmission(in); msg == "" {
				t.Error("expected a validation error, got none")
			}
		})
	}
}

func TestValidateSubmissionDateTypes(t *testing.T) {
	t.Run("multiple needs one valid date", func(t *testing.T) {
		in := validInput()
		in.DateType = "multiple"
		in.Date = ""
		in.MultipleDates = []string{"no", "2025-12-01"}
		if msg := validateSubmission(in); msg != "" {
			t.Errorf("unexpected error: %q", msg)
		}

		in.MultipleDates = []string{"no", "tampoco"}
		if msg := validateSubmission(in); msg == "" {
			t.Error("expected error when no date parses")
		}
	})

	t.Run("recurring needs days and a start", func(t *testing.T) {
		in := validInput()
		in.DateType = "recurring"
		in.Date = ""
		in.RecurringDays = []string{"martes"}
		in.RecurringStart = "2025-11-04"
		if msg := validateSubmission(in); msg != "" {
			t.Errorf("unexpected error: %q", msg)
		}

		in.RecurringStart = ""
		if msg := validateSubmission(in); msg == "" {
			t.Error("expected error without a start date")
		}
	})
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "18:00", "23:30"}
	invalid := []string{"24:00", "18:15", "9:30", "18h30", "", "18:60"}

	for _, v := range valid {
		if !validTime(v) {
			t.Errorf("validTime(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if validTime(v) {
			t.Errorf("validTime(%q) = true, want false", v)
		}
	}
}

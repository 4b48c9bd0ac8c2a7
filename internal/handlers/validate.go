package handlers

import (
	"strings"
	"unicode/utf8"

	"tallerradar/internal/dates"
	"tallerradar/internal/models"
)

// Validation limits for submission fields.
const (
	minNameLen        = 2
	maxNameLen        = 200
	minDescriptionLen = 10
	maxDescriptionLen = 5_000
	minAge            = 1
	maxAge            = 99
)

// workshopInput is the request body accepted by the submission form and
// the moderation console's direct-create endpoint.
type workshopInput struct {
	Name                         string   `json:"name"`
	Category                     []string `json:"category"`
	Modality                     string   `json:"modality"`
	Address                      string   `json:"address"`
	Commune                      string   `json:"commune"`
	City                         string   `json:"city"`
	DateType                     string   `json:"dateType"`
	Date                         string   `json:"date"`
	MultipleDates                []string `json:"multipleDates"`
	IsRecurring                  bool     `json:"isRecurring"`
	RecurringDays                []string `json:"recurringDays"`
	RecurringStart               string   `json:"recurringStart"`
	RecurringEnd                 string   `json:"recurringEnd"`
	NumberOfClasses              *int     `json:"numberOfClasses"`
	Time                         string   `json:"time"`
	Price                        int      `json:"price"`
	ConfirmPriceOnRegistration   bool     `json:"confirmPriceOnRegistration"`
	ConfirmAddressOnRegistration bool     `json:"confirmAddressOnRegistration"`
	AgeMin                       *int     `json:"ageMin"`
	Contact                      string   `json:"contact"`
	Social                       []string `json:"social"`
	Image                        string   `json:"image"`
	Description                  string   `json:"description"`
}

// validateSubmission checks a workshop submission and returns the first
// error found, or "". Messages are in Spanish because they are shown
// verbatim on the public form.
func validateSubmission(in *workshopInput) string {
	name := strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(name) < minNameLen {
		return "El nombre debe tener al menos 2 caracteres."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "El nombre es demasiado largo (máximo 200 caracteres)."
	}

	if len(in.Category) == 0 {
		return "Debes elegir una categoría."
	}
	for _, c := range in.Category {
		if !models.ValidCategory(c) {
			return "Categoría no válida: " + c
		}
	}

	switch models.Modality(in.Modality) {
	case models.ModalityPresencial, models.ModalityOnline:
	default:
		return "La modalidad debe ser presencial u online."
	}

	if msg := validateDates(in); msg != "" {
		return msg
	}

	if in.Time != "" && !validTime(in.Time) {
		return "La hora debe estar en formato HH:MM, en punto o y media."
	}

	if in.Price < 0 {
		return "El precio no puede ser negativo."
	}

	if in.AgeMin != nil && (*in.AgeMin < minAge || *in.AgeMin > maxAge) {
		return "La edad mínima debe estar entre 1 y 99."
	}

	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) < minDescriptionLen {
		return "La descripción debe tener al menos 10 caracteres."
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "La descripción es demasiado larga (máximo 5.000 caracteres)."
	}

	return ""
}

// validateDates enforces the fields required by each date type.
func validateDates(in *workshopInput) string {
	switch models.DateType(in.DateType) {
	case models.DateTypeSingle:
		if dates.CanonicalDay(in.Date) == "" {
			return "Debes indicar una fecha válida."
		}
	case models.DateTypeMultiple:
		valid := 0
		for _, d := range in.MultipleDates {
			if dates.CanonicalDay(d) != "" {
				valid++
			}
		}
		if valid == 0 {
			return "Debes indicar al menos una fecha válida."
		}
	case models.DateTypeRecurring:
		if len(in.RecurringDays) == 0 {
			return "Debes indicar los días en que se repite el taller."
		}
		if dates.CanonicalDay(in.RecurringStart) == "" {
			return "Debes indicar la fecha de inicio del taller recurrente."
		}
	default:
		return "Tipo de fecha no válido."
	}
	return ""
}

// validTime accepts HH:MM with minutes aligned to the half hour, matching
// the options offered by the form's time picker.
func validTime(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	hh, mm := v[:2], v[3:]
	if hh < "00" || hh > "23" {
		return false
	}
	for _, c := range hh + mm {
		if c < '0' || c > '9' {
			return false
		}
	}
	return mm == "00" || mm == "30"
}

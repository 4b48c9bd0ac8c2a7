// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Modality says whether a workshop happens at a physical location or online.
type Modality string

const (
	ModalityPresencial Modality = "presencial"
	ModalityOnline     Modality = "online"
)

// DateType describes which date fields are authoritative for a workshop.
type DateType string

const (
	DateTypeSingle    DateType = "single"
	DateTypeMultiple  DateType = "multiple"
	DateTypeRecurring DateType = "recurring"
)

// WorkshopStatus represents the moderation state of a workshop.
type WorkshopStatus string

const (
	StatusPending  WorkshopStatus = "pending"
	StatusApproved WorkshopStatus = "approved"
	StatusRejected WorkshopStatus = "rejected"
)

// Categories is the fixed list of workshop categories offered on the
// submission form. Category is stored as a list for forward compatibility
// even though the form currently selects a single value.
var Categories = []string{
	"Creatividad y artes",
	"Cocina y alimentación",
	"Bienestar y salud",
	"Naturaleza y sustentabilidad",
	"Desarrollo personal y profesional",
	"Actividad física",
	"Tecnología y diseño",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Workshop is a single workshop listing. Date fields use calendar-day
// strings (YYYY-MM-DD) anchored to America/Santiago; see the dates package.
//
// Status and Approved are kept in parallel for backward compatibility:
// older writers set only one of the two, so public visibility must be
// derived from both (IsVisible).
type Workshop struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    []string  `json:"category"`
	Modality    Modality  `json:"modality"`
	Address     string    `json:"address,omitempty"`
	Commune     string    `json:"commune,omitempty"`
	City        string    `json:"city,omitempty"`
	FullAddress string    `json:"fullAddress,omitempty"`

	DateType        DateType `json:"dateType"`
	Date            string   `json:"date"`
	MultipleDates   []string `json:"multipleDates,omitempty"`
	IsRecurring     bool     `json:"isRecurring"`
	RecurringDays   []string `json:"recurringDays,omitempty"`
	RecurringStart  string   `json:"recurringStart,omitempty"`
	RecurringEnd    string   `json:"recurringEnd,omitempty"`
	NumberOfClasses *int     `json:"numberOfClasses,omitempty"`
	Time            string   `json:"time"`

	Price                        int  `json:"price"`
	ConfirmPriceOnRegistration   bool `json:"confirmPriceOnRegistration"`
	ConfirmAddressOnRegistration bool `json:"confirmAddressOnRegistration"`
	AgeMin                       *int `json:"ageMin,omitempty"`

	Contact     string   `json:"contact,omitempty"`
	Social      []string `json:"social,omitempty"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description"`
	MapURL      string   `json:"mapUrl,omitempty"`

	Status    WorkshopStatus `json:"status"`
	Approved  bool           `json:"approved"`
	CreatedAt time.Time      `json:"createdAt"`
	CreatedBy *uuid.UUID     `json:"createdBy,omitempty"`
}

// IsVisible reports whether the workshop is publicly listed. Both legacy
// flags are checked because different producers set one or the other.
func (w *Workshop) IsVisible() bool {
	return w.Approved || w.Status == StatusApproved
}

// IsPending reports whether the workshop is waiting for moderation.
func (w *Workshop) IsPending() bool {
	return w.Status == StatusPending
}

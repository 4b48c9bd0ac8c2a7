// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Taller Radar
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tallerradar/internal/models"
)

// workshopColumns is the shared SELECT/RETURNING column list. The list
// collections (category, dates, social) are stored as JSONB.
const workshopColumns = `
	id, name, category, modality, address, commune, city, full_address,
	date_type, date, multiple_dates, is_recurring, recurring_days,
	recurring_start, recurring_end, number_of_classes, time, price,
	confirm_price_on_registration, confirm_address_on_registration, age_min,
	contact, social, image, description, map_url, status, approved,
	created_at, created_by`

// WorkshopStore handles all workshop-related database operations.
type WorkshopStore struct {
	db *sql.DB
}

// NewWorkshopStore creates a new WorkshopStore with the given database connection.
func NewWorkshopStore(db *sql.DB) *WorkshopStore {
	return &WorkshopStore{db: db}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanWorkshop.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkshop reads one workshop row, decoding the JSONB collections.
func scanWorkshop(row rowScanner) (*models.Workshop, error) {
	w := &models.Workshop{}
	var category, multipleDates, recurringDays, social []byte

	err := row.Scan(
		&w.ID, &w.Name, &category, &w.Modality, &w.Address, &w.Commune,
		&w.City, &w.FullAddress, &w.DateType, &w.Date, &multipleDates,
		&w.IsRecurring, &recurringDays, &w.RecurringStart, &w.RecurringEnd,
		&w.NumberOfClasses, &w.Time, &w.Price, &w.ConfirmPriceOnRegistration,
		&w.ConfirmAddressOnRegistration, &w.AgeMin, &w.Contact, &social,
		&w.Image, &w.Description, &w.MapURL, &w.Status, &w.Approved,
		&w.CreatedAt, &w.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeList(category, &w.Category); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	if err := decodeList(multipleDates, &w.MultipleDates); err != nil {
		return nil, fmt.Errorf("decode multiple_dates: %w", err)
	}
	if err := decodeList(recurringDays, &w.RecurringDays); err != nil {
		return nil, fmt.Errorf("decode recurring_days: %w", err)
	}
	if err := decodeList(social, &w.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}

	return w, nil
}

// encodeList marshals a string list for a JSONB column, storing nil as [].
func encodeList(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

// decodeList unmarshals a JSONB column into a string list. Empty lists
// stay nil so they are omitted from JSON responses.
func decodeList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if len(out) > 0 {
		*dst = out
	}
	return nil
}

// queryWorkshops runs a SELECT returning workshop rows.
func (s *WorkshopStore) queryWorkshops(query string, args ...any) ([]models.Workshop, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Workshop
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workshop: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// List returns every workshop regardless of status, newest first.
func (s *WorkshopStore) List() ([]models.Workshop, error) {
	out, err := s.queryWorkshops(`SELECT` + workshopColumns + ` FROM workshops ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	return out, nil
}

// ListVisible returns the publicly visible set: records approved through
// either the legacy boolean or the status field.
func (s *WorkshopStore) ListVisible() ([]models.Workshop, error) {
	out, err := s.queryWorkshops(`SELECT` + workshopColumns + `
		FROM workshops
		WHERE approved = TRUE OR status = $1
		ORDER BY created_at DESC`, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list visible workshops: %w", err)
	}
	return out, nil
}

// ListPending returns the moderation queue in submission order.
func (s *WorkshopStore) ListPending() ([]models.Workshop, error) {
	out, err := s.queryWorkshops(`SELECT` + workshopColumns + `
		FROM workshops
		WHERE status = $1
		ORDER BY created_at ASC`, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending workshops: %w", err)
	}
	return out, nil
}

// FindByID retrieves a workshop by its UUID. Returns nil if not found.
func (s *WorkshopStore) FindByID(id uuid.UUID) (*models.Workshop, error) {
	row := s.db.QueryRow(`SELECT` + workshopColumns + ` FROM workshops WHERE id = $1`, id)
	w, err := scanWorkshop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find workshop by id: %w", err)
	}
	return w, nil
}

// Create inserts a new workshop and returns it with the generated ID and
// creation timestamp.
func (s *WorkshopStore) Create(w *models.Workshop) (*models.Workshop, error) {
	category, err := encodeList(w.Category)
	if err != nil {
		return nil, fmt.Errorf("encode category: %w", err)
	}
	multipleDates, err := encodeList(w.MultipleDates)
	if err != nil {
		return nil, fmt.Errorf("encode multiple_dates: %w", err)
	}
	recurringDays, err := encodeList(w.RecurringDays)
	if err != nil {
		return nil, fmt.Errorf("encode recurring_days: %w", err)
	}
	social, err := encodeList(w.Social)
	if err != nil {
		return nil, fmt.Errorf("encode social: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO workshops (
			name, category, modality, address, commune, city, full_address,
			date_type, date, multiple_dates, is_recurring, recurring_days,
			recurring_start, recurring_end, number_of_classes, time, price,
			confirm_price_on_registration, confirm_address_on_registration,
			age_min, contact, social, image, description, map_url, status,
			approved, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
			$27, $28
		)
		RETURNING` + workshopColumns,
		w.Name, category, w.Modality, w.Address, w.Commune, w.City,
		w.FullAddress, w.DateType, w.Date, multipleDates, w.IsRecurring,
		recurringDays, w.RecurringStart, w.RecurringEnd, w.NumberOfClasses,
		w.Time, w.Price, w.ConfirmPriceOnRegistration,
		w.ConfirmAddressOnRegistration, w.AgeMin, w.Contact, social,
		w.Image, w.Description, w.MapURL, w.Status, w.Approved, w.CreatedBy,
	)

	created, err := scanWorkshop(row)
	if err != nil {
		return nil, fmt.Errorf("create workshop: %w", err)
	}
	return created, nil
}

// Approve marks a workshop publicly visible. Re-approving is a no-op in
// effect; both legacy flags are set so every reader agrees.
func (s *WorkshopStore) Approve(id uuid.UUID) error {
	return s.setStatus(id, models.StatusApproved, true)
}

// Reject removes a workshop from the moderation queue without deleting it.
func (s *WorkshopStore) Reject(id uuid.UUID) error {
	return s.setStatus(id, models.StatusRejected, false)
}

func (s *WorkshopStore) setStatus(id uuid.UUID, status models.WorkshopStatus, approved bool) error {
	res, err := s.db.Exec(`
		UPDATE workshops SET status = $1, approved = $2 WHERE id = $3
	`, status, approved, id)
	if err != nil {
		return fmt.Errorf("set workshop status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set workshop status: %w", sql.ErrNoRows)
	}
	return nil
}

// Delete removes a workshop permanently. The only irreversible mutation
// in the system; callers must confirm before invoking it.
func (s *WorkshopStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM workshops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete workshop: %w", sql.ErrNoRows)
	}
	return nil
}

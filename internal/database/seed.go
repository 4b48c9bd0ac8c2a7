// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"tallerradar/internal/dates"
	"tallerradar/internal/models"
	"tallerradar/internal/store"
)

// Seed creates the initial admin account and, when the listing is empty,
// a couple of sample workshops so the browse view has content during
// development. It is a no-op if data already exists.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	users := store.NewUserStore(db)

	n, err := users.Count()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n == 0 {
		if adminEmail == "" || adminPassword == "" {
			slog.Warn("no admin credentials configured, skipping admin seed")
		} else {
			if _, err := users.Create(adminEmail, adminPassword, "Taller Radar"); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			slog.Info("seeded admin account", "email", adminEmail)
		}
	}

	workshops := store.NewWorkshopStore(db)
	existing, err := workshops.List()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	nextWeek := dates.FromTime(time.Now().AddDate(0, 0, 7))
	samples := []models.Workshop{
		{
			Name:        "Cerámica para principiantes",
			Category:    []string{"Creatividad y artes"},
			Modality:    models.ModalityPresencial,
			Address:     "Av. Italia 1234",
			Commune:     "Providencia",
			City:        "Santiago",
			DateType:    models.DateTypeSingle,
			Date:        nextWeek,
			Time:        "18:30",
			Price:       15000,
			Contact:     "hola@tallerradar.cl",
			Description: "Taller introductorio de torno y modelado en greda.",
			Status:      models.StatusApproved,
			Approved:    true,
		},
		{
			Name:        "Huerto urbano en casa",
			Category:    []string{"Naturaleza y sustentabilidad"},
			Modality:    models.ModalityOnline,
			DateType:    models.DateTypeSingle,
			Date:        nextWeek,
			Time:        "10:00",
			Price:       0,
			Contact:     "hola@tallerradar.cl",
			Description: "Aprende a armar un huerto en tu balcón con materiales reciclados.",
			Status:      models.StatusApproved,
			Approved:    true,
		},
	}

	for i := range samples {
		if _, err := workshops.Create(&samples[i]); err != nil {
			return fmt.Errorf("seed workshop: %w", err)
		}
	}

	slog.Info("seeded sample workshops", "count", len(samples))
	return nil
}

// Package main is a one-shot command that loads a JSON file of scraped
// posts into the moderation queue. Unlike the ingestion webhook it does
// not de-duplicate; it is meant for seeding a fresh environment from an
// exported batch.
//
// Usage:
//
//	bulkupload -file talleres.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tallerradar/internal/config"
	"tallerradar/internal/database"
	"tallerradar/internal/models"
	"tallerradar/internal/store"
)

// record mirrors the export format of the scraper: one object per post,
// Spanish status values included.
type record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Creator     string `json:"creator"`
	Link        string `json:"link"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

func main() {
	file := flag.String("file", "talleres.json", "JSON file with scraped posts")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := run(*file); err != nil {
		slog.Error("bulk upload failed", "error", err)
		os.Exit(1)
	}
}

func run(file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	ingestStore := store.NewIngestStore(db)

	inserted := 0
	for i := range records {
		post := &models.ScrapedPost{
			Title:       records[i].Title,
			Description: records[i].Description,
			Image:       records[i].Image,
			Creator:     records[i].Creator,
			Link:        records[i].Link,
			Date:        records[i].Date,
			Category:    records[i].Category,
			Status:      records[i].Status,
			Source:      models.SourceBulk,
			Approved:    false,
		}
		if post.Category == "" {
			post.Category = "Por revisar"
		}
		if post.Status == "" {
			post.Status = "pendiente"
		}

		if _, err := ingestStore.Create(post); err != nil {
			return fmt.Errorf("insert record %d (%s): %w", i, records[i].Link, err)
		}
		inserted++
	}

	slog.Info("bulk upload finished", "file", file, "inserted", inserted)
	return nil
}

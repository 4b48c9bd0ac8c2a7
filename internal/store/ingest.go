// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"tallerradar/internal/models"
)

// IngestStore handles the scraped-post moderation queue fed by the
// ingestion webhook and the bulk-upload tool.
type IngestStore struct {
	db *sql.DB
}

// NewIngestStore creates a new IngestStore with the given database connection.
func NewIngestStore(db *sql.DB) *IngestStore {
	return &IngestStore{db: db}
}

// FindByLink retrieves a scraped post by its exact source link.
// Returns nil if not found; the webhook uses this for de-duplication.
func (s *IngestStore) FindByLink(link string) (*models.ScrapedPost, error) {
	p := &models.ScrapedPost{}
	err := s.db.QueryRow(`
		SELECT id, title, description, image, creator, link, date, category, status, source, approved, created_at
		FROM scraped_posts WHERE link = $1
	`, link).Scan(
		&p.ID, &p.Title, &p.Description, &p.Image, &p.Creator, &p.Link,
		&p.Date, &p.Category, &p.Status, &p.Source, &p.Approved, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find scraped post by link: %w", err)
	}
	return p, nil
}

// Create inserts a scraped post into the queue and returns it with the
// generated ID.
func (s *IngestStore) Create(p *models.ScrapedPost) (*models.ScrapedPost, error) {
	created := &models.ScrapedPost{}
	err := s.db.QueryRow(`
		INSERT INTO scraped_posts (title, description, image, creator, link, date, category, status, source, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, description, image, creator, link, date, category, status, source, approved, created_at
	`, p.Title, p.Description, p.Image, p.Creator, p.Link, p.Date,
		p.Category, p.Status, p.Source, p.Approved,
	).Scan(
		&created.ID, &created.Title, &created.Description, &created.Image,
		&created.Creator, &created.Link, &created.Date, &created.Category,
		&created.Status, &created.Source, &created.Approved, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create scraped post: %w", err)
	}
	return created, nil
}

// List returns the scraped-post queue, newest first.
func (s *IngestStore) List() ([]models.ScrapedPost, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, image, creator, link, date, category, status, source, approved, created_at
		FROM scraped_posts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list scraped posts: %w", err)
	}
	defer rows.Close()

	var out []models.ScrapedPost
	for rows.Next() {
		var p models.ScrapedPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Image, &p.Creator, &p.Link,
			&p.Date, &p.Category, &p.Status, &p.Source, &p.Approved, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan scraped post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

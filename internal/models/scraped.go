// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Scraped-post sources.
const (
	SourceApify = "apify"
	SourceBulk  = "bulk"
)

// ScrapedPost is a social-media post imported into the moderation queue,
// either by the ingestion webhook or by the bulk-upload tool. It keeps the
// original scraper vocabulary (Spanish status, "Por revisar" category)
// because the moderation tooling grew around those values.
type ScrapedPost struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Creator     string    `json:"creator"`
	Link        string    `json:"link"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tallerradar/internal/dates"
	"tallerradar/internal/models"
	"tallerradar/internal/store"
)

// Scraped-post defaults. The scraper vocabulary is Spanish and the
// moderation tooling matches on these exact values.
const (
	scrapedDefaultTitle  = "Sin título"
	scrapedCategory      = "Por revisar"
	scrapedStatusPending = "pendiente"

	// maxScrapedTitleRunes is where captions are cut for the queue title.
	maxScrapedTitleRunes = 60
)

// Ingest handles the webhook that receives scraper results.
type Ingest struct {
	store *store.IngestStore
	token string
}

// NewIngest creates the ingestion handler. token guards the webhook;
// empty means unauthenticated (development only, enforced by config).
func NewIngest(ingestStore *store.IngestStore, token string) *Ingest {
	return &Ingest{store: ingestStore, token: token}
}

// apifyPost is one scraped Instagram post as delivered by the Apify
// actor. Only the fields the queue uses are decoded.
type apifyPost struct {
	Caption       string `json:"caption"`
	PostURL       string `json:"postUrl"`
	DisplayURL    string `json:"displayUrl"`
	OwnerUsername string `json:"ownerUsername"`
	Timestamp     string `json:"timestamp"`
}

// Apify serves POST /api/v1/ingest/apify. The body is either a bare
// array of posts or an object with a "data" array, depending on how the
// actor's webhook is configured. Posts already in the queue (matched by
// link) are skipped, so webhook retries do not duplicate.
func (h *Ingest) Apify(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && !h.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "invalid ingest token",
		})
		return
	}

	posts, err := decodeApifyBody(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	imported, skipped := 0, 0
	for i := range posts {
		if posts[i].PostURL != "" {
			existing, err := h.store.FindByLink(posts[i].PostURL)
			if err != nil {
				slog.Error("ingest dedup lookup failed", "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"error":   "database error",
				})
				return
			}
			if existing != nil {
				skipped++
				continue
			}
		}

		if _, err := h.store.Create(mapApifyPost(&posts[i])); err != nil {
			slog.Error("ingest insert failed", "error", err, "link", posts[i].PostURL)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "database error",
			})
			return
		}
		imported++
	}

	slog.Info("ingest batch processed", "imported", imported, "skipped", skipped)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imported": imported,
		"skipped":  skipped,
	})
}

// authorized accepts the token either as a bearer token or in the
// X-Ingest-Token header.
func (h *Ingest) authorized(r *http.Request) bool {
	if r.Header.Get("X-Ingest-Token") == h.token {
		return true
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") == h.token
}

// decodeApifyBody accepts both webhook body shapes.
func decodeApifyBody(r *http.Request) ([]apifyPost, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errInvalidBody
	}

	var posts []apifyPost
	if err := json.Unmarshal(raw, &posts); err == nil {
		return posts, nil
	}

	var wrapped struct {
		Data []apifyPost `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	return nil, errInvalidBody
}

var errInvalidBody = errors.New("invalid request body")

// mapApifyPost converts a scraped post into a queue record. The caption
// doubles as both the provisional title (truncated) and the description.
func mapApifyPost(p *apifyPost) *models.ScrapedPost {
	title := strings.TrimSpace(p.Caption)
	if runes := []rune(title); len(runes) > maxScrapedTitleRunes {
		title = string(runes[:maxScrapedTitleRunes])
	}
	if title == "" {
		title = scrapedDefaultTitle
	}

	return &models.ScrapedPost{
		Title:       title,
		Description: strings.TrimSpace(p.Caption),
		Image:       p.DisplayURL,
		Creator:     p.OwnerUsername,
		Link:        p.PostURL,
		Date:        dates.CanonicalDay(p.Timestamp),
		Category:    scrapedCategory,
		Status:      scrapedStatusPending,
		Source:      models.SourceApify,
		Approved:    false,
	}
}

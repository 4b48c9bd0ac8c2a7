// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tallerradar/internal/cache"
	"tallerradar/internal/dates"
	"tallerradar/internal/events"
	"tallerradar/internal/middleware"
	"tallerradar/internal/models"
	"tallerradar/internal/storage"
	"tallerradar/internal/store"
)

// Admin groups handlers for the moderation console: the pending queue,
// approve/reject/delete, direct creation, and the scraped-post queue.
type Admin struct {
	workshops     *store.WorkshopStore
	ingest        *store.IngestStore
	listCache     *cache.ListCache
	bus           *events.Bus
	storageClient *storage.Client
}

// NewAdmin creates a new Admin handler group. storageClient may be nil
// if S3 is not configured; direct creation with an image then fails with
// a configuration error instead of silently dropping the file.
func NewAdmin(workshops *store.WorkshopStore, ingest *store.IngestStore, listCache *cache.ListCache, bus *events.Bus, storageClient *storage.Client) *Admin {
	return &Admin{
		workshops:     workshops,
		ingest:        ingest,
		listCache:     listCache,
		bus:           bus,
		storageClient: storageClient,
	}
}

// Pending serves GET /admin/api/workshops/pending: the moderation queue
// in submission order.
func (a *Admin) Pending(w http.ResponseWriter, r *http.Request) {
	records, err := a.workshops.ListPending()
	if err != nil {
		slog.Error("list pending workshops failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load the pending queue")
		return
	}

	today := dates.Today()
	views := make([]workshopView, 0, len(records))
	for _, item := range records {
		views = append(views, newWorkshopView(item, today))
	}
	writeJSON(w, http.StatusOK, map[string]any{"workshops": views})
}

// List serves GET /admin/api/workshops: every workshop regardless of
// status, newest first.
func (a *Admin) List(w http.ResponseWriter, r *http.Request) {
	records, err := a.workshops.List()
	if err != nil {
		slog.Error("list workshops failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load workshops")
		return
	}

	today := dates.Today()
	views := make([]workshopView, 0, len(records))
	for _, item := range records {
		views = append(views, newWorkshopView(item, today))
	}
	writeJSON(w, http.StatusOK, map[string]any{"workshops": views})
}

// Approve serves POST /admin/api/workshops/{id}/approve. Approving an
// already approved workshop succeeds again with the same outcome.
func (a *Admin) Approve(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, a.workshops.Approve, events.KindApproved)
}

// Reject serves POST /admin/api/workshops/{id}/reject. The record is
// hidden but kept, so the decision can be revisited.
func (a *Admin) Reject(w http.ResponseWriter, r *http.Request) {
	a.moderate(w, r, a.workshops.Reject, events.KindRejected)
}

// moderate runs a status mutation and emits the change event.
func (a *Admin) moderate(w http.ResponseWriter, r *http.Request, mutate func(uuid.UUID) error, kind string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}

	if err := mutate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "workshop not found")
			return
		}
		slog.Error("workshop moderation failed", "error", err, "id", id, "action", kind)
		writeError(w, http.StatusInternalServerError, "could not update the workshop")
		return
	}

	a.listCache.Invalidate(r.Context())
	a.bus.Publish(r.Context(), kind, id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete serves DELETE /admin/api/workshops/{id}: the only permanent
// removal in the system. A stored image is cleaned up best-effort.
func (a *Admin) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}

	workshop, err := a.workshops.FindByID(id)
	if err != nil {
		slog.Error("find workshop failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete the workshop")
		return
	}
	if workshop == nil {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}

	if err := a.workshops.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "workshop not found")
			return
		}
		slog.Error("delete workshop failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not delete the workshop")
		return
	}

	if a.storageClient != nil && workshop.Image != "" {
		if key, ok := a.storageClient.ExtractKey(workshop.Image); ok {
			if err := a.storageClient.Delete(r.Context(), key); err != nil {
				slog.Warn("image cleanup failed", "error", err, "key", key)
			}
		}
	}

	a.listCache.Invalidate(r.Context())
	a.bus.Publish(r.Context(), events.KindDeleted, id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Create serves POST /admin/api/workshops: direct creation from the
// console. The record is approved immediately. Unlike the public form,
// an image that cannot be stored fails the request so the admin sees
// the problem instead of publishing a listing without its image.
func (a *Admin) Create(w http.ResponseWriter, r *http.Request) {
	in, imageURL, ok := a.parseCreate(w, r)
	if !ok {
		return
	}

	if msg := validateSubmission(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	workshop := buildWorkshop(in)
	if imageURL != "" {
		workshop.Image = imageURL
	}
	workshop.Status = models.StatusApproved
	workshop.Approved = true
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		workshop.CreatedBy = &sess.UserID
	}

	created, err := a.workshops.Create(workshop)
	if err != nil {
		slog.Error("create workshop failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save the workshop")
		return
	}

	a.listCache.Invalidate(r.Context())
	a.bus.Publish(r.Context(), events.KindCreated, created.ID)
	writeJSON(w, http.StatusCreated, newWorkshopView(*created, dates.Today()))
}

// parseCreate decodes a console creation request. Image failures are
// blocking here: when ok is false an error response has been written.
func (a *Admin) parseCreate(w http.ResponseWriter, r *http.Request) (in *workshopInput, imageURL string, ok bool) {
	in = &workshopInput{}

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return nil, "", false
		}
		return in, "", true
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return nil, "", false
	}
	if err := json.Unmarshal([]byte(r.FormValue("data")), in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return in, "", true
	}
	defer file.Close()

	if a.storageClient == nil {
		writeError(w, http.StatusInternalServerError,
			"image storage is not configured; set the S3 environment variables or create the workshop without an image")
		return nil, "", false
	}

	url, err := a.storageClient.UploadImage(r.Context(), header.Filename,
		header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		slog.Error("image upload failed", "error", err)
		if isPermissionErr(err) {
			writeError(w, http.StatusInternalServerError,
				"the storage credentials were rejected; check the S3 access key and bucket policy")
		} else {
			writeError(w, http.StatusInternalServerError, "could not upload the image")
		}
		return nil, "", false
	}

	return in, url, true
}

// isPermissionErr classifies S3 failures that stem from credentials or
// bucket policy rather than transient faults. The AWS SDK surfaces these
// as wrapped API error codes, so a substring check is the practical test.
func isPermissionErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "AccessDenied") ||
		strings.Contains(msg, "InvalidAccessKeyId") ||
		strings.Contains(msg, "SignatureDoesNotMatch") ||
		strings.Contains(msg, "StatusCode: 403")
}

// Scraped serves GET /admin/api/scraped: the imported-post queue,
// newest first.
func (a *Admin) Scraped(w http.ResponseWriter, r *http.Request) {
	posts, err := a.ingest.List()
	if err != nil {
		slog.Error("list scraped posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load scraped posts")
		return
	}
	if posts == nil {
		posts = []models.ScrapedPost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tallerradar/internal/cache"
	"tallerradar/internal/dates"
	"tallerradar/internal/events"
	"tallerradar/internal/models"
	"tallerradar/internal/storage"
	"tallerradar/internal/store"
	"tallerradar/internal/visibility"
)

// Public groups handlers for the public browse API and the organizer
// submission form. The browse listing reads the visible set through the
// Valkey list cache and filters it in memory per request.
type Public struct {
	workshops     *store.WorkshopStore
	listCache     *cache.ListCache
	bus           *events.Bus
	storageClient *storage.Client
}

// NewPublic creates a new Public handler group. storageClient may be nil
// if S3 is not configured; submissions then keep their image link as-is.
func NewPublic(workshops *store.WorkshopStore, listCache *cache.ListCache, bus *events.Bus, storageClient *storage.Client) *Public {
	return &Public{
		workshops:     workshops,
		listCache:     listCache,
		bus:           bus,
		storageClient: storageClient,
	}
}

// workshopView is a workshop plus the derived date fields the listing
// sorts and labels by.
type workshopView struct {
	models.Workshop
	NextDate        string   `json:"nextDate"`
	NextDateDisplay string   `json:"nextDateDisplay"`
	AllDates        []string `json:"allDates,omitempty"`
}

func newWorkshopView(w models.Workshop, today string) workshopView {
	next := visibility.NextDate(&w, today)
	return workshopView{
		Workshop:        w,
		NextDate:        next,
		NextDateDisplay: dates.Display(next),
		AllDates:        visibility.AllDates(&w),
	}
}

// visibleSet returns the publicly visible workshops, preferring the
// Valkey cache and falling back to the database.
func (p *Public) visibleSet(r *http.Request) ([]models.Workshop, error) {
	ctx := r.Context()
	if cached, ok := p.listCache.Get(ctx); ok {
		return cached, nil
	}

	records, err := p.workshops.ListVisible()
	if err != nil {
		return nil, err
	}
	p.listCache.Set(ctx, records)
	return records, nil
}

// List serves GET /api/v1/workshops: the filtered, date-ordered,
// paginated public listing.
func (p *Public) List(w http.ResponseWriter, r *http.Request) {
	records, err := p.visibleSet(r)
	if err != nil {
		slog.Error("list visible workshops failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load workshops")
		return
	}

	q := visibility.Query{
		Category:     r.URL.Query().Get("category"),
		PriceRange:   r.URL.Query().Get("priceRange"),
		Modality:     r.URL.Query().Get("modality"),
		City:         r.URL.Query().Get("city"),
		SelectedDate: dates.CanonicalDay(r.URL.Query().Get("date")),
	}

	today := dates.Today()
	filtered := visibility.Filter(records, q, today)
	totalPages := visibility.TotalPages(len(filtered))

	paginator := visibility.NewPaginator()
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			// Out-of-range pages are ignored and page 1 is served.
			paginator.SetPage(n, totalPages)
		}
	}

	page := paginator.Slice(filtered)
	views := make([]workshopView, 0, len(page))
	for _, item := range page {
		views = append(views, newWorkshopView(item, today))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workshops":  views,
		"page":       paginator.Page(),
		"totalPages": totalPages,
		"total":      len(filtered),
	})
}

// Detail serves GET /api/v1/workshops/{id}. Unapproved records 404 so
// their existence is not leaked.
func (p *Public) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}

	workshop, err := p.workshops.FindByID(id)
	if err != nil {
		slog.Error("find workshop failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "could not load workshop")
		return
	}
	if workshop == nil || !workshop.IsVisible() {
		writeError(w, http.StatusNotFound, "workshop not found")
		return
	}

	writeJSON(w, http.StatusOK, newWorkshopView(*workshop, dates.Today()))
}

// Filters serves GET /api/v1/workshops/filters: the option sets the
// browse UI offers. Cities and dates are derived from the visible set.
func (p *Public) Filters(w http.ResponseWriter, r *http.Request) {
	records, err := p.visibleSet(r)
	if err != nil {
		slog.Error("list visible workshops failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load filters")
		return
	}

	today := dates.Today()
	citySet := make(map[string]string)
	daySet := make(map[string]bool)
	for i := range records {
		city := records[i].City
		if city == "" {
			city = records[i].Commune
		}
		if city != "" {
			citySet[strings.ToLower(city)] = city
		}
		for _, d := range visibility.AllDates(&records[i]) {
			if d >= today {
				daySet[d] = true
			}
		}
	}

	cities := make([]string, 0, len(citySet))
	for _, c := range citySet {
		cities = append(cities, c)
	}
	sort.Strings(cities)

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	writeJSON(w, http.StatusOK, map[string]any{
		"categories":  models.Categories,
		"priceRanges": visibility.PriceRanges,
		"modalities":  []string{string(models.ModalityPresencial), string(models.ModalityOnline)},
		"cities":      cities,
		"dates":       days,
	})
}

// Stream serves GET /api/v1/workshops/stream: a server-sent-events feed
// of workshop changes. Clients re-fetch the listing when an event
// arrives instead of trusting the event payload.
func (p *Public) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub := p.bus.Subscribe(r.Context())
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := sub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			if _, err := w.Write([]byte("data: " + msg.Payload + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

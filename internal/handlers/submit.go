// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"tallerradar/internal/dates"
	"tallerradar/internal/events"
	"tallerradar/internal/links"
	"tallerradar/internal/models"
)

// maxUploadSize bounds submission bodies including the optional image.
const maxUploadSize = 10 << 20 // 10 MiB

// Submit serves POST /api/v1/workshops: the public organizer submission.
// The record enters the moderation queue; nothing becomes visible until
// an admin approves it.
func (p *Public) Submit(w http.ResponseWriter, r *http.Request) {
	in, imageURL, ok := p.parseSubmission(w, r)
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
	workshop.Status = models.StatusPending
	workshop.Approved = false

	created, err := p.workshops.Create(workshop)
	if err != nil {
		slog.Error("create submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save the workshop")
		return
	}

	p.listCache.Invalidate(r.Context())
	p.bus.Publish(r.Context(), events.KindCreated, created.ID)

	writeJSON(w, http.StatusCreated, newWorkshopView(*created, dates.Today()))
}

// parseSubmission decodes a submission request. JSON bodies carry the
// fields directly; multipart bodies carry them in a "data" field with an
// optional "image" file. A failed image upload is logged and the
// submission continues without it, so a storage outage never blocks an
// organizer.
func (p *Public) parseSubmission(w http.ResponseWriter, r *http.Request) (*workshopInput, string, bool) {
	in := &workshopInput{}

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

	imageURL := ""
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		if p.storageClient == nil {
			slog.Warn("image upload skipped, storage not configured")
		} else {
			url, err := p.storageClient.UploadImage(r.Context(), header.Filename,
				header.Header.Get("Content-Type"), file, header.Size)
			if err != nil {
				slog.Warn("image upload failed, submission continues", "error", err)
			} else {
				imageURL = url
			}
		}
	}

	return in, imageURL, true
}

// buildWorkshop maps a validated submission onto a workshop record,
// normalizing dates and deriving the computed address and link fields.
// Status and Approved are left for the caller to set.
func buildWorkshop(in *workshopInput) *models.Workshop {
	w := &models.Workshop{
		Name:                         strings.TrimSpace(in.Name),
		Category:                     in.Category,
		Modality:                     models.Modality(in.Modality),
		DateType:                     models.DateType(in.DateType),
		Date:                         dates.CanonicalDay(in.Date),
		IsRecurring:                  in.IsRecurring || models.DateType(in.DateType) == models.DateTypeRecurring,
		RecurringStart:               dates.CanonicalDay(in.RecurringStart),
		RecurringEnd:                 dates.CanonicalDay(in.RecurringEnd),
		RecurringDays:                in.RecurringDays,
		NumberOfClasses:              in.NumberOfClasses,
		Time:                         in.Time,
		Price:                        in.Price,
		ConfirmPriceOnRegistration:   in.ConfirmPriceOnRegistration,
		ConfirmAddressOnRegistration: in.ConfirmAddressOnRegistration,
		AgeMin:                       in.AgeMin,
		Contact:                      strings.TrimSpace(in.Contact),
		Social:                       links.SocialURLs(in.Social),
		Image:                        strings.TrimSpace(in.Image),
		Description:                  strings.TrimSpace(in.Description),
	}

	for _, d := range in.MultipleDates {
		if day := dates.CanonicalDay(d); day != "" {
			w.MultipleDates = append(w.MultipleDates, day)
		}
	}

	// Multi-date submissions often leave the single date field blank; the
	// first listed day then stands in as the representative date.
	if w.Date == "" && len(w.MultipleDates) > 0 {
		w.Date = w.MultipleDates[0]
	}

	// Address fields only apply to in-person workshops.
	if w.Modality == models.ModalityPresencial {
		w.Address = strings.TrimSpace(in.Address)
		w.Commune = strings.TrimSpace(in.Commune)
		w.City = strings.TrimSpace(in.City)
		w.FullAddress = links.FullAddress(in.Address, in.Commune, in.City)
		w.MapURL = links.MapURL(w.FullAddress)
	}

	return w
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package visibility computes which workshops are eligible for public
// display on a given day, orders them by their next upcoming date, and
// paginates the result. It is pure: output depends only on the record
// set, the active query values, and "today", so it can be re-run on
// every change notification without extra state.
package visibility

import (
	"sort"
	"strings"

	"tallerradar/internal/dates"
	"tallerradar/internal/models"
)

// PageSize is the fixed number of workshops per page.
const PageSize = 9

// Price range identifiers accepted by the price filter. The 10000
// boundary belongs to both adjacent buckets; the original filter behaved
// that way and callers depend on it, so the overlap is kept.
const (
	PriceFree     = "free"
	PriceTo10k    = "0-10000"
	Price10kTo30k = "10000-30000"
	Price30kTo50k = "30000-50000"
	PriceOver50k  = "50000+"
)

// PriceRanges lists the selectable price buckets in display order.
var PriceRanges = []string{PriceFree, PriceTo10k, Price10kTo30k, Price30kTo50k, PriceOver50k}

// Query holds the active filter values. Empty fields are inactive; all
// active filters must match (logical AND).
type Query struct {
	Category     string
	PriceRange   string
	Modality     string
	City         string
	SelectedDate string
}

// AllDates returns every calendar day attached to a workshop (its
// representative date plus any entries of MultipleDates), normalized,
// de-duplicated, sorted ascending, with unparsable values discarded.
// Recurrence fields are informational and never expanded here.
func AllDates(w *models.Workshop) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(v string) {
		day := dates.CanonicalDay(v)
		if day == "" || seen[day] {
			return
		}
		seen[day] = true
		out = append(out, day)
	}

	add(w.Date)
	for _, d := range w.MultipleDates {
		add(d)
	}

	sort.Strings(out)
	return out
}

// NextDate returns the day a workshop sorts and labels by: the earliest
// of its days that is today or later, or the latest day if all are past.
// Returns "" when the workshop has no resolvable dates.
func NextDate(w *models.Workshop, today string) string {
	all := AllDates(w)
	if len(all) == 0 {
		return ""
	}
	for _, d := range all {
		if d >= today {
			return d
		}
	}
	return all[len(all)-1]
}

// Matches reports whether a workshop passes every active filter in q.
// Workshops with no resolvable dates never match.
func Matches(w *models.Workshop, q Query, today string) bool {
	all := AllDates(w)
	if len(all) == 0 {
		return false
	}

	if q.SelectedDate != "" {
		if !containsDay(all, q.SelectedDate) {
			return false
		}
	} else if all[len(all)-1] < today {
		// No explicit day chosen: hide workshops whose dates are all past.
		return false
	}

	if q.Category != "" && !containsCategory(w.Category, q.Category) {
		return false
	}

	if q.PriceRange != "" && !priceMatches(w, q.PriceRange) {
		return false
	}

	if q.Modality != "" && string(w.Modality) != q.Modality {
		return false
	}

	if q.City != "" && !cityMatches(w, q.City) {
		return false
	}

	return true
}

// Filter returns the workshops matching q, sorted ascending by NextDate.
// Records is expected to already be the publicly visible set.
func Filter(records []models.Workshop, q Query, today string) []models.Workshop {
	var out []models.Workshop
	for i := range records {
		if Matches(&records[i], q, today) {
			out = append(out, records[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := NextDate(&out[i], today)
		b := NextDate(&out[j], today)
		// Dateless records sort last; unreachable after filtering, but the
		// ordering must stay total.
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	return out
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func containsCategory(categories []string, want string) bool {
	for _, c := range categories {
		if c == want {
			return true
		}
	}
	return false
}

// cityMatches compares case-insensitively against City, falling back to
// Commune when the record has no city.
func cityMatches(w *models.Workshop, city string) bool {
	target := w.City
	if target == "" {
		target = w.Commune
	}
	return strings.EqualFold(target, city)
}

// priceMatches checks a workshop against a price bucket. A workshop whose
// real price is only disclosed on registration can never be asserted free,
// so it is excluded from the free bucket unconditionally; the numeric
// buckets compare the stored price as the original filter did.
func priceMatches(w *models.Workshop, bucket string) bool {
	switch bucket {
	case PriceFree:
		if w.ConfirmPriceOnRegistration {
			return false
		}
		return w.Price == 0
	case PriceTo10k:
		return w.Price > 0 && w.Price <= 10000
	case Price10kTo30k:
		return w.Price >= 10000 && w.Price <= 30000
	case Price30kTo50k:
		return w.Price >= 30000 && w.Price <= 50000
	case PriceOver50k:
		return w.Price >= 50000
	default:
		return false
	}
}

// TotalPages returns the number of pages needed for n items.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Paginator tracks the current page of a filtered listing. The page index
// starts at 1 and must be reset whenever a filter or the selected date
// changes.
type Paginator struct {
	page int
}

// NewPaginator returns a paginator positioned on page 1.
func NewPaginator() *Paginator {
	return &Paginator{page: 1}
}

// Page returns the current page index.
func (p *Paginator) Page() int {
	return p.page
}

// SetPage moves to page n. Requests for page 0, negative pages, or pages
// beyond the last are ignored and the current page is kept.
func (p *Paginator) SetPage(n, totalPages int) {
	if n < 1 || n > totalPages {
		return
	}
	p.page = n
}

// Reset returns to page 1. Call when any filter value changes.
func (p *Paginator) Reset() {
	p.page = 1
}

// Slice returns the items on the current page.
func (p *Paginator) Slice(items []models.Workshop) []models.Workshop {
	start := (p.page - 1) * PageSize
	if start >= len(items) {
		return nil
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

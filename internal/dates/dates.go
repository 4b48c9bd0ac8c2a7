// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dates normalizes the heterogeneous date values attached to
// workshop records (plain YYYY-MM-DD strings, ISO datetimes, scraper
// timestamps) into canonical calendar-day strings anchored to Chilean
// local time, and renders them for display in es-CL long form.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the canonical calendar-day layout used as the comparison
// key throughout filtering and sorting.
const DayFormat = "2006-01-02"

// location is the fixed reference timezone for every calendar computation.
// All workshops are Chilean, so "today" and day boundaries follow Santiago
// regardless of where the server runs.
var location *time.Location

func init() {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		// No tzdata available. Chilean standard time; DST drift is
		// acceptable for a fallback that should never trigger in practice.
		loc = time.FixedZone("CLT", -4*60*60)
	}
	location = loc
}

// datetimeLayouts are tried in order for non-day inputs.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CanonicalDay converts a date value into a YYYY-MM-DD string.
//
// A plain YYYY-MM-DD input round-trips verbatim: it is never routed
// through a timezone conversion, because interpreting a date-only string
// as UTC midnight shifts the day backward for zones behind UTC.
// Datetime inputs are converted into Santiago local time first.
// Returns "" if the value cannot be parsed.
func CanonicalDay(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	if t, err := time.Parse(DayFormat, v); err == nil {
		return t.Format(DayFormat)
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.In(location).Format(DayFormat)
		}
	}

	return ""
}

// FromTime converts a timestamp into its Santiago calendar day.
func FromTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(location).Format(DayFormat)
}

// Today returns the current Santiago calendar day.
func Today() string {
	return time.Now().In(location).Format(DayFormat)
}

// monthsES holds Spanish month names for display formatting, indexed by
// time.Month-1.
var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Display renders a date value in es-CL long form, e.g.
// "4 de noviembre de 2025". Unparsable values render as "Sin fecha".
func Display(value string) string {
	day := CanonicalDay(value)
	if day == "" {
		return "Sin fecha"
	}

	t, err := time.ParseInLocation(DayFormat, day, location)
	if err != nil {
		return "Sin fecha"
	}

	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
}

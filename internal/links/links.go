// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package links derives the computed URL fields of a workshop record:
// social profile URLs from organizer-entered handles, and the Google Maps
// link built from an in-person workshop's address.
package links

import (
	"net/url"
	"strings"
)

// SocialURL normalizes a single organizer-entered social value.
// "@handle" becomes an Instagram profile URL, full https URLs pass
// through untouched, and anything else is assumed to be a bare domain.
// Returns "" for empty input.
func SocialURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(v, "@"):
		return "https://instagram.com/" + strings.TrimPrefix(v, "@")
	case strings.HasPrefix(v, "https://"):
		return v
	default:
		return "https://" + v
	}
}

// SocialURLs normalizes a list of handles, dropping empties.
func SocialURLs(raw []string) []string {
	var out []string
	for _, r := range raw {
		if u := SocialURL(r); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// FullAddress joins the address parts an organizer filled in, skipping
// blanks. Only meaningful for in-person workshops.
func FullAddress(address, commune, city string) string {
	var parts []string
	for _, p := range []string{address, commune, city} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// MapURL builds a Google Maps search link for a full address.
// Returns "" for an empty address.
func MapURL(fullAddress string) string {
	if fullAddress == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(fullAddress)
}

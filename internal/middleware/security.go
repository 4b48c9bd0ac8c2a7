// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets the response headers every endpoint of the API
// should carry. The server only ever answers JSON and event streams for
// a separate frontend, so framing is denied outright and no referrer
// ever needs to leave the site.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// JSON must never be sniffed into something executable.
		h.Set("X-Content-Type-Options", "nosniff")

		// API responses have no business inside a frame.
		h.Set("X-Frame-Options", "DENY")

		// The legacy XSS auditor does more harm than good.
		h.Set("X-XSS-Protection", "0")

		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}

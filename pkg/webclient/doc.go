// Package webclient is the HTTP layer for talking to browser-facing web APIs.
//
// It contains:
//   - [Session] — embeddable base struct with request helpers, a persistent
//     cookie jar, and a fingerprint header table applied to every request
//   - [StatusError] — typed error carrying the status code and response body
//     of a non-2xx reply
//
// This package contains no service-specific code — concrete clients live in
// separate packages that embed Session and supply their own endpoints and
// payloads.
package webclient

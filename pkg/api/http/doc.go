// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Video CRUD under /videos
//   - Wiping the catalog via DELETE /testing/all-data
//   - Health checks
//   - Prometheus metrics
package http

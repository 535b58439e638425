// Package domain defines the video catalog model.
//
// It contains:
//   - Video records and the drafts used to create and update them
//   - Resolution labels
//   - Millisecond-precision timestamps serialized as ISO-8601 UTC
//   - The error kinds surfaced by the API: not found, malformed body and validation
package domain

// Package catalog implements the video catalog operations.
//
// The service coordinates each request by:
//   - Validating request bodies with a single shared Validator
//   - Reading and writing records through the injected repository
//   - Allocating identifiers from the injected generator
//   - Publishing change events and recording metrics
//
// Validation accumulates one entry per violated field; any entry rejects the
// whole request and leaves the catalog untouched.
package catalog

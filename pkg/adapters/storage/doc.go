// Package storage provides video repository implementations.
//
// Implementations:
//   - memory: ordered in-memory slice (default, process lifetime only)
//   - redis: JSON records plus an order list and id counter
package storage

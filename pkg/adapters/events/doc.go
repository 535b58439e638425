// Package events provides event bus implementations for catalog change notifications.
//
// Implementations:
//   - redis: Redis Streams, one consumer group per subscription
//   - memory: in-process fan-out (default)
package events

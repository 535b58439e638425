// Package websocket provides real-time event streaming via WebSocket.
//
// Clients can connect to /ws/videos to receive catalog changes as they
// happen. Passing ?id=<video id> restricts the feed to a single video.
package websocket

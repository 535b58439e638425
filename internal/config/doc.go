// Package config provides configuration management for the video catalog service.
//
// Configuration is loaded from environment variables using the env package.
// Defaults run a self-contained in-memory catalog; set VIDEOHUB_STORAGE_BACKEND
// or VIDEOHUB_EVENTS_BACKEND to "redis" to use Redis.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config

package api

import (
	"log"
	"time"
)

// logRequest logs a backend request being made.
func logRequest(method, path string) {
	log.Printf("[backend] %s %s", method, path)
}

// logResponse logs a backend response received.
func logResponse(method, path string, statusCode int, duration time.Duration) {
	log.Printf("[backend] %s %s status=%d duration=%dms",
		method, path, statusCode, duration.Milliseconds())
}

// logError logs an error from a backend operation.
func logError(operation string, err error) {
	log.Printf("[backend] %s error: %v", operation, err)
}

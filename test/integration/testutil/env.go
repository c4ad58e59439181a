package testutil

import (
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// ServerURL returns the base URL of the running API server, or skips the
// test when TEST_SERVER_URL is unset. Integration tests need a deployed
// server and Mongo replica set behind it.
func ServerURL(t *testing.T) string {
	t.Helper()

	url := os.Getenv("TEST_SERVER_URL")
	if url == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration test")
	}
	return url
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(KeyBackendURL, "")
	t.Setenv(KeyUserID, "")
	t.Setenv(KeyDataDir, "")
	t.Setenv(KeyLogMode, "")
	t.Setenv(KeyHTTPTimeout, "")

	s := Load()

	if s.BackendURL != DefaultBackendURL {
		t.Errorf("Expected default backend URL, got %q", s.BackendURL)
	}
	if s.DataDir != DefaultDataDir {
		t.Errorf("Expected default data dir, got %q", s.DataDir)
	}
	if s.LogMode != DefaultLogMode {
		t.Errorf("Expected default log mode, got %q", s.LogMode)
	}
	if s.HTTPTimeout != DefaultHTTPTimeoutSec*time.Second {
		t.Errorf("Expected default timeout, got %v", s.HTTPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(KeyBackendURL, "http://tutor.example:9000")
	t.Setenv(KeyUserID, "user-abc")
	t.Setenv(KeyHTTPTimeout, "15")

	s := Load()

	if s.BackendURL != "http://tutor.example:9000" {
		t.Errorf("Expected overridden backend URL, got %q", s.BackendURL)
	}
	if s.UserID != "user-abc" {
		t.Errorf("Expected overridden user id, got %q", s.UserID)
	}
	if s.HTTPTimeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", s.HTTPTimeout)
	}
}

func TestLoadGeneratesUserID(t *testing.T) {
	t.Setenv(KeyUserID, "")

	s := Load()

	if !strings.HasPrefix(s.UserID, "user-") || len(s.UserID) <= len("user-") {
		t.Errorf("Expected generated user id, got %q", s.UserID)
	}
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv(KeyHTTPTimeout, "not-a-number")

	s := Load()

	if s.HTTPTimeout != DefaultHTTPTimeoutSec*time.Second {
		t.Errorf("Expected fallback timeout, got %v", s.HTTPTimeout)
	}
}

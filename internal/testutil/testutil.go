// Package testutil provides testing utilities for hokage tests: team
// fixtures, an in-process fake of the event API and a fake socket.io
// server.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cb-innovatekare/hokage/internal/team"
)

// SampleTeams returns a small roster spread over three sectors.
func SampleTeams() []team.Team {
	return []team.Team{
		{ID: "t1", Name: "Hidden Leaf", Email: "leaf@example.org", Verified: true, Sector: "001", Domain: "AI"},
		{ID: "t2", Name: "Sand Village", Email: "sand@example.org", Verified: false, Sector: "067"},
		{ID: "t3", Name: "Mist Runners", Email: "mist@example.org", Verified: false, Sector: "001", Domain: "Web3"},
		{ID: "t4", Name: "Cloud Forge", Email: "cloud@example.org", Verified: true, Sector: "456"},
	}
}

// SampleDomains returns a domain catalog matching SampleTeams.
func SampleDomains() []team.Domain {
	return []team.Domain{
		{ID: "d1", Name: "AI"},
		{ID: "d2", Name: "Web3"},
		{ID: "d3", Name: "FinTech"},
	}
}

// WriteFile writes content to name inside dir, creating parent
// directories, and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	fullPath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return fullPath
}

// Eventually polls cond until it returns true or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}

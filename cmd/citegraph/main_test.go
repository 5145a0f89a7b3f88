package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteSurfacesRunErrors(t *testing.T) {
	// SilenceErrors keeps cobra from printing, so the error Execute
	// returns is the only message the user can get; it must carry the
	// underlying failure, here an unreadable bibliography.
	missing := filepath.Join(t.TempDir(), "missing.bib")
	rootCmd.SetArgs([]string{"crawl", missing})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() succeeded for a nonexistent bibliography")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("Execute() error = %q, does not name the unreadable file", err)
	}
}

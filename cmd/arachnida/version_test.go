package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd tests the version command output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"arachnida version", "commit:", "built:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestGetVersion tests the fallback chain.
func TestGetVersion(t *testing.T) {
	t.Parallel()

	if got := getVersion(); got == "" {
		t.Error("getVersion returned empty string")
	}
	if got := getCommit(); got == "" {
		t.Error("getCommit returned empty string")
	}
	if got := getDate(); got == "" {
		t.Error("getDate returned empty string")
	}
}

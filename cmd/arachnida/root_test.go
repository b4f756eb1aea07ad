package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewRootCmd tests the root command wiring.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	if cmd.Use != "arachnida" {
		t.Errorf("Use = %q, want %q", cmd.Use, "arachnida")
	}

	want := map[string]bool{
		"spider":   false,
		"scorpion": false,
		"history":  false,
		"version":  false,
	}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("root command should silence cobra's own error output")
	}
}

// TestRootCmdUnknownSubcommand tests error handling for bad input.
func TestRootCmdUnknownSubcommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown subcommand")
	}
}

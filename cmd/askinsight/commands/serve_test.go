// ABOUTME: Tests for the serve, ask, and mcp command definitions
// ABOUTME: Verifies wiring-level metadata without hitting providers
package commands

import (
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("serve has no RunE")
	}
}

func TestNewAskCmd(t *testing.T) {
	cmd := NewAskCmd()

	if cmd.Use != "ask <question>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ask <question>")
	}
	if cmd.Args == nil {
		t.Error("ask has no Args validator")
	}
	// Exactly one positional argument
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("ask accepted zero arguments")
	}
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("ask accepted two arguments")
	}
	if err := cmd.Args(cmd, []string{"What is chunking?"}); err != nil {
		t.Errorf("ask rejected one argument: %v", err)
	}
}

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp")
	}
	if cmd.RunE == nil {
		t.Error("mcp has no RunE")
	}
}

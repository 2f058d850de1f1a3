package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestSignupCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"signup", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("signup --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "account") {
		t.Errorf("expected help to mention 'account', got: %s", out)
	}
}

func TestSignupCmd_Flags(t *testing.T) {
	cmd := newSignupCmd()
	if cmd.Use != "signup" {
		t.Errorf("Use = %q, want %q", cmd.Use, "signup")
	}
	for _, name := range []string{"config", "email", "first-name", "last-name"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}
}

func TestSignupCmd_ShortPassword(t *testing.T) {
	cfgPath := writeClientConfig(t, filepath.Join(t.TempDir(), "token"))

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("abc\n"))
	cmd.SetArgs([]string{
		"signup", "--config", cfgPath,
		"--email", "n@example.com", "--first-name", "Nina", "--last-name", "Patel",
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for short password")
	}
	if !strings.Contains(buf.String(), "Password must be at least 6 characters") {
		t.Errorf("output = %q, want the password length error", buf.String())
	}
}

func TestSignupCmd_MissingNames(t *testing.T) {
	cfgPath := writeClientConfig(t, filepath.Join(t.TempDir(), "token"))

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("secret\n"))
	cmd.SetArgs([]string{"signup", "--config", cfgPath, "--email", "n@example.com"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing names")
	}
	out := buf.String()
	if !strings.Contains(out, "First name is required") {
		t.Errorf("output = %q, want %q", out, "First name is required")
	}
	if !strings.Contains(out, "Last name is required") {
		t.Errorf("output = %q, want %q", out, "Last name is required")
	}
}

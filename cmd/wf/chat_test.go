package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestChatCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"chat", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("chat --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "assistant") {
		t.Errorf("expected help to mention 'assistant', got: %s", out)
	}
}

func TestChatCmd_Flags(t *testing.T) {
	cmd := newChatCmd()
	if cmd.Use != "chat" {
		t.Errorf("Use = %q, want %q", cmd.Use, "chat")
	}
	if cmd.Flags().Lookup("config") == nil {
		t.Error("expected --config flag")
	}
}

func TestChatCmd_NotLoggedIn(t *testing.T) {
	cfgPath := writeClientConfig(t, filepath.Join(t.TempDir(), "token"))

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"chat", "--config", cfgPath})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error without a stored token")
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("error = %q, want to say not logged in", err.Error())
	}
}

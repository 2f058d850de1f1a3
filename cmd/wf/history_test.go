package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("history --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "10 records per page") {
		t.Errorf("expected help to mention the page size, got: %s", out)
	}
}

func TestHistoryCmd_Flags(t *testing.T) {
	cmd := newHistoryCmd()
	if cmd.Use != "history" {
		t.Errorf("Use = %q, want %q", cmd.Use, "history")
	}
	if cmd.Flags().Lookup("config") == nil {
		t.Error("expected --config flag")
	}
	pageFlag := cmd.Flags().Lookup("page")
	if pageFlag == nil {
		t.Fatal("expected --page flag")
	}
	if pageFlag.DefValue != "1" {
		t.Errorf("--page default = %q, want %q", pageFlag.DefValue, "1")
	}
}

func TestHistoryCmd_PageBelowOne(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "--page", "0"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for page 0")
	}
	if !strings.Contains(err.Error(), "page") {
		t.Errorf("error = %q, want to mention page", err.Error())
	}
}

func TestHistoryCmd_NotLoggedIn(t *testing.T) {
	cfgPath := writeClientConfig(t, filepath.Join(t.TempDir(), "token"))

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "--config", cfgPath})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error without a stored token")
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("error = %q, want to say not logged in", err.Error())
	}
}

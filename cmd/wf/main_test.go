package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeClientConfig writes a minimal config pointing the client at a dead
// local port and the token store at tokenPath, and returns the config path.
func writeClientConfig(t *testing.T, tokenPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wayfinder.yaml")
	body := fmt.Sprintf("client:\n  base_url: http://127.0.0.1:1\n  token_path: %s\n", tokenPath)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "wf dev") {
		t.Errorf("output = %q, want to contain %q", buf.String(), "wf dev")
	}
}

func TestRootCmd_ListsSubcommands(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("root --help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"serve", "signup", "login", "logout", "distance", "history", "chat"} {
		if !strings.Contains(out, sub) {
			t.Errorf("root help should list %q subcommand", sub)
		}
	}
}

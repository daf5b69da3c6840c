package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/workshop/internal/testsupport"
)

func TestResolveAddrPriority(t *testing.T) {
	testsupport.SetupTestHome(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "workshop.toml"), []byte("[server]\nport = 9191\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(AddrEnv, "")
	addr, err := ResolveAddr(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != "127.0.0.1:9191" {
		t.Fatalf("expected config port, got %q", addr)
	}

	t.Setenv(AddrEnv, "7000")
	addr, err = ResolveAddr(dir, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != "127.0.0.1:7000" {
		t.Fatalf("expected env port, got %q", addr)
	}

	addr, err = ResolveAddr(dir, "localhost:6000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if addr != "localhost:6000" {
		t.Fatalf("expected flag addr, got %q", addr)
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "port", input: "8088", want: "127.0.0.1:8088"},
		{name: "host and port", input: " 0.0.0.0:80 ", want: "0.0.0.0:80"},
		{name: "not a port", input: "abc", wantErr: true},
		{name: "out of range", input: "70000", wantErr: true},
		{name: "blank", input: "  ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeAddr(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

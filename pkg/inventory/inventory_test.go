package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netweave/netweave/pkg/util"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndDefaults(t *testing.T) {
	inv, err := Load(writeInventory(t, `
devices:
  - name: r1
    host: 10.10.20.48
    username: developer
    password: secret
  - name: sw1
    host: 10.10.20.49
    username: admin
    transport: cli
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r1, err := inv.Get("r1")
	if err != nil {
		t.Fatalf("Get(r1): %v", err)
	}
	if r1.Transport != TransportNetconf {
		t.Errorf("default transport = %s, want netconf", r1.Transport)
	}
	if r1.Port != 830 {
		t.Errorf("default netconf port = %d, want 830", r1.Port)
	}

	sw1, _ := inv.Get("sw1")
	if sw1.Port != 22 {
		t.Errorf("default cli port = %d, want 22", sw1.Port)
	}

	names := inv.Names()
	if len(names) != 2 || names[0] != "r1" || names[1] != "sw1" {
		t.Errorf("Names() = %v", names)
	}
}

func TestGetUnknownDevice(t *testing.T) {
	inv, err := Load(writeInventory(t, "devices:\n  - {name: r1, host: h, username: u}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = inv.Get("r9")
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "devices: [", "parsing"},
		{"missing host", "devices:\n  - {name: r1, username: u}\n", "host is required"},
		{"missing username", "devices:\n  - {name: r1, host: h}\n", "username is required"},
		{"duplicate name", "devices:\n  - {name: r1, host: a, username: u}\n  - {name: r1, host: b, username: u}\n", "duplicate device name"},
		{"bad transport", "devices:\n  - {name: r1, host: h, username: u, transport: telnet}\n", "unknown transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeInventory(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

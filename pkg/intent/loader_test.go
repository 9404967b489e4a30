package intent

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/netweave/netweave/pkg/util"
)

func writeIntent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intent.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validOSPFIntent = `
device: edge-router-1
ospf:
  process_id: 1
  router_id: "1.1.1.1"
  networks:
    - ip: "192.168.0.0"
      wildcard: "0.0.255.255"
      area: 0
    - ip: "10.10.0.0"
      wildcard: "0.0.0.255"
      area: 1
`

func TestLoadValidIntent(t *testing.T) {
	doc, err := Load(writeIntent(t, validOSPFIntent))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Intent.Device != "edge-router-1" {
		t.Errorf("device = %q, want edge-router-1", doc.Intent.Device)
	}
	if doc.Intent.OSPF == nil {
		t.Fatal("ospf section not decoded")
	}
	if doc.Intent.OSPF.ProcessID != 1 || doc.Intent.OSPF.RouterID != "1.1.1.1" {
		t.Errorf("ospf = %+v", doc.Intent.OSPF)
	}
	if len(doc.Intent.OSPF.Networks) != 2 {
		t.Fatalf("networks = %d, want 2", len(doc.Intent.OSPF.Networks))
	}
	// Order must match the document.
	if doc.Intent.OSPF.Networks[0].IP != "192.168.0.0" || doc.Intent.OSPF.Networks[1].IP != "10.10.0.0" {
		t.Errorf("network order not preserved: %+v", doc.Intent.OSPF.Networks)
	}

	// Raw data carries the same values for template rendering.
	ospf, ok := doc.Data["ospf"].(map[string]interface{})
	if !ok {
		t.Fatalf("raw ospf mapping missing: %+v", doc.Data)
	}
	if ospf["router_id"] != "1.1.1.1" {
		t.Errorf("raw router_id = %v", ospf["router_id"])
	}

	if err := doc.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeIntent(t, "device: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !errors.Is(err, util.ErrParse) {
		t.Errorf("malformed YAML should yield ParseError, got %T: %v", err, err)
	}

	var parseErr *util.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *util.ParseError, got %T", err)
	}
	if !strings.Contains(parseErr.Path, "intent.yaml") {
		t.Errorf("ParseError should carry the document path: %s", parseErr.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, util.ErrParse) {
		t.Errorf("missing file should yield ParseError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string // substring of the validation error, "" for valid
	}{
		{
			name:    "valid",
			content: validOSPFIntent,
			wantErr: "",
		},
		{
			name:    "missing device",
			content: "ospf:\n  process_id: 1\n  networks:\n    - {ip: 10.0.0.0, wildcard: 0.0.0.255, area: 0}\n",
			wantErr: "device is required",
		},
		{
			name:    "process id out of range",
			content: "device: r1\nospf:\n  process_id: 70000\n  networks:\n    - {ip: 10.0.0.0, wildcard: 0.0.0.255, area: 0}\n",
			wantErr: "out of range",
		},
		{
			name:    "bad router id",
			content: "device: r1\nospf:\n  process_id: 1\n  router_id: not-an-ip\n  networks:\n    - {ip: 10.0.0.0, wildcard: 0.0.0.255, area: 0}\n",
			wantErr: "invalid router_id",
		},
		{
			name:    "no networks",
			content: "device: r1\nospf:\n  process_id: 1\n  router_id: 1.1.1.1\n",
			wantErr: "at least one network",
		},
		{
			name:    "bad wildcard",
			content: "device: r1\nospf:\n  process_id: 1\n  networks:\n    - {ip: 10.0.0.0, wildcard: bogus, area: 0}\n",
			wantErr: "invalid wildcard",
		},
		{
			name:    "vlan id out of range",
			content: "device: sw1\nvlans:\n  - {id: 5000, name: data}\n",
			wantErr: "out of range 1-4094",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(writeIntent(t, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			err = doc.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
			if !errors.Is(err, util.ErrValidationFailed) {
				t.Error("validation error should unwrap to ErrValidationFailed")
			}
		})
	}
}

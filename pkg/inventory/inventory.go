// Package inventory loads the managed-device inventory.
package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netweave/netweave/pkg/util"
)

// Transport selects the session type used to manage a device.
const (
	TransportNetconf = "netconf"
	TransportCLI     = "cli"
)

// Device is one managed-device entry. Connection parameters are explicit
// values passed to each pipeline stage, never ambient state.
type Device struct {
	Name      string `yaml:"name"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port,omitempty"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password,omitempty"` // empty: prompt at the CLI
	Platform  string `yaml:"platform,omitempty"` // e.g. "iosxe"
	Transport string `yaml:"transport,omitempty"`
}

// Inventory is the full set of managed devices.
type Inventory struct {
	Devices []Device `yaml:"devices"`
}

// Load reads a device inventory from a YAML file.
func Load(path string) (*Inventory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewParseError(path, err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, util.NewParseError(path, err)
	}

	if err := inv.validate(); err != nil {
		return nil, fmt.Errorf("validating inventory %s: %w", path, err)
	}
	inv.applyDefaults()
	return &inv, nil
}

// Get returns the device entry with the given name.
func (inv *Inventory) Get(name string) (*Device, error) {
	for i := range inv.Devices {
		if inv.Devices[i].Name == name {
			return &inv.Devices[i], nil
		}
	}
	return nil, fmt.Errorf("device '%s' not in inventory: %w", name, util.ErrNotFound)
}

// Names returns all device names in inventory order.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Devices))
	for _, d := range inv.Devices {
		names = append(names, d.Name)
	}
	return names
}

func (inv *Inventory) validate() error {
	v := &util.ValidationBuilder{}

	seen := make(map[string]bool)
	for i, d := range inv.Devices {
		if d.Name == "" {
			v.AddErrorf("devices[%d]: name is required", i)
			continue
		}
		if seen[d.Name] {
			v.AddErrorf("duplicate device name '%s'", d.Name)
		}
		seen[d.Name] = true

		if d.Host == "" {
			v.AddErrorf("device '%s': host is required", d.Name)
		}
		if d.Username == "" {
			v.AddErrorf("device '%s': username is required", d.Name)
		}
		switch d.Transport {
		case "", TransportNetconf, TransportCLI:
		default:
			v.AddErrorf("device '%s': unknown transport '%s'", d.Name, d.Transport)
		}
	}

	return v.Build()
}

func (inv *Inventory) applyDefaults() {
	for i := range inv.Devices {
		d := &inv.Devices[i]
		if d.Transport == "" {
			d.Transport = TransportNetconf
		}
		if d.Port == 0 {
			switch d.Transport {
			case TransportNetconf:
				d.Port = 830
			case TransportCLI:
				d.Port = 22
			}
		}
	}
}

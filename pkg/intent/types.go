// Package intent loads and validates configuration-intent documents.
//
// An intent document is the desired end-state configuration for one device,
// expressed independently of device syntax. It is authored by hand, loaded
// once per run, and never mutated by the pipeline.
package intent

// Intent is the typed view of an intent document.
type Intent struct {
	Device     string      `yaml:"device"`
	OSPF       *OSPF       `yaml:"ospf,omitempty"`
	Interfaces []Interface `yaml:"interfaces,omitempty"`
	VLANs      []VLAN      `yaml:"vlans,omitempty"`
}

// OSPF describes a single OSPF process.
type OSPF struct {
	ProcessID int       `yaml:"process_id"`
	RouterID  string    `yaml:"router_id"`
	Networks  []Network `yaml:"networks"`
}

// Network is one OSPF network statement. Order is significant: rendered
// payloads emit network blocks in the order they appear here.
type Network struct {
	IP       string `yaml:"ip"`
	Wildcard string `yaml:"wildcard"`
	Area     int    `yaml:"area"`
}

// Interface describes one L3 interface.
type Interface struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	IP          string `yaml:"ip,omitempty"`
	Mask        string `yaml:"mask,omitempty"`
	Enabled     bool   `yaml:"enabled"`
}

// VLAN describes one VLAN and its access ports.
type VLAN struct {
	ID    int      `yaml:"id"`
	Name  string   `yaml:"name"`
	Ports []string `yaml:"ports,omitempty"`
}

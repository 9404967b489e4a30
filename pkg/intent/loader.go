package intent

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netweave/netweave/pkg/util"
)

// Document is one loaded intent file. Data holds the raw decoded mapping
// that templates render against; Intent is the typed view used for
// validation and for deriving expectations and rollbacks. Both come from
// the same bytes, so they cannot drift within a run.
type Document struct {
	Path   string
	Intent Intent
	Data   map[string]interface{}
}

// Load reads and decodes an intent document. A malformed document fails
// with a ParseError carrying the yaml diagnostic; Load has no side effects.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewParseError(path, err)
	}

	doc := &Document{Path: path}
	if err := yaml.Unmarshal(raw, &doc.Data); err != nil {
		return nil, util.NewParseError(path, err)
	}
	if err := yaml.Unmarshal(raw, &doc.Intent); err != nil {
		return nil, util.NewParseError(path, err)
	}

	return doc, nil
}

// Validate checks the intent for semantic problems: missing required
// fields, malformed addresses, out-of-range identifiers. Returns a
// ValidationError enumerating every problem found.
func (d *Document) Validate() error {
	v := &util.ValidationBuilder{}

	v.Add(d.Intent.Device != "", "device is required")

	if d.Intent.OSPF != nil {
		d.validateOSPF(v)
	}
	for i, intf := range d.Intent.Interfaces {
		if intf.Name == "" {
			v.AddErrorf("interfaces[%d]: name is required", i)
		}
		if intf.IP != "" && !util.IsValidIPv4(intf.IP) {
			v.AddErrorf("interface '%s': invalid IP '%s'", intf.Name, intf.IP)
		}
		if intf.Mask != "" {
			if _, err := util.MaskToPrefix(intf.Mask); err != nil {
				v.AddErrorf("interface '%s': invalid mask '%s'", intf.Name, intf.Mask)
			}
		}
	}
	for i, vlan := range d.Intent.VLANs {
		if vlan.ID < 1 || vlan.ID > 4094 {
			v.AddErrorf("vlans[%d]: id %d out of range 1-4094", i, vlan.ID)
		}
		if vlan.Name == "" {
			v.AddErrorf("vlans[%d]: name is required", i)
		}
	}

	return v.Build()
}

func (d *Document) validateOSPF(v *util.ValidationBuilder) {
	ospf := d.Intent.OSPF

	if ospf.ProcessID < 1 || ospf.ProcessID > 65535 {
		v.AddErrorf("ospf: process_id %d out of range 1-65535", ospf.ProcessID)
	}
	if ospf.RouterID != "" && !util.IsValidIPv4(ospf.RouterID) {
		v.AddErrorf("ospf: invalid router_id '%s'", ospf.RouterID)
	}
	v.Add(len(ospf.Networks) > 0, "ospf: at least one network is required")

	for i, n := range ospf.Networks {
		if !util.IsValidIPv4(n.IP) {
			v.AddErrorf("ospf networks[%d]: invalid ip '%s'", i, n.IP)
		}
		if !util.IsValidIPv4(n.Wildcard) {
			v.AddErrorf("ospf networks[%d]: invalid wildcard '%s'", i, n.Wildcard)
		}
		if n.Area < 0 {
			v.AddErrorf("ospf networks[%d]: negative area %d", i, n.Area)
		}
	}
}

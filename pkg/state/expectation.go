// Package state validates observed device state against expected values.
package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netweave/netweave/pkg/intent"
	"github.com/netweave/netweave/pkg/util"
)

// Check is one expected-state assertion: the element at Path must carry
// the text Equals. Paths are etree paths evaluated against the reply.
type Check struct {
	Path   string `yaml:"path"`
	Equals string `yaml:"equals"`
}

// Expectation describes the state a device should be in after an apply.
type Expectation struct {
	Device      string  `yaml:"device"`
	Source      string  `yaml:"source,omitempty"` // config datastore, default "running"
	Filter      string  `yaml:"filter,omitempty"` // subtree filter
	Operational bool    `yaml:"operational,omitempty"`
	Checks      []Check `yaml:"checks"`
}

// LoadExpectation reads an expectation document from a YAML file.
func LoadExpectation(path string) (*Expectation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewParseError(path, err)
	}

	var exp Expectation
	if err := yaml.Unmarshal(raw, &exp); err != nil {
		return nil, util.NewParseError(path, err)
	}
	if len(exp.Checks) == 0 {
		return nil, util.NewValidationError("expectation has no checks")
	}
	exp.applyDefaults()
	return &exp, nil
}

// ospfSubtreeFilter narrows get-config to the OSPF process configuration.
const ospfSubtreeFilter = `<native xmlns="http://cisco.com/ns/yang/Cisco-IOS-XE-native"><router><router-ospf xmlns="http://cisco.com/ns/yang/Cisco-IOS-XE-ospf"/></router></native>`

// Derive builds the expectation matching an intent document, so that the
// state checked by Validate always corresponds to the intent the preceding
// apply used. Only intent sections with derivable checks contribute.
func Derive(doc *intent.Document) (*Expectation, error) {
	exp := &Expectation{Device: doc.Intent.Device}

	if ospf := doc.Intent.OSPF; ospf != nil {
		exp.Filter = ospfSubtreeFilter
		exp.Checks = append(exp.Checks, Check{
			Path:   "//ospf/process-id",
			Equals: fmt.Sprintf("%d", ospf.ProcessID),
		})
		if ospf.RouterID != "" {
			exp.Checks = append(exp.Checks, Check{
				Path:   "//ospf/router-id",
				Equals: ospf.RouterID,
			})
		}
		for _, n := range ospf.Networks {
			exp.Checks = append(exp.Checks,
				Check{
					Path:   fmt.Sprintf("//network[ip='%s']/wildcard", n.IP),
					Equals: n.Wildcard,
				},
				Check{
					Path:   fmt.Sprintf("//network[ip='%s']/area", n.IP),
					Equals: fmt.Sprintf("%d", n.Area),
				},
			)
		}
	}

	if len(exp.Checks) == 0 {
		return nil, util.NewValidationError(
			fmt.Sprintf("no expectation derivable from intent for device '%s'", doc.Intent.Device))
	}
	exp.applyDefaults()
	return exp, nil
}

func (e *Expectation) applyDefaults() {
	if e.Source == "" {
		e.Source = "running"
	}
}

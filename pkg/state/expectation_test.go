package state

import (
	"errors"
	"testing"

	"github.com/netweave/netweave/internal/testutil"
	"github.com/netweave/netweave/pkg/intent"
	"github.com/netweave/netweave/pkg/util"
)

func TestLoadExpectation(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "expected.yaml", `
device: r1
checks:
  - path: //ospf/process-id
    equals: "1"
  - path: //ospf/router-id
    equals: 1.1.1.1
`)

	exp, err := LoadExpectation(path)
	if err != nil {
		t.Fatalf("LoadExpectation: %v", err)
	}
	if exp.Device != "r1" {
		t.Errorf("device = %q", exp.Device)
	}
	if exp.Source != "running" {
		t.Errorf("source should default to running, got %q", exp.Source)
	}
	if len(exp.Checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(exp.Checks))
	}
	if exp.Checks[1].Equals != "1.1.1.1" {
		t.Errorf("checks[1].equals = %q", exp.Checks[1].Equals)
	}
}

func TestLoadExpectationNoChecks(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "expected.yaml", "device: r1\n")

	_, err := LoadExpectation(path)
	if !errors.Is(err, util.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestLoadExpectationMissingFile(t *testing.T) {
	_, err := LoadExpectation("no/such/file.yaml")
	if !errors.Is(err, util.ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestDeriveFromOSPFIntent(t *testing.T) {
	doc := &intent.Document{
		Intent: intent.Intent{
			Device: "r1",
			OSPF: &intent.OSPF{
				ProcessID: 1,
				RouterID:  "1.1.1.1",
				Networks: []intent.Network{
					{IP: "10.0.0.0", Wildcard: "0.0.0.255", Area: 0},
					{IP: "192.168.1.0", Wildcard: "0.0.0.255", Area: 1},
				},
			},
		},
	}

	exp, err := Derive(doc)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if exp.Device != "r1" {
		t.Errorf("device = %q", exp.Device)
	}
	if exp.Filter == "" {
		t.Error("derived expectation should carry a subtree filter")
	}

	// process-id + router-id + wildcard and area per network
	if len(exp.Checks) != 6 {
		t.Fatalf("got %d checks, want 6", len(exp.Checks))
	}

	want := map[string]string{
		"//ospf/process-id":                    "1",
		"//ospf/router-id":                     "1.1.1.1",
		"//network[ip='10.0.0.0']/wildcard":    "0.0.0.255",
		"//network[ip='10.0.0.0']/area":        "0",
		"//network[ip='192.168.1.0']/wildcard": "0.0.0.255",
		"//network[ip='192.168.1.0']/area":     "1",
	}
	for _, c := range exp.Checks {
		if want[c.Path] != c.Equals {
			t.Errorf("check %s = %q, want %q", c.Path, c.Equals, want[c.Path])
		}
		delete(want, c.Path)
	}
	for path := range want {
		t.Errorf("missing check for %s", path)
	}
}

func TestDeriveNoRouterID(t *testing.T) {
	doc := &intent.Document{
		Intent: intent.Intent{
			Device: "r1",
			OSPF: &intent.OSPF{
				ProcessID: 10,
				Networks:  []intent.Network{{IP: "10.0.0.0", Wildcard: "0.0.0.255", Area: 0}},
			},
		},
	}

	exp, err := Derive(doc)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for _, c := range exp.Checks {
		if c.Path == "//ospf/router-id" {
			t.Error("router-id check derived from intent without a router_id")
		}
	}
}

func TestDeriveNothingDerivable(t *testing.T) {
	doc := &intent.Document{Intent: intent.Intent{Device: "sw1"}}

	_, err := Derive(doc)
	if !errors.Is(err, util.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

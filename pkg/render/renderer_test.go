package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/netweave/netweave/pkg/intent"
	"github.com/netweave/netweave/pkg/util"
)

// repoTemplates points at the shipped template directory so the scenarios
// below exercise the real OSPF templates, not test doubles.
const repoTemplates = "../../templates"

func ospfData(networks ...map[string]interface{}) map[string]interface{} {
	nets := make([]interface{}, 0, len(networks))
	for _, n := range networks {
		nets = append(nets, n)
	}
	return map[string]interface{}{
		"device": "r1",
		"ospf": map[string]interface{}{
			"process_id": 1,
			"router_id":  "1.1.1.1",
			"networks":   nets,
		},
	}
}

func network(ip, wildcard string, area int) map[string]interface{} {
	return map[string]interface{}{"ip": ip, "wildcard": wildcard, "area": area}
}

func TestRenderOSPFSingleNetwork(t *testing.T) {
	r := NewRenderer(repoTemplates)
	payload, err := r.Render("ospf", ospfData(network("192.168.0.0", "0.0.255.255", 0)))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := strings.Count(payload, "<network>"); got != 1 {
		t.Fatalf("expected exactly one <network> block, got %d:\n%s", got, payload)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		t.Fatalf("payload not well-formed XML: %v", err)
	}
	el := doc.FindElement("//network")
	if el == nil {
		t.Fatal("no network element")
	}
	children := el.ChildElements()
	if len(children) != 3 {
		t.Fatalf("network block has %d children, want 3", len(children))
	}
	// ip, wildcard, area — in that order, with the intent values.
	wantTags := []string{"ip", "wildcard", "area"}
	wantText := []string{"192.168.0.0", "0.0.255.255", "0"}
	for i, c := range children {
		if c.Tag != wantTags[i] {
			t.Errorf("child[%d] tag = %s, want %s", i, c.Tag, wantTags[i])
		}
		if strings.TrimSpace(c.Text()) != wantText[i] {
			t.Errorf("child[%d] text = %q, want %q", i, c.Text(), wantText[i])
		}
	}
}

func TestRenderOSPFTwoNetworksInOrder(t *testing.T) {
	r := NewRenderer(repoTemplates)
	payload, err := r.Render("ospf", ospfData(
		network("192.168.0.0", "0.0.255.255", 0),
		network("10.10.0.0", "0.0.0.255", 1),
	))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		t.Fatalf("payload not well-formed XML: %v", err)
	}
	nets := doc.FindElements("//network")
	if len(nets) != 2 {
		t.Fatalf("expected two <network> blocks, got %d", len(nets))
	}
	first := strings.TrimSpace(nets[0].SelectElement("ip").Text())
	second := strings.TrimSpace(nets[1].SelectElement("ip").Text())
	if first != "192.168.0.0" || second != "10.10.0.0" {
		t.Errorf("network blocks out of order: %s, %s", first, second)
	}
}

func TestRenderIsPure(t *testing.T) {
	r := NewRenderer(repoTemplates)
	data := ospfData(network("192.168.0.0", "0.0.255.255", 0), network("10.10.0.0", "0.0.0.255", 1))

	first, err := r.Render("ospf", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render("ospf", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Error("rendering the same intent twice must be byte-identical")
	}
}

func TestRenderMissingFieldNamesField(t *testing.T) {
	data := map[string]interface{}{
		"device": "r1",
		"ospf": map[string]interface{}{
			"process_id": 1,
			// router_id intentionally absent
			"networks": []interface{}{network("10.0.0.0", "0.0.0.255", 0)},
		},
	}

	r := NewRenderer(repoTemplates)
	_, err := r.Render("ospf", data)
	if err == nil {
		t.Fatal("expected RenderError for missing router_id")
	}
	if !errors.Is(err, util.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}

	var renderErr *util.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *util.RenderError, got %T", err)
	}
	if renderErr.Field != "router_id" {
		t.Errorf("RenderError.Field = %q, want router_id", renderErr.Field)
	}
}

func TestRenderNeverSubstitutesEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.tmpl"), []byte("hostname {{ .hostname }}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(dir)
	out, err := r.Render("greet", map[string]interface{}{})
	if err == nil {
		t.Fatalf("expected error for missing key, got output %q", out)
	}
}

func TestRenderTemplateNotFound(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.Render("nope", map[string]interface{}{})
	if !errors.Is(err, util.ErrRender) {
		t.Errorf("expected ErrRender, got %v", err)
	}
}

func TestRenderRollback(t *testing.T) {
	r := NewRenderer(repoTemplates)
	payload, err := r.RenderRollback("ospf", ospfData(network("10.0.0.0", "0.0.0.255", 0)))
	if err != nil {
		t.Fatalf("RenderRollback: %v", err)
	}
	if !strings.Contains(payload, `nc:operation="remove"`) {
		t.Errorf("rollback payload should remove the process:\n%s", payload)
	}
	if !strings.Contains(payload, "<process-id>1</process-id>") {
		t.Errorf("rollback payload should carry the process id:\n%s", payload)
	}
}

func TestRenderCLITemplateMatchesIntent(t *testing.T) {
	doc := &intent.Document{
		Data: ospfData(network("192.168.0.0", "0.0.255.255", 0)),
	}

	r := NewRenderer(repoTemplates)
	payload, err := r.Render("ospf_cli", doc.Data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"router ospf 1",
		"router-id 1.1.1.1",
		"network 192.168.0.0 0.0.255.255 area 0",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}
}

func TestCheckXML(t *testing.T) {
	if err := CheckXML("<config><a/></config>"); err != nil {
		t.Errorf("valid XML rejected: %v", err)
	}
	if err := CheckXML("<config><a></config>"); err == nil {
		t.Error("malformed XML accepted")
	}
	if err := CheckXML(""); err == nil {
		t.Error("empty payload accepted")
	}
}

func TestTemplateFuncs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.tmpl"),
		[]byte(`{{ maskToPrefix .mask }} {{ lower .name }}`), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(dir)
	out, err := r.Render("f", map[string]interface{}{"mask": "255.255.255.0", "name": "CORE"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "24 core" {
		t.Errorf("funcs output = %q, want %q", out, "24 core")
	}
}

// Package render merges intent data into payload templates.
//
// Rendering is a pure function of (template, intent data): the same inputs
// always produce byte-identical payloads. A template reference to a key the
// intent does not provide fails with a RenderError naming that key; a
// missing value is never silently substituted as empty.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/beevik/etree"

	"github.com/netweave/netweave/pkg/util"
)

// rollbackSuffix names the reverse-payload template for a given template:
// "ospf" rolls back via "ospf_rollback".
const rollbackSuffix = "_rollback"

// Extraction patterns for the field name inside text/template exec errors.
var (
	missingKeyRe   = regexp.MustCompile(`map has no entry for key "([^"]+)"`)
	missingFieldRe = regexp.MustCompile(`can't evaluate field (\S+) in`)
)

// Renderer loads templates by name from a directory and renders intent
// data against them.
type Renderer struct {
	dir   string
	funcs template.FuncMap
}

// NewRenderer creates a renderer loading templates from dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{
		dir: dir,
		funcs: template.FuncMap{
			"lower":          strings.ToLower,
			"upper":          strings.ToUpper,
			"join":           strings.Join,
			"maskToPrefix":   util.MaskToPrefix,
			"wildcardToMask": util.WildcardToMask,
		},
	}
}

// Has reports whether a template with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, err := os.Stat(r.path(name))
	return err == nil
}

// RollbackName returns the name of the rollback template for name.
func RollbackName(name string) string {
	return name + rollbackSuffix
}

// Render produces the payload for the named template and intent data.
func (r *Renderer) Render(name string, data map[string]interface{}) (string, error) {
	raw, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", util.NewRenderError(name, "", fmt.Errorf("template not found: %w", util.ErrNotFound))
		}
		return "", util.NewRenderError(name, "", err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Funcs(r.funcs).Parse(string(raw))
	if err != nil {
		return "", util.NewRenderError(name, "", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", util.NewRenderError(name, missingField(err), err)
	}
	return buf.String(), nil
}

// RenderRollback renders the rollback counterpart of the named template.
func (r *Renderer) RenderRollback(name string, data map[string]interface{}) (string, error) {
	return r.Render(RollbackName(name), data)
}

func (r *Renderer) path(name string) string {
	return filepath.Join(r.dir, name+".tmpl")
}

// missingField extracts the intent key named in a template exec error, or
// "" when the failure was not a missing-field reference.
func missingField(err error) string {
	msg := err.Error()
	if m := missingKeyRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := missingFieldRe.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

// CheckXML verifies that a rendered payload is well-formed XML. NETCONF
// payloads are checked before any session is opened so template mistakes
// fail locally, not on the device.
func CheckXML(payload string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		return fmt.Errorf("payload is not well-formed XML: %w", err)
	}
	if doc.Root() == nil {
		return fmt.Errorf("payload has no XML root element")
	}
	return nil
}

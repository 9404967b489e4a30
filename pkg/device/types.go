// Package device provides management sessions to network devices.
//
// Sessions are ephemeral: a driver is opened for one pipeline stage, used,
// and closed. Nothing is shared across stages or runs.
package device

import (
	"github.com/beevik/etree"

	"github.com/netweave/netweave/pkg/inventory"
)

// ConnParams identifies one managed device endpoint. Connection parameters
// travel as an explicit struct through every stage, never as globals.
type ConnParams struct {
	Name      string
	Host      string
	Port      int
	Username  string
	Password  string
	Transport string
}

// ParamsFor builds connection parameters from an inventory entry.
func ParamsFor(d *inventory.Device) ConnParams {
	return ConnParams{
		Name:      d.Name,
		Host:      d.Host,
		Port:      d.Port,
		Username:  d.Username,
		Password:  d.Password,
		Transport: d.Transport,
	}
}

// Response is a device reply. Raw always carries the device-supplied text
// unmodified. For NETCONF replies Doc() exposes the parsed XML; CLI
// replies have no document.
type Response struct {
	Raw string
	doc *etree.Document
}

// Doc returns the parsed XML document, or nil for non-XML replies.
func (r *Response) Doc() *etree.Document {
	return r.doc
}

// ParseResponse parses raw as XML and wraps it.
func ParseResponse(raw string) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, err
	}
	return &Response{Raw: raw, doc: doc}, nil
}

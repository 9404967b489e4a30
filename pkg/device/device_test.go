package device

import (
	"context"
	"testing"

	scraplinetconf "github.com/scrapli/scrapligo/driver/netconf"
	scrapliutil "github.com/scrapli/scrapligo/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netweave/netweave/pkg/inventory"
)

func TestParamsFor(t *testing.T) {
	d := &inventory.Device{
		Name:      "r1",
		Host:      "10.10.20.48",
		Port:      830,
		Username:  "developer",
		Password:  "secret",
		Transport: inventory.TransportNetconf,
	}

	p := ParamsFor(d)
	assert.Equal(t, "r1", p.Name)
	assert.Equal(t, "10.10.20.48", p.Host)
	assert.Equal(t, 830, p.Port)
	assert.Equal(t, inventory.TransportNetconf, p.Transport)
}

func TestConnectUnknownTransport(t *testing.T) {
	_, err := Connect(context.Background(), ConnParams{Name: "r1", Transport: "telnet"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestConnectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, ConnParams{Transport: inventory.TransportNetconf})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDataResponseReroots(t *testing.T) {
	raw := `<rpc-reply xmlns="urn:ietf:params:xml:ns:netconf:base:1.0" message-id="101">
  <data>
    <native><router><router-ospf><ospf><process-id>1</process-id></ospf></router-ospf></router></native>
  </data>
</rpc-reply>`

	resp, err := dataResponse(raw)
	require.NoError(t, err)
	require.NotNil(t, resp.Doc())

	assert.Equal(t, "native", resp.Doc().Root().Tag)
	el := resp.Doc().FindElement("//process-id")
	require.NotNil(t, el)
	assert.Equal(t, "1", el.Text())
}

func TestDataResponseMalformed(t *testing.T) {
	_, err := dataResponse("<rpc-reply><data>")
	assert.Error(t, err)
}

func TestFilterOptionPopulatesGetConfig(t *testing.T) {
	const filter = `<native xmlns="http://cisco.com/ns/yang/Cisco-IOS-XE-native"/>`

	oo := &scraplinetconf.OperationOptions{}
	require.NoError(t, filterOption(filter)(oo))
	assert.Equal(t, filter, oo.Filter)

	// non-netconf operation structs must be left alone
	err := filterOption(filter)(&struct{}{})
	assert.ErrorIs(t, err, scrapliutil.ErrIgnoredOption)
}

func TestCLIErrorDetection(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"invalid input", "r1(config)#router ospfx\n% Invalid input detected at '^' marker.\n", true},
		{"incomplete command", "% Incomplete command.\n", true},
		{"clean push", "r1(config)#router ospf 1\nr1(config-router)#end\nr1#", false},
		{"percent mid-line", "uptime is 1%\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cliErrorRe.MatchString(tt.output))
		})
	}
}

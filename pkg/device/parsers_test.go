package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vlanBriefOutput = `
VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active    Fa0/3, Fa0/4
10   VLAN_DATA                        active    Fa0/1, Fa0/2
20   VLAN_VOICE                       active
999  TEST_VLAN_999                    act/unsup
`

func TestParseVLANBrief(t *testing.T) {
	vlans := ParseVLANBrief(vlanBriefOutput)
	require.Len(t, vlans, 4)

	assert.Equal(t, "1", vlans[0].ID)
	assert.Equal(t, "default", vlans[0].Name)
	assert.Equal(t, []string{"Fa0/3", "Fa0/4"}, vlans[0].Ports)

	assert.Equal(t, "10", vlans[1].ID)
	assert.Equal(t, "VLAN_DATA", vlans[1].Name)
	assert.Equal(t, "active", vlans[1].Status)
	assert.Equal(t, []string{"Fa0/1", "Fa0/2"}, vlans[1].Ports)

	assert.Empty(t, vlans[2].Ports)
	assert.Equal(t, "act/unsup", vlans[3].Status)
}

func TestParseVLANBriefEmpty(t *testing.T) {
	assert.Empty(t, ParseVLANBrief(""))
	assert.Empty(t, ParseVLANBrief("VLAN Name Status Ports\n---- ---- ---- ----"))
}

const switchportOutput = `
Name: Fa0/1
Switchport: Enabled
Administrative Mode: static access
Operational Mode: static
Access Mode VLAN: 10 (VLAN_DATA)
Trunking Native Mode VLAN: 1 (default)
`

func TestParseSwitchport(t *testing.T) {
	info := ParseSwitchport(switchportOutput)
	assert.Equal(t, "10", info.AccessVLAN)
	assert.Equal(t, "static", info.AdminMode)
	assert.Equal(t, "static", info.OperMode)
}

const ospfOutput = ` Routing Process "ospf 1" with ID 1.1.1.1
 Start time: 00:01:02.919, Time elapsed: 1d02h
 Supports only single TOS(TOS0) routes
`

func TestParseOSPFProcess(t *testing.T) {
	proc, ok := ParseOSPFProcess(ospfOutput)
	require.True(t, ok)
	assert.Equal(t, "1", proc.ProcessID)
	assert.Equal(t, "1.1.1.1", proc.RouterID)

	_, ok = ParseOSPFProcess("% OSPF: No router process defined")
	assert.False(t, ok, "no process should parse as absent")
}

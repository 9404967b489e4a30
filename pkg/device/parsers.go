package device

import (
	"regexp"
	"strings"
)

// Parsers for IOS show-command output used by the CLI transport.

// VLANEntry is one row of 'show vlan brief'.
type VLANEntry struct {
	ID     string
	Name   string
	Status string
	Ports  []string
}

// Example line: "10   VLAN_DATA   active    Fa0/1, Fa0/2"
var vlanBriefRe = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(active|act/unsup|suspended)\s*(.*)$`)

// ParseVLANBrief parses 'show vlan brief' output.
func ParseVLANBrief(output string) []VLANEntry {
	var vlans []VLANEntry
	for _, line := range strings.Split(output, "\n") {
		m := vlanBriefRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entry := VLANEntry{ID: m[1], Name: m[2], Status: m[3]}
		for _, p := range strings.Split(m[4], ",") {
			if p = strings.TrimSpace(p); p != "" {
				entry.Ports = append(entry.Ports, p)
			}
		}
		vlans = append(vlans, entry)
	}
	return vlans
}

// SwitchportInfo is the parsed VLAN assignment of one interface, from
// 'show interfaces <name> switchport'.
type SwitchportInfo struct {
	AccessVLAN string
	AdminMode  string
	OperMode   string
}

var (
	accessVlanRe = regexp.MustCompile(`Access Mode VLAN:\s+(\d+)`)
	adminModeRe  = regexp.MustCompile(`Administrative Mode:\s+(\S+)`)
	operModeRe   = regexp.MustCompile(`Operational Mode:\s+(\S+)`)
)

// ParseSwitchport parses 'show interfaces X switchport' output.
func ParseSwitchport(output string) SwitchportInfo {
	var info SwitchportInfo
	if m := accessVlanRe.FindStringSubmatch(output); m != nil {
		info.AccessVLAN = m[1]
	}
	if m := adminModeRe.FindStringSubmatch(output); m != nil {
		info.AdminMode = m[1]
	}
	if m := operModeRe.FindStringSubmatch(output); m != nil {
		info.OperMode = m[1]
	}
	return info
}

// OSPFProcess is the parsed header of 'show ip ospf'.
type OSPFProcess struct {
	ProcessID string
	RouterID  string
}

var ospfProcessRe = regexp.MustCompile(`Routing Process "ospf (\d+)" with ID (\d+\.\d+\.\d+\.\d+)`)

// ParseOSPFProcess parses 'show ip ospf' output. Returns false when no
// OSPF process is running (the expected state after a rollback).
func ParseOSPFProcess(output string) (OSPFProcess, bool) {
	m := ospfProcessRe.FindStringSubmatch(output)
	if m == nil {
		return OSPFProcess{}, false
	}
	return OSPFProcess{ProcessID: m[1], RouterID: m[2]}, true
}

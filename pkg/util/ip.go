package util

import (
	"fmt"
	"net"
	"strings"
)

// IsValidIPv4 returns true if s is a valid dotted-quad IPv4 address.
func IsValidIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Count(s, ".") == 3
}

// IsValidIPv4CIDR returns true if s is a valid IPv4 CIDR (e.g. "10.0.0.1/30").
func IsValidIPv4CIDR(s string) bool {
	ip, _, err := net.ParseCIDR(s)
	return err == nil && ip.To4() != nil
}

// MaskToPrefix converts a dotted-quad subnet mask to its prefix length.
// Returns an error for non-contiguous masks.
func MaskToPrefix(mask string) (int, error) {
	ip := net.ParseIP(mask)
	if ip == nil || ip.To4() == nil {
		return 0, fmt.Errorf("invalid subnet mask: %s", mask)
	}
	m := net.IPMask(ip.To4())
	ones, bits := m.Size()
	if ones == 0 && bits == 0 {
		return 0, fmt.Errorf("non-contiguous subnet mask: %s", mask)
	}
	return ones, nil
}

// WildcardToMask converts an OSPF wildcard (inverse mask) to a subnet mask.
func WildcardToMask(wildcard string) (string, error) {
	ip := net.ParseIP(wildcard)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("invalid wildcard: %s", wildcard)
	}
	w := ip.To4()
	return fmt.Sprintf("%d.%d.%d.%d", 255-w[0], 255-w[1], 255-w[2], 255-w[3]), nil
}

// Package ipfilter restricts the message API to known source prefixes.
package ipfilter

import (
	"fmt"
	"net/netip"
)

// Filter is a source-address allowlist. The server listens on a dual-stack
// socket, so IPv4 peers show up as v4-mapped IPv6 addresses and are matched
// against the IPv4 prefix list after unmapping.
type Filter struct {
	inet  []netip.Prefix
	inet6 []netip.Prefix
}

// New parses the IPv4 and IPv6 prefix lists into a Filter.
func New(inet, inet6 []string) (*Filter, error) {
	out := &Filter{}

	for _, raw := range inet {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("bad IPv4 prefix %q: %w", raw, err)
		}
		if !prefix.Addr().Is4() {
			return nil, fmt.Errorf("prefix %q is not IPv4", raw)
		}
		out.inet = append(out.inet, prefix)
	}

	for _, raw := range inet6 {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("bad IPv6 prefix %q: %w", raw, err)
		}
		if prefix.Addr().Is4() {
			return nil, fmt.Errorf("prefix %q is not IPv6", raw)
		}
		out.inet6 = append(out.inet6, prefix)
	}

	return out, nil
}

// Allowed reports whether the source address falls inside any allowed prefix.
func (f *Filter) Allowed(addr netip.Addr) bool {
	prefixes := f.inet6
	if addr.Is4() || addr.Is4In6() {
		prefixes = f.inet
		addr = addr.Unmap()
	}

	for _, prefix := range prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

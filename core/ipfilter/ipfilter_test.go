package ipfilter

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_badPrefixes(t *testing.T) {
	cases := map[string]struct {
		inet  []string
		inet6 []string
	}{
		"garbage v4":        {inet: []string{"nope"}},
		"v6 in v4 list":     {inet: []string{"::1/128"}},
		"v4 in v6 list":     {inet6: []string{"127.0.0.1/32"}},
		"missing mask bits": {inet: []string{"127.0.0.1"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := New(tc.inet, tc.inet6)
			assert.NotNil(t, err)
		})
	}
}

func TestAllowed(t *testing.T) {
	filter, err := New(
		[]string{"127.0.0.1/32", "10.1.0.0/16"},
		[]string{"::1/128", "2001:db8::/32"},
	)
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		addr string
		want bool
	}{
		"loopback v4":           {"127.0.0.1", true},
		"other loopback v4":     {"127.0.0.2", false},
		"v4 inside range":       {"10.1.200.7", true},
		"v4 outside range":      {"10.2.0.1", false},
		"loopback v6":           {"::1", true},
		"v6 inside range":       {"2001:db8::42", true},
		"v6 outside range":      {"2001:db9::1", false},
		"v4-mapped allowed":     {"::ffff:127.0.0.1", true},
		"v4-mapped not allowed": {"::ffff:192.0.2.1", false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			addr := netip.MustParseAddr(tc.addr)
			assert.Equal(t, tc.want, filter.Allowed(addr))
		})
	}
}

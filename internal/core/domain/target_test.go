// internal/core/domain/target_test.go
package domain

import (
	"testing"

	"opticx/internal/testutil"
)

func TestParseRDPTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RDPTarget
		wantErr bool
	}{
		{"bare host", "host.example.com", RDPTarget{Host: "host.example.com", Port: 3389}, false},
		{"host with port", "host.example.com:3390", RDPTarget{Host: "host.example.com", Port: 3390}, false},
		{"rdp scheme", "rdp://10.0.0.5:3389", RDPTarget{Host: "10.0.0.5", Port: 3389}, false},
		{"scheme without port", "rdp://10.0.0.5", RDPTarget{Host: "10.0.0.5", Port: 3389}, false},
		{"ipv6 with port", "[2001:db8::1]:3389", RDPTarget{Host: "2001:db8::1", Port: 3389}, false},
		{"empty", "", RDPTarget{}, true},
		{"bad port", "host:notaport", RDPTarget{}, true},
		{"port out of range", "host:70000", RDPTarget{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRDPTarget(tt.input)
			if tt.wantErr {
				testutil.AssertError(t, err, "expected parse error")
				return
			}
			testutil.AssertNoError(t, err, "parse")
			testutil.AssertEqual(t, got, tt.want, "parsed target")
		})
	}
}

func TestParseWebTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com", false},
		{"http with port", "http://example.com:8080/admin", false},
		{"empty", "", true},
		{"no scheme", "example.com", true},
		{"ftp scheme", "ftp://example.com", true},
		{"scheme only", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWebTarget(tt.input)
			if tt.wantErr {
				testutil.AssertError(t, err, "expected parse error")
				return
			}
			testutil.AssertNoError(t, err, "parse")
		})
	}
}

func TestRDPTarget_Address(t *testing.T) {
	target := RDPTarget{Host: "10.0.0.5", Port: 3390}
	testutil.AssertEqual(t, target.Address(), "10.0.0.5:3390", "address")
	testutil.AssertEqual(t, target.String(), "rdp://10.0.0.5:3390", "string")

	v6 := RDPTarget{Host: "2001:db8::1", Port: 3389}
	testutil.AssertEqual(t, v6.Address(), "[2001:db8::1]:3389", "ipv6 address is bracketed")
}

func TestFileStem_Sanitization(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{"rdp", RDPTarget{Host: "srv-01.corp.local", Port: 3389}, "srv-01.corp.local-3389"},
		{"web plain", WebTarget{URL: "https://example.com"}, "example.com"},
		{"web with path", WebTarget{URL: "https://example.com:8443/admin/login"}, "example.com_8443_admin_login"},
		{"trailing slash stripped", WebTarget{URL: "http://example.com/"}, "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.target.FileStem(), tt.want, "file stem")
		})
	}
}

func TestTargetList(t *testing.T) {
	empty := &TargetList{}
	testutil.AssertTrue(t, empty.Empty(), "empty list")

	list := &TargetList{
		RDP: []RDPTarget{{Host: "a", Port: 3389}},
		Web: []WebTarget{{URL: "https://b"}},
	}
	testutil.AssertEqual(t, list.Total(), 2, "total")
	testutil.AssertFalse(t, list.Empty(), "non-empty")
}

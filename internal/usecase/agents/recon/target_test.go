package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		target   string
		wantType TargetType
		wantHost string
	}{
		{"example.com", TargetDomain, "example.com"},
		{"www.example.com", TargetDomain, "example.com"},
		{"shop.example.co.uk", TargetDomain, "example.co.uk"},
		{"Example.COM.", TargetDomain, "example.com"},
		{"https://www.example.com/login?next=/", TargetURL, "www.example.com"},
		{"http://10.0.0.5:8080/", TargetURL, "10.0.0.5"},
		{"HTTPS://example.org", TargetURL, "example.org"},
		{"192.168.1.10", TargetIP, "192.168.1.10"},
		{"2001:db8::1", TargetIP, "2001:db8::1"},
		{" 8.8.8.8 ", TargetIP, "8.8.8.8"},
		{"1.2.3", TargetUnknown, "1.2.3"},
		{"localhost", TargetUnknown, "localhost"},
		{"co.uk", TargetUnknown, "co.uk"},
		{"not a host", TargetUnknown, "not a host"},
		{"http://", TargetUnknown, "http://"},
		{"", TargetUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			gotType, gotHost := Classify(tt.target)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantHost, gotHost)
		})
	}
}

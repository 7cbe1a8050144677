package recon

import (
	"net/netip"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

type TargetType string

const (
	TargetURL     TargetType = "URL"
	TargetDomain  TargetType = "Domain"
	TargetIP      TargetType = "IP Address"
	TargetUnknown TargetType = "Unknown"
)

// Classify identifies the form of target and the host a lookup should use:
// the host of a URL, the registrable domain of a hostname, or the address
// itself. Unknown forms return the trimmed input as the lookup host.
func Classify(target string) (TargetType, string) {
	target = strings.TrimSpace(target)

	if hasHTTPScheme(target) {
		u, err := url.Parse(target)
		if err != nil || u.Hostname() == "" {
			return TargetUnknown, target
		}
		return TargetURL, u.Hostname()
	}

	if addr, err := netip.ParseAddr(target); err == nil {
		return TargetIP, addr.String()
	}

	host := strings.ToLower(strings.TrimSuffix(target, "."))
	if !isHostname(host) {
		return TargetUnknown, target
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return TargetUnknown, target
	}
	return TargetDomain, registrable
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// isHostname accepts dot-separated LDH labels with at least one dot and a
// non-numeric final label.
func isHostname(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	tld := labels[len(labels)-1]
	return strings.Trim(tld, "0123456789") != ""
}

package discovery

import (
	"fmt"
	"strings"
)

// Match represents one device's response to a discovery probe
type Match struct {
	// EndpointAddress is the device's stable endpoint reference
	// (typically a urn:uuid)
	EndpointAddress string

	// Types are the device type tokens (e.g., "dn:NetworkVideoTransmitter")
	Types []string

	// Scopes are the URI-like scope tokens the device declares membership
	// in (e.g., "onvif://www.onvif.org/name/FrontDoor")
	Scopes []string

	// XAddrs are the device's advertised service addresses
	XAddrs []string

	// MetadataVersion is the device's metadata version counter
	MetadataVersion string

	// Source is the remote address the response arrived from
	Source string
}

// newMatch converts a decoded probe match entry, splitting the
// whitespace-separated token lists
func newMatch(pm probeMatch) Match {
	return Match{
		EndpointAddress: pm.EndpointReference.Address,
		Types:           strings.Fields(pm.Types),
		Scopes:          strings.Fields(pm.Scopes),
		XAddrs:          strings.Fields(pm.XAddrs),
		MetadataVersion: pm.MetadataVersion,
	}
}

// HasScope reports whether the match's scope set contains the given
// token. Comparison is exact containment of the whole token.
func (m Match) HasScope(scope string) bool {
	for _, s := range m.Scopes {
		if strings.Contains(s, scope) {
			return true
		}
	}
	return false
}

// String returns a human-readable string representation of the match
func (m Match) String() string {
	return fmt.Sprintf("%s from %s (xaddrs: %s)",
		m.EndpointAddress, m.Source, strings.Join(m.XAddrs, " "))
}

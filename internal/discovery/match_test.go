package discovery

import (
	"strings"
	"testing"
)

func TestNewMatchSplitsTokenLists(t *testing.T) {
	pm := probeMatch{
		Types:           "dn:NetworkVideoTransmitter tds:Device",
		Scopes:          "  onvif://www.onvif.org/type/ptz\nonvif://www.onvif.org/name/Garage  ",
		XAddrs:          "http://192.168.1.100/onvif/device_service",
		MetadataVersion: "4",
	}
	pm.EndpointReference.Address = "urn:uuid:1234"

	m := newMatch(pm)

	if m.EndpointAddress != "urn:uuid:1234" {
		t.Errorf("EndpointAddress = %s", m.EndpointAddress)
	}
	if len(m.Types) != 2 {
		t.Errorf("Types = %v, want 2 tokens", m.Types)
	}
	if len(m.Scopes) != 2 || m.Scopes[1] != "onvif://www.onvif.org/name/Garage" {
		t.Errorf("Scopes = %v", m.Scopes)
	}
	if len(m.XAddrs) != 1 {
		t.Errorf("XAddrs = %v", m.XAddrs)
	}
	if m.MetadataVersion != "4" {
		t.Errorf("MetadataVersion = %s", m.MetadataVersion)
	}
}

func TestHasScope(t *testing.T) {
	m := Match{Scopes: []string{
		"onvif://www.onvif.org/type/video_encoder",
		"urn:other:vendor",
	}}

	if !m.HasScope(ONVIFScope) {
		t.Error("scope list containing an onvif token should match")
	}
	if !m.HasScope("urn:other") {
		t.Error("substring of a scope token should match")
	}
	if m.HasScope("onvif://www.example.com") {
		t.Error("absent scope should not match")
	}

	foreign := Match{Scopes: []string{"urn:other:vendor"}}
	if foreign.HasScope(ONVIFScope) {
		t.Error("match without any onvif scope should not pass the filter")
	}
}

func TestMatchString(t *testing.T) {
	m := Match{
		EndpointAddress: "urn:uuid:1234",
		XAddrs:          []string{"http://192.168.1.100/onvif/device_service"},
		Source:          "192.168.1.100:3702",
	}

	s := m.String()
	for _, want := range []string{"urn:uuid:1234", "192.168.1.100:3702", "http://192.168.1.100/onvif/device_service"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

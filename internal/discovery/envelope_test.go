package discovery

import (
	"strings"
	"testing"
)

func TestBuildProbe(t *testing.T) {
	data, messageID, err := buildProbe()
	if err != nil {
		t.Fatalf("buildProbe() error = %v", err)
	}

	payload := string(data)
	if !strings.HasPrefix(payload, "<?xml") {
		t.Error("probe should start with an XML declaration")
	}
	for _, want := range []string{
		`xmlns:s="http://www.w3.org/2003/05/soap-envelope"`,
		`xmlns:a="http://schemas.xmlsoap.org/ws/2004/08/addressing"`,
		`xmlns:d="http://schemas.xmlsoap.org/ws/2005/04/discovery"`,
		"<a:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe</a:Action>",
		"<a:To>urn:schemas-xmlsoap-org:ws:2005:04:discovery</a:To>",
		"<d:Probe>",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("probe missing %q:\n%s", want, payload)
		}
	}

	if !strings.HasPrefix(messageID, "uuid:") {
		t.Errorf("messageID = %s, want a uuid: URN", messageID)
	}
	if !strings.Contains(payload, "<a:MessageID>"+messageID+"</a:MessageID>") {
		t.Error("probe body should carry the returned message ID")
	}
}

func TestBuildProbeFreshMessageID(t *testing.T) {
	_, first, err := buildProbe()
	if err != nil {
		t.Fatalf("buildProbe() error = %v", err)
	}
	_, second, err := buildProbe()
	if err != nil {
		t.Fatalf("buildProbe() error = %v", err)
	}
	if first == second {
		t.Errorf("consecutive probes share message ID %s", first)
	}
}

// A representative probe match response, after the shape real cameras send.
// Note the SOAP 1.1 envelope namespace: parsing matches on local names only.
const sampleProbeMatches = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"
                   xmlns:wsa="http://schemas.xmlsoap.org/ws/2004/08/addressing"
                   xmlns:d="http://schemas.xmlsoap.org/ws/2005/04/discovery"
                   xmlns:dn="http://www.onvif.org/ver10/network/wsdl">
  <SOAP-ENV:Header>
    <wsa:RelatesTo>uuid:84ede3de-7dec-11d0-c360-f01234567890</wsa:RelatesTo>
    <wsa:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches</wsa:Action>
  </SOAP-ENV:Header>
  <SOAP-ENV:Body>
    <d:ProbeMatches>
      <d:ProbeMatch>
        <wsa:EndpointReference>
          <wsa:Address>urn:uuid:2419d68a-2dd2-21b2-a205-ec3d9ad0819c</wsa:Address>
        </wsa:EndpointReference>
        <d:Types>dn:NetworkVideoTransmitter</d:Types>
        <d:Scopes>onvif://www.onvif.org/type/video_encoder onvif://www.onvif.org/name/FrontDoor onvif://www.onvif.org/hardware/Cam9000</d:Scopes>
        <d:XAddrs>http://192.168.1.100/onvif/device_service http://[fe80::1]/onvif/device_service</d:XAddrs>
        <d:MetadataVersion>1</d:MetadataVersion>
      </d:ProbeMatch>
    </d:ProbeMatches>
  </SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

func TestParseProbeMatches(t *testing.T) {
	matches, err := parseProbeMatches([]byte(sampleProbeMatches))
	if err != nil {
		t.Fatalf("parseProbeMatches() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.EndpointAddress != "urn:uuid:2419d68a-2dd2-21b2-a205-ec3d9ad0819c" {
		t.Errorf("EndpointAddress = %s", m.EndpointAddress)
	}
	if len(m.Types) != 1 || m.Types[0] != "dn:NetworkVideoTransmitter" {
		t.Errorf("Types = %v", m.Types)
	}
	if len(m.Scopes) != 3 {
		t.Errorf("Scopes = %v, want 3 tokens", m.Scopes)
	}
	if len(m.XAddrs) != 2 || m.XAddrs[0] != "http://192.168.1.100/onvif/device_service" {
		t.Errorf("XAddrs = %v", m.XAddrs)
	}
	if m.MetadataVersion != "1" {
		t.Errorf("MetadataVersion = %s", m.MetadataVersion)
	}
}

func TestParseProbeMatchesEmpty(t *testing.T) {
	payload := `<?xml version="1.0"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
            xmlns:d="http://schemas.xmlsoap.org/ws/2005/04/discovery">
  <s:Body><d:ProbeMatches></d:ProbeMatches></s:Body>
</s:Envelope>`

	matches, err := parseProbeMatches([]byte(payload))
	if err != nil {
		t.Fatalf("parseProbeMatches() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}

func TestParseProbeMatchesMalformed(t *testing.T) {
	if _, err := parseProbeMatches([]byte("<s:Envelope>not xml")); err == nil {
		t.Error("malformed payload should fail to parse")
	}
}

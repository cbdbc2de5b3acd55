package discovery

import (
	"encoding/xml"
	"fmt"

	"github.com/google/uuid"
)

// WS-Discovery protocol constants
const (
	envelopeNS   = "http://www.w3.org/2003/05/soap-envelope"
	addressingNS = "http://schemas.xmlsoap.org/ws/2004/08/addressing"
	discoveryNS  = "http://schemas.xmlsoap.org/ws/2005/04/discovery"

	probeAction = "http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe"
	probeTarget = "urn:schemas-xmlsoap-org:ws:2005:04:discovery"
)

type probeEnvelope struct {
	XMLName xml.Name    `xml:"s:Envelope"`
	EnvNS   string      `xml:"xmlns:s,attr"`
	AddrNS  string      `xml:"xmlns:a,attr"`
	DiscNS  string      `xml:"xmlns:d,attr"`
	Header  probeHeader `xml:"s:Header"`
	Body    probeBody   `xml:"s:Body"`
}

type probeHeader struct {
	MessageID string `xml:"a:MessageID"`
	Action    string `xml:"a:Action"`
	To        string `xml:"a:To"`
}

type probeBody struct {
	Probe struct{} `xml:"d:Probe"`
}

// buildProbe serializes a fresh probe envelope with a random message ID.
// Returns the payload and the generated message ID.
func buildProbe() ([]byte, string, error) {
	messageID := fmt.Sprintf("uuid:%s", uuid.New())

	env := probeEnvelope{
		EnvNS:  envelopeNS,
		AddrNS: addressingNS,
		DiscNS: discoveryNS,
		Header: probeHeader{
			MessageID: messageID,
			Action:    probeAction,
			To:        probeTarget,
		},
	}

	data, err := xml.Marshal(env)
	if err != nil {
		return nil, "", err
	}

	return append([]byte(xml.Header), data...), messageID, nil
}

// matchesEnvelope is the decoded shell of a probe match response.
// Element names are matched by local name only; devices are not uniform
// about envelope namespace versions.
type matchesEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		ProbeMatches struct {
			ProbeMatch []probeMatch `xml:"ProbeMatch"`
		} `xml:"ProbeMatches"`
	} `xml:"Body"`
}

type probeMatch struct {
	EndpointReference struct {
		Address string `xml:"Address"`
	} `xml:"EndpointReference"`
	Types           string `xml:"Types"`
	Scopes          string `xml:"Scopes"`
	XAddrs          string `xml:"XAddrs"`
	MetadataVersion string `xml:"MetadataVersion"`
}

// parseProbeMatches decodes a probe match envelope and extracts its
// match entries
func parseProbeMatches(data []byte) ([]Match, error) {
	var env matchesEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(env.Body.ProbeMatches.ProbeMatch))
	for _, pm := range env.Body.ProbeMatches.ProbeMatch {
		matches = append(matches, newMatch(pm))
	}
	return matches, nil
}

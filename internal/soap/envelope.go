package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// SOAP 1.2 envelope namespace
const envelopeNS = "http://www.w3.org/2003/05/soap-envelope"

// nsDecl is one xmlns:prefix="uri" declaration on the request envelope
type nsDecl struct {
	Prefix string
	URI    string
}

type requestEnvelope struct {
	XMLName xml.Name   `xml:"s:Envelope"`
	EnvNS   string     `xml:"xmlns:s,attr"`
	Extra   []xml.Attr `xml:",any,attr"`
	Header  *requestHeader
	Body    requestBody `xml:"s:Body"`
}

type requestHeader struct {
	XMLName  xml.Name `xml:"s:Header"`
	Security *security
}

type requestBody struct {
	Inner []byte `xml:",innerxml"`
}

// buildEnvelope serializes request into a complete SOAP envelope,
// attaching a WS-Security header when the client has credentials.
func (c *Client) buildEnvelope(request any) ([]byte, error) {
	inner, err := xml.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	env := requestEnvelope{
		EnvNS: envelopeNS,
		Body:  requestBody{Inner: inner},
	}

	for _, decl := range c.namespaceAttrs() {
		env.Extra = append(env.Extra, xml.Attr{
			Name:  xml.Name{Local: "xmlns:" + decl.Prefix},
			Value: decl.URI,
		})
	}

	if c.creds != nil {
		env.Header = &requestHeader{Security: newSecurity(c.creds)}
	}

	data, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return append([]byte(xml.Header), data...), nil
}

// responseEnvelope is the decoded shell of a SOAP response. Element names
// are matched by local name only so both SOAP 1.1 and 1.2 responses decode.
type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`

	raw []byte
}

type responseBody struct {
	Fault *fault `xml:"Fault"`
}

// fault is a SOAP 1.2 fault element
type fault struct {
	Code   faultCode `xml:"Code"`
	Reason struct {
		Text []string `xml:"Text"`
	} `xml:"Reason"`
}

type faultCode struct {
	Value   string     `xml:"Value"`
	Subcode *faultCode `xml:"Subcode"`
}

func parseEnvelope(data []byte) (*responseEnvelope, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	env.raw = data
	return &env, nil
}

// decodeBody unmarshals the first child element of the SOAP body into the
// caller's response struct. Decoding walks the full document so namespace
// prefixes declared on the envelope element resolve correctly.
func (e *responseEnvelope) decodeBody(response any) error {
	d := xml.NewDecoder(bytes.NewReader(e.raw))
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Body" {
			continue
		}
		for {
			tok, err := d.Token()
			if err != nil {
				return err
			}
			if child, ok := tok.(xml.StartElement); ok {
				return d.DecodeElement(response, &child)
			}
			if _, ok := tok.(xml.EndElement); ok {
				return fmt.Errorf("empty SOAP body")
			}
		}
	}
}

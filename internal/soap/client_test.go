package soap

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// Test payload types for a fake echo operation
type echoRequest struct {
	XMLName xml.Name `xml:"tns:Echo"`
	Value   string   `xml:"tns:Value"`
}

type echoResponse struct {
	XMLName xml.Name `xml:"urn:camctrl:test EchoResponse"`
	Value   string   `xml:"urn:camctrl:test Value"`
}

const echoResponseBody = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope" xmlns:tns="urn:camctrl:test">
  <s:Body>
    <tns:EchoResponse><tns:Value>pong</tns:Value></tns:EchoResponse>
  </s:Body>
</s:Envelope>`

const faultResponseBody = `<?xml version="1.0" encoding="UTF-8"?>
<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"
            xmlns:ter="http://www.onvif.org/ver10/error">
  <s:Body>
    <s:Fault>
      <s:Code>
        <s:Value>s:Sender</s:Value>
        <s:Subcode><s:Value>ter:NotAuthorized</s:Value></s:Subcode>
      </s:Code>
      <s:Reason><s:Text xml:lang="en">The action requested requires authorization</s:Text></s:Reason>
    </s:Fault>
  </s:Body>
</s:Envelope>`

func newTestClient(url string, creds *Credentials) *Client {
	client := NewClient(url, creds, 5*time.Second)
	client.RegisterNamespace("tns", "urn:camctrl:test")
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://192.168.1.100/onvif/device_service", nil, 0)

	if client.Endpoint != "http://192.168.1.100/onvif/device_service" {
		t.Errorf("Endpoint = %s, want http://192.168.1.100/onvif/device_service", client.Endpoint)
	}

	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}

	if client.Credentials() != nil {
		t.Error("Credentials() should be nil when none supplied")
	}
}

func TestCallRoundTrip(t *testing.T) {
	var sentBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sentBody = string(body)

		if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/soap+xml") {
			t.Errorf("Content-Type = %s, want application/soap+xml", ct)
		}
		if !strings.Contains(r.Header.Get("Content-Type"), `action="urn:camctrl:test/Echo"`) {
			t.Errorf("Content-Type missing action parameter: %s", r.Header.Get("Content-Type"))
		}

		w.Header().Set("Content-Type", "application/soap+xml")
		_, _ = w.Write([]byte(echoResponseBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	var resp echoResponse
	err := client.Call("urn:camctrl:test/Echo", echoRequest{Value: "ping"}, &resp)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if resp.Value != "pong" {
		t.Errorf("Value = %s, want pong", resp.Value)
	}

	// Request envelope should carry the namespace declaration and payload
	if !strings.Contains(sentBody, `xmlns:tns="urn:camctrl:test"`) {
		t.Errorf("Request missing namespace declaration:\n%s", sentBody)
	}
	if !strings.Contains(sentBody, "<tns:Echo>") {
		t.Errorf("Request missing payload element:\n%s", sentBody)
	}
	if strings.Contains(sentBody, "wsse:Security") {
		t.Error("Unauthenticated request should not carry a security header")
	}
}

func TestCallSendsSecurityHeader(t *testing.T) {
	var sentBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sentBody = string(body)
		_, _ = w.Write([]byte(echoResponseBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &Credentials{Username: "admin", Password: "secret"})

	var resp echoResponse
	if err := client.Call("urn:camctrl:test/Echo", echoRequest{Value: "ping"}, &resp); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	for _, want := range []string{"wsse:Security", "wsse:UsernameToken", "<wsse:Username>admin</wsse:Username>"} {
		if !strings.Contains(sentBody, want) {
			t.Errorf("Request missing %q:\n%s", want, sentBody)
		}
	}
	if strings.Contains(sentBody, "secret") {
		t.Error("Request must not carry the plaintext password")
	}
}

func TestCallFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(faultResponseBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	err := client.Call("urn:camctrl:test/Echo", echoRequest{}, nil)
	if err == nil {
		t.Fatal("Call() should fail on a fault response")
	}

	var soapErr *Error
	if !errors.As(err, &soapErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}

	if !soapErr.Authorization {
		t.Error("NotAuthorized fault subcode should set Authorization")
	}
	if !strings.Contains(soapErr.FaultCode, "NotAuthorized") {
		t.Errorf("FaultCode = %s, want ter:NotAuthorized", soapErr.FaultCode)
	}
	if soapErr.FaultReason == "" {
		t.Error("FaultReason should carry the fault text")
	}
}

func TestCallUnauthorizedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &Credentials{Username: "admin", Password: "wrong"})

	err := client.Call("urn:camctrl:test/Echo", echoRequest{}, nil)

	var soapErr *Error
	if !errors.As(err, &soapErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if !soapErr.Authorization {
		t.Error("HTTP 401 should set Authorization")
	}
}

func TestCallNetworkError(t *testing.T) {
	// Port 1 is essentially guaranteed to refuse connections
	client := newTestClient("http://127.0.0.1:1/onvif/device_service", nil)

	err := client.Call("urn:camctrl:test/Echo", echoRequest{}, nil)

	var soapErr *Error
	if !errors.As(err, &soapErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if soapErr.Authorization {
		t.Error("Network failure should not set Authorization")
	}
	if soapErr.Unwrap() == nil {
		t.Error("Network failure should wrap the underlying error")
	}
}

func TestCallUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	err := client.Call("urn:camctrl:test/Echo", echoRequest{}, nil)

	var soapErr *Error
	if !errors.As(err, &soapErr) {
		t.Fatalf("error should be *Error, got %T", err)
	}
	if soapErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", soapErr.StatusCode, http.StatusNotFound)
	}
}

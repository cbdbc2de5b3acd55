// Package soap provides a minimal SOAP 1.2 client for ONVIF device endpoints.
//
// This package implements the single transport primitive the rest of camctrl
// is built on: a client bound to one endpoint URI, optional credentials, and
// a fixed timeout, exposing one generic Call operation. It deliberately knows
// nothing about individual ONVIF operations; request and response payloads
// are caller-supplied structs serialized with encoding/xml.
//
// # Usage Example
//
//	client := soap.NewClient("http://192.168.1.100/onvif/device_service",
//	    &soap.Credentials{Username: "admin", Password: "secret"},
//	    10*time.Second)
//
//	var resp GetUsersResponse
//	err := client.Call("http://www.onvif.org/ver10/device/wsdl/GetUsers",
//	    GetUsers{}, &resp)
//
// # Authentication
//
// When credentials are present, each request carries a WS-Security
// UsernameToken header using password digest authentication
// (Base64(SHA1(nonce + created + password))). A fresh nonce is generated
// per call. HTTP 401 responses and WS-Security fault subcodes are surfaced
// as authorization errors.
//
// # Error Handling
//
// All failures are reported as *Error, which distinguishes authorization
// failures (rejected credentials) from other transport failures (network
// errors, SOAP faults, unexpected status codes). Calls are never retried.
//
// # Thread Safety
//
// Client instances are safe for concurrent use; each call builds its own
// envelope and security header.
package soap

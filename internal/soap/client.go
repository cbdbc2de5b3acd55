package soap

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/WillBuik/camctrl/internal/logging"
)

// DefaultTimeout is the default request timeout for service calls
const DefaultTimeout = 10 * time.Second

// Credentials is a username/password pair for WS-Security authentication.
// Both fields are required; callers that have no credentials pass a nil
// *Credentials instead.
type Credentials struct {
	Username string
	Password string
}

// Client is a SOAP 1.2 client bound to a single service endpoint
type Client struct {
	// Endpoint is the service endpoint URI (e.g., "http://192.168.1.100/onvif/device_service")
	Endpoint string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	creds      *Credentials
	namespaces map[string]string
}

// NewClient creates a new SOAP client for the given endpoint.
// creds may be nil for unauthenticated access. A zero timeout
// falls back to DefaultTimeout.
func NewClient(endpoint string, creds *Credentials, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
		creds:      creds,
		namespaces: make(map[string]string),
	}
}

// RegisterNamespace declares an XML namespace prefix on every request
// envelope sent by this client. Payload structs can then use the prefix
// in their element names.
func (c *Client) RegisterNamespace(prefix, uri string) {
	c.namespaces[prefix] = uri
}

// Credentials returns the credentials this client was constructed with,
// or nil if none were supplied.
func (c *Client) Credentials() *Credentials {
	return c.creds
}

// namespaceAttrs returns the registered namespace declarations in a
// stable order for envelope marshaling.
func (c *Client) namespaceAttrs() []nsDecl {
	prefixes := make([]string, 0, len(c.namespaces))
	for prefix := range c.namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	decls := make([]nsDecl, 0, len(prefixes))
	for _, prefix := range prefixes {
		decls = append(decls, nsDecl{Prefix: prefix, URI: c.namespaces[prefix]})
	}
	return decls
}

// Call performs one SOAP request/response exchange.
// action is the SOAP action URI for the operation; request is serialized
// into the envelope body; the response body is decoded into response
// unless response is nil. Calls are never retried.
func (c *Client) Call(action string, request any, response any) error {
	payload, err := c.buildEnvelope(request)
	if err != nil {
		return &Error{Message: "failed to build request envelope", Err: err}
	}

	logging.LogSOAPPayload(c.Endpoint, "sent", payload)

	req, err := http.NewRequest(http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return &Error{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type",
		fmt.Sprintf(`application/soap+xml; charset=utf-8; action=%q`, action))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: "failed to read response body", StatusCode: resp.StatusCode, Err: err}
	}

	logging.LogSOAPCall(c.Endpoint, action, resp.StatusCode)
	logging.LogSOAPPayload(c.Endpoint, "received", body)

	if resp.StatusCode == http.StatusUnauthorized {
		return &Error{
			Authorization: true,
			Message:       "credentials rejected by device",
			StatusCode:    resp.StatusCode,
		}
	}

	// Fault bodies arrive with 400/500 status codes, so parse before
	// rejecting on status.
	env, parseErr := parseEnvelope(body)
	if parseErr == nil && env.Body.Fault != nil {
		return faultError(env.Body.Fault, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if parseErr != nil {
		return &Error{Message: "failed to parse response envelope", StatusCode: resp.StatusCode, Err: parseErr}
	}

	if response == nil {
		return nil
	}

	if err := env.decodeBody(response); err != nil {
		return &Error{Message: "failed to decode response body", StatusCode: resp.StatusCode, Err: err}
	}

	return nil
}

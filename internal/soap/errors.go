package soap

import (
	"fmt"
	"strings"
)

// Error represents a failed SOAP exchange
type Error struct {
	// Authorization is true when the device rejected the request's credentials
	Authorization bool

	// Message is a human-readable description of the failure
	Message string

	// StatusCode is the HTTP status code, if a response was received
	StatusCode int

	// FaultCode and FaultReason carry the SOAP fault details, if the
	// device returned a fault body
	FaultCode   string
	FaultReason string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.FaultReason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.FaultReason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// WS-Security fault subcodes that indicate rejected credentials
var authFaultSubcodes = []string{
	"NotAuthorized",
	"FailedAuthentication",
	"OperationProhibited",
}

// faultError converts a decoded SOAP fault into an *Error, flagging
// authentication subcodes as authorization failures
func faultError(f *fault, statusCode int) *Error {
	code := f.Code.Value
	authorization := false
	for sub := f.Code.Subcode; sub != nil; sub = sub.Subcode {
		code = sub.Value
		for _, authCode := range authFaultSubcodes {
			if strings.Contains(sub.Value, authCode) {
				authorization = true
			}
		}
	}

	return &Error{
		Authorization: authorization,
		Message:       "device returned a fault",
		StatusCode:    statusCode,
		FaultCode:     code,
		FaultReason:   strings.Join(f.Reason.Text, "; "),
	}
}

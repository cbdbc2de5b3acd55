package onvif

import (
	"errors"
	"fmt"

	"github.com/WillBuik/camctrl/internal/soap"
)

// ErrorKind represents the category of device error that occurred
type ErrorKind int

const (
	// ErrUnexpectedBehavior indicates the device violated a resolution
	// invariant (advertised a service outside its own authority, or a
	// device management address that contradicts the supplied one)
	ErrUnexpectedBehavior ErrorKind = iota
	// ErrTransport indicates a network or serialization failure from the
	// SOAP transport
	ErrTransport
	// ErrUnauthorized indicates missing or rejected credentials
	ErrUnauthorized
	// ErrUnknown indicates an unclassified failure
	ErrUnknown
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedBehavior:
		return "Unexpected behavior"
	case ErrTransport:
		return "Transport error"
	case ErrUnauthorized:
		return "Unauthorized"
	case ErrUnknown:
		return "Unknown error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// DeviceError represents an error from a device operation
type DeviceError struct {
	Kind    ErrorKind // Category of error
	Message string    // Human-readable error message
	Got     string    // Offending URI (ErrUnexpectedBehavior)
	Want    string    // Expected URI or prefix (ErrUnexpectedBehavior)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	switch {
	case e.Kind == ErrUnexpectedBehavior && e.Got != "":
		return fmt.Sprintf("%s: %s: got %s, want %s", e.Kind, e.Message, e.Got, e.Want)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewUnexpectedBehavior creates an error for a device that violated a
// resolution invariant, naming the offending and expected URIs
func NewUnexpectedBehavior(message, got, want string) *DeviceError {
	return &DeviceError{
		Kind:    ErrUnexpectedBehavior,
		Message: message,
		Got:     got,
		Want:    want,
	}
}

// NewUnauthorized creates a credential error
func NewUnauthorized(message string) *DeviceError {
	return &DeviceError{
		Kind:    ErrUnauthorized,
		Message: message,
	}
}

// NewUnknown creates an unclassified error with an optional detail message
func NewUnknown(message string, err error) *DeviceError {
	return &DeviceError{
		Kind:    ErrUnknown,
		Message: message,
		Err:     err,
	}
}

// wrapTransport maps a transport failure onto the device error model.
// Authorization failures from the SOAP layer become ErrUnauthorized;
// everything else is propagated unchanged as ErrTransport.
func wrapTransport(message string, err error) *DeviceError {
	var soapErr *soap.Error
	if errors.As(err, &soapErr) && soapErr.Authorization {
		return &DeviceError{
			Kind:    ErrUnauthorized,
			Message: message,
			Err:     err,
		}
	}
	return &DeviceError{
		Kind:    ErrTransport,
		Message: message,
		Err:     err,
	}
}

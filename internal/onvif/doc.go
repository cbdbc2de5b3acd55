// Package onvif resolves and operates ONVIF camera devices.
//
// The central type is Device, a bundle of SOAP service clients resolved
// from a single device management URI. Connect queries the device for its
// advertised service list and validates every advertisement before
// constructing clients.
//
// # Service Resolution
//
// Resolution is all-or-nothing. Each advertised service address must be
// within the device's own authority (scheme, host, and port of the supplied
// URI), and the advertised device management address must match the supplied
// URI exactly. Any violation fails the whole resolution - a device that
// cannot describe itself correctly is not partially trusted. Services with
// unrecognized namespaces are logged and skipped; they are never an error.
//
// # Usage Example
//
//	dev, err := onvif.Connect("http://192.168.1.100/onvif/device_service",
//	    "admin", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	users, err := dev.GetUsers()
//	if media := dev.Service(onvif.ServiceMedia); media != nil {
//	    // device advertises a media service
//	}
//
// # Error Handling
//
// All failures are *DeviceError with one of four kinds: ErrUnexpectedBehavior
// (the device violated a resolution invariant), ErrTransport (network or
// serialization failure, propagated unchanged and never retried),
// ErrUnauthorized (missing or rejected credentials), and ErrUnknown.
// Operations that find nothing to do, like a password change for a
// username the device does not have, report that as a distinct non-error
// outcome.
package onvif

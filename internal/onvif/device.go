package onvif

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/WillBuik/camctrl/internal/logging"
	"github.com/WillBuik/camctrl/internal/soap"
)

// ServiceTimeout is the fixed timeout for every service RPC
const ServiceTimeout = 10 * time.Second

// ServiceKind identifies one of the optional ONVIF sub-services a device
// may advertise alongside its device management service
type ServiceKind int

const (
	ServiceEvents ServiceKind = iota
	ServiceDeviceIO
	ServiceMedia
	ServiceMedia2
	ServiceImaging
	ServicePTZ
	ServiceAnalytics
)

// String returns a human-readable name for the service kind
func (k ServiceKind) String() string {
	switch k {
	case ServiceEvents:
		return "Events"
	case ServiceDeviceIO:
		return "DeviceIO"
	case ServiceMedia:
		return "Media"
	case ServiceMedia2:
		return "Media2"
	case ServiceImaging:
		return "Imaging"
	case ServicePTZ:
		return "PTZ"
	case ServiceAnalytics:
		return "Analytics"
	default:
		return fmt.Sprintf("ServiceKind(%d)", k)
	}
}

// serviceNamespaces maps advertised service namespaces to service kinds.
// Namespaces outside this table are skipped during resolution; the device
// management namespace is handled separately.
var serviceNamespaces = map[string]ServiceKind{
	"http://www.onvif.org/ver10/events/wsdl":    ServiceEvents,
	"http://www.onvif.org/ver10/deviceIO/wsdl":  ServiceDeviceIO,
	"http://www.onvif.org/ver10/media/wsdl":     ServiceMedia,
	"http://www.onvif.org/ver20/media/wsdl":     ServiceMedia2,
	"http://www.onvif.org/ver20/imaging/wsdl":   ServiceImaging,
	"http://www.onvif.org/ver20/ptz/wsdl":       ServicePTZ,
	"http://www.onvif.org/ver20/analytics/wsdl": ServiceAnalytics,
}

// Device is a resolved ONVIF device: the device management client plus one
// client per advertised, recognized sub-service. It is immutable after
// Connect returns.
type Device struct {
	devicemgmt *soap.Client
	services   map[ServiceKind]*soap.Client
}

// newServiceClient builds a SOAP client for one service endpoint with the
// ONVIF namespace prefixes registered.
func newServiceClient(endpoint string, creds *soap.Credentials) *soap.Client {
	client := soap.NewClient(endpoint, creds, ServiceTimeout)
	client.RegisterNamespace("tds", DeviceNamespace)
	client.RegisterNamespace("trt", MediaNamespace)
	client.RegisterNamespace("tt", SchemaNamespace)
	return client
}

// Connect resolves a device management URI into a Device handle.
//
// It queries the device for its full service list and constructs one
// client per advertised, recognized service. Resolution is all-or-nothing:
// a service address outside the device's own authority, or a device
// management address that contradicts the supplied URI, fails the entire
// resolution with ErrUnexpectedBehavior. Unrecognized service namespaces
// are skipped.
//
// username and password must be supplied together or not at all; a
// half-supplied pair fails with ErrUnauthorized before any network call.
func Connect(uri string, username, password string) (*Device, error) {
	if (username == "") != (password == "") {
		return nil, NewUnauthorized("username and password must be specified together")
	}

	var creds *soap.Credentials
	if username != "" {
		creds = &soap.Credentials{Username: username, Password: password}
	}

	devicemgmtURI, err := url.Parse(uri)
	if err != nil {
		return nil, NewUnknown("could not parse device management URI", err)
	}

	baseURI := *devicemgmtURI
	baseURI.Path = "/"
	baseURI.RawQuery = ""

	dev := &Device{
		devicemgmt: newServiceClient(devicemgmtURI.String(), creds),
		services:   make(map[ServiceKind]*soap.Client),
	}

	var services GetServicesResponse
	err = dev.devicemgmt.Call(DeviceNamespace+"/GetServices", GetServices{}, &services)
	if err != nil {
		return nil, wrapTransport("failed to get service list", err)
	}

	for _, s := range services.Service {
		addr, err := url.Parse(s.XAddr)
		if err != nil {
			return nil, NewUnknown(fmt.Sprintf("could not parse service URI %q", s.XAddr), err)
		}
		if !strings.HasPrefix(addr.String(), baseURI.String()) {
			return nil, NewUnexpectedBehavior("service URI is not within base URI",
				s.XAddr, baseURI.String())
		}

		if s.Namespace == DeviceNamespace {
			if s.XAddr != devicemgmtURI.String() {
				return nil, NewUnexpectedBehavior("advertised device management URI does not match",
					s.XAddr, devicemgmtURI.String())
			}
			continue
		}

		kind, ok := serviceNamespaces[s.Namespace]
		if !ok {
			logging.Debug("Unknown service advertised",
				zap.String("namespace", s.Namespace),
				zap.String("address", s.XAddr),
			)
			continue
		}

		dev.services[kind] = newServiceClient(addr.String(), creds)
	}

	return dev, nil
}

// DeviceService returns the device management client
func (d *Device) DeviceService() *soap.Client {
	return d.devicemgmt
}

// Service returns the client for an optional sub-service, or nil if the
// device did not advertise it
func (d *Device) Service(kind ServiceKind) *soap.Client {
	return d.services[kind]
}

// Services returns the kinds of all resolved sub-services
func (d *Device) Services() []ServiceKind {
	kinds := make([]ServiceKind, 0, len(d.services))
	for kind := range d.services {
		kinds = append(kinds, kind)
	}
	return kinds
}

// GetUsers returns the device's user account list
func (d *Device) GetUsers() ([]User, error) {
	var resp GetUsersResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/GetUsers", GetUsers{}, &resp); err != nil {
		return nil, wrapTransport("failed to get users", err)
	}
	return resp.User, nil
}

// SetPassword changes the password of an existing user account.
//
// The account is looked up by exact username match; if it does not exist,
// SetPassword returns (false, nil) without issuing any mutating call.
// The update carries the account's existing level and extension unchanged,
// since the protocol requires the full record.
func (d *Device) SetPassword(username, password string) (bool, error) {
	users, err := d.GetUsers()
	if err != nil {
		return false, err
	}

	var existing *User
	for i := range users {
		if users[i].Username == username {
			existing = &users[i]
			break
		}
	}
	if existing == nil {
		return false, nil
	}

	update := SetUser{
		User: []UserRequest{{
			Username:  username,
			Password:  &password,
			UserLevel: existing.UserLevel,
			Extension: existing.Extension,
		}},
	}
	var resp SetUserResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/SetUser", update, &resp); err != nil {
		return false, wrapTransport("failed to set user", err)
	}
	return true, nil
}

// SystemReboot reboots the device and returns its free-text status message
func (d *Device) SystemReboot() (string, error) {
	var resp SystemRebootResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/SystemReboot", SystemReboot{}, &resp); err != nil {
		return "", wrapTransport("failed to reboot device", err)
	}
	return resp.Message, nil
}

// GetDeviceInformation returns the device's identity information
func (d *Device) GetDeviceInformation() (*GetDeviceInformationResponse, error) {
	var resp GetDeviceInformationResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/GetDeviceInformation", GetDeviceInformation{}, &resp); err != nil {
		return nil, wrapTransport("failed to get device information", err)
	}
	return &resp, nil
}

// GetSystemDateAndTime returns the device's clock configuration
func (d *Device) GetSystemDateAndTime() (*SystemDateAndTime, error) {
	var resp GetSystemDateAndTimeResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/GetSystemDateAndTime", GetSystemDateAndTime{}, &resp); err != nil {
		return nil, wrapTransport("failed to get system date and time", err)
	}
	return &resp.SystemDateAndTime, nil
}

// GetNTP returns the device's NTP configuration
func (d *Device) GetNTP() (*NTPInformation, error) {
	var resp GetNTPResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/GetNTP", GetNTP{}, &resp); err != nil {
		return nil, wrapTransport("failed to get NTP configuration", err)
	}
	return &resp.NTPInformation, nil
}

// GetNetworkInterfaces returns the device's network interface configuration
func (d *Device) GetNetworkInterfaces() ([]NetworkInterface, error) {
	var resp GetNetworkInterfacesResponse
	if err := d.devicemgmt.Call(DeviceNamespace+"/GetNetworkInterfaces", GetNetworkInterfaces{}, &resp); err != nil {
		return nil, wrapTransport("failed to get network interfaces", err)
	}
	return resp.NetworkInterfaces, nil
}

// GetProfiles returns the device's media profiles via the Media service.
// Returns nil without error when the device does not advertise one.
func (d *Device) GetProfiles() ([]Profile, error) {
	media := d.Service(ServiceMedia)
	if media == nil {
		return nil, nil
	}
	var resp GetProfilesResponse
	if err := media.Call(MediaNamespace+"/GetProfiles", GetProfiles{}, &resp); err != nil {
		return nil, wrapTransport("failed to get media profiles", err)
	}
	return resp.Profiles, nil
}

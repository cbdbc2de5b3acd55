package onvif

import (
	"encoding/xml"
	"strings"
	"time"
)

// ONVIF namespace URIs. Request payloads use the prefixes registered on
// the SOAP client (tds, trt, tt); response payloads are matched by full
// namespace URI.
const (
	// DeviceNamespace is the device management service namespace
	DeviceNamespace = "http://www.onvif.org/ver10/device/wsdl"
	// MediaNamespace is the ver10 media service namespace
	MediaNamespace = "http://www.onvif.org/ver10/media/wsdl"
	// SchemaNamespace is the common ONVIF type schema namespace
	SchemaNamespace = "http://www.onvif.org/ver10/schema"
)

// Request payloads (prefixed element names)

type GetServices struct {
	XMLName           xml.Name `xml:"tds:GetServices"`
	IncludeCapability bool     `xml:"tds:IncludeCapability"`
}

type GetUsers struct {
	XMLName xml.Name `xml:"tds:GetUsers"`
}

type SetUser struct {
	XMLName xml.Name      `xml:"tds:SetUser"`
	User    []UserRequest `xml:"tds:User"`
}

type SystemReboot struct {
	XMLName xml.Name `xml:"tds:SystemReboot"`
}

type GetDeviceInformation struct {
	XMLName xml.Name `xml:"tds:GetDeviceInformation"`
}

type GetSystemDateAndTime struct {
	XMLName xml.Name `xml:"tds:GetSystemDateAndTime"`
}

type GetNTP struct {
	XMLName xml.Name `xml:"tds:GetNTP"`
}

type GetNetworkInterfaces struct {
	XMLName xml.Name `xml:"tds:GetNetworkInterfaces"`
}

type GetProfiles struct {
	XMLName xml.Name `xml:"trt:GetProfiles"`
}

// UserRequest is the request-side form of a user account record.
// The update protocol requires the full record, so all fields of the
// existing account are carried even when only the password changes.
type UserRequest struct {
	Username  string         `xml:"tt:Username"`
	Password  *string        `xml:"tt:Password,omitempty"`
	UserLevel string         `xml:"tt:UserLevel"`
	Extension *UserExtension `xml:"tt:Extension,omitempty"`
}

// UserExtension is an opaque vendor extension blob. It is captured as raw
// XML and re-emitted verbatim so updates preserve it unchanged.
type UserExtension struct {
	Inner string `xml:",innerxml"`
}

// Response payloads (namespace-qualified element names)

type GetServicesResponse struct {
	XMLName xml.Name  `xml:"http://www.onvif.org/ver10/device/wsdl GetServicesResponse"`
	Service []Service `xml:"http://www.onvif.org/ver10/device/wsdl Service"`
}

// Service is one advertised service descriptor: the namespace identifying
// the service type and the address it is served on
type Service struct {
	Namespace string          `xml:"http://www.onvif.org/ver10/device/wsdl Namespace"`
	XAddr     string          `xml:"http://www.onvif.org/ver10/device/wsdl XAddr"`
	Version   *ServiceVersion `xml:"http://www.onvif.org/ver10/device/wsdl Version"`
}

type ServiceVersion struct {
	Major int `xml:"http://www.onvif.org/ver10/schema Major"`
	Minor int `xml:"http://www.onvif.org/ver10/schema Minor"`
}

type GetUsersResponse struct {
	XMLName xml.Name `xml:"http://www.onvif.org/ver10/device/wsdl GetUsersResponse"`
	User    []User   `xml:"http://www.onvif.org/ver10/device/wsdl User"`
}

// User is a device user account. UserLevel and Extension are opaque
// pass-through fields preserved unchanged on password updates.
type User struct {
	Username  string         `xml:"http://www.onvif.org/ver10/schema Username"`
	Password  *string        `xml:"http://www.onvif.org/ver10/schema Password"`
	UserLevel string         `xml:"http://www.onvif.org/ver10/schema UserLevel"`
	Extension *UserExtension `xml:"http://www.onvif.org/ver10/schema Extension"`
}

type SetUserResponse struct {
	XMLName xml.Name `xml:"http://www.onvif.org/ver10/device/wsdl SetUserResponse"`
}

type SystemRebootResponse struct {
	XMLName xml.Name `xml:"http://www.onvif.org/ver10/device/wsdl SystemRebootResponse"`
	Message string   `xml:"http://www.onvif.org/ver10/device/wsdl Message"`
}

type GetDeviceInformationResponse struct {
	XMLName         xml.Name `xml:"http://www.onvif.org/ver10/device/wsdl GetDeviceInformationResponse"`
	Manufacturer    string   `xml:"http://www.onvif.org/ver10/device/wsdl Manufacturer"`
	Model           string   `xml:"http://www.onvif.org/ver10/device/wsdl Model"`
	FirmwareVersion string   `xml:"http://www.onvif.org/ver10/device/wsdl FirmwareVersion"`
	SerialNumber    string   `xml:"http://www.onvif.org/ver10/device/wsdl SerialNumber"`
	HardwareID      string   `xml:"http://www.onvif.org/ver10/device/wsdl HardwareId"`
}

type GetSystemDateAndTimeResponse struct {
	XMLName           xml.Name          `xml:"http://www.onvif.org/ver10/device/wsdl GetSystemDateAndTimeResponse"`
	SystemDateAndTime SystemDateAndTime `xml:"http://www.onvif.org/ver10/device/wsdl SystemDateAndTime"`
}

type SystemDateAndTime struct {
	DateTimeType    string    `xml:"http://www.onvif.org/ver10/schema DateTimeType"`
	DaylightSavings bool      `xml:"http://www.onvif.org/ver10/schema DaylightSavings"`
	TimeZone        *TimeZone `xml:"http://www.onvif.org/ver10/schema TimeZone"`
	UTCDateTime     *DateTime `xml:"http://www.onvif.org/ver10/schema UTCDateTime"`
	LocalDateTime   *DateTime `xml:"http://www.onvif.org/ver10/schema LocalDateTime"`
}

type TimeZone struct {
	TZ string `xml:"http://www.onvif.org/ver10/schema TZ"`
}

type DateTime struct {
	Time TimeOfDay `xml:"http://www.onvif.org/ver10/schema Time"`
	Date Date      `xml:"http://www.onvif.org/ver10/schema Date"`
}

type TimeOfDay struct {
	Hour   int `xml:"http://www.onvif.org/ver10/schema Hour"`
	Minute int `xml:"http://www.onvif.org/ver10/schema Minute"`
	Second int `xml:"http://www.onvif.org/ver10/schema Second"`
}

type Date struct {
	Year  int `xml:"http://www.onvif.org/ver10/schema Year"`
	Month int `xml:"http://www.onvif.org/ver10/schema Month"`
	Day   int `xml:"http://www.onvif.org/ver10/schema Day"`
}

// AsTime converts the device's split date/time fields into a time.Time
func (dt *DateTime) AsTime() time.Time {
	return time.Date(dt.Date.Year, time.Month(dt.Date.Month), dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, 0, time.UTC)
}

type GetNTPResponse struct {
	XMLName        xml.Name       `xml:"http://www.onvif.org/ver10/device/wsdl GetNTPResponse"`
	NTPInformation NTPInformation `xml:"http://www.onvif.org/ver10/device/wsdl NTPInformation"`
}

type NTPInformation struct {
	FromDHCP    bool          `xml:"http://www.onvif.org/ver10/schema FromDHCP"`
	NTPFromDHCP []NetworkHost `xml:"http://www.onvif.org/ver10/schema NTPFromDHCP"`
	NTPManual   []NetworkHost `xml:"http://www.onvif.org/ver10/schema NTPManual"`
}

// NetworkHost identifies an NTP server by DNS name or address
type NetworkHost struct {
	Type        string  `xml:"http://www.onvif.org/ver10/schema Type"`
	IPv4Address *string `xml:"http://www.onvif.org/ver10/schema IPv4Address"`
	IPv6Address *string `xml:"http://www.onvif.org/ver10/schema IPv6Address"`
	DNSName     *string `xml:"http://www.onvif.org/ver10/schema DNSname"`
}

// String returns the host's configured identifiers separated by spaces
func (h *NetworkHost) String() string {
	var parts []string
	if h.DNSName != nil {
		parts = append(parts, *h.DNSName)
	}
	if h.IPv4Address != nil {
		parts = append(parts, *h.IPv4Address)
	}
	if h.IPv6Address != nil {
		parts = append(parts, *h.IPv6Address)
	}
	return strings.Join(parts, " ")
}

type GetNetworkInterfacesResponse struct {
	XMLName           xml.Name           `xml:"http://www.onvif.org/ver10/device/wsdl GetNetworkInterfacesResponse"`
	NetworkInterfaces []NetworkInterface `xml:"http://www.onvif.org/ver10/device/wsdl NetworkInterfaces"`
}

type NetworkInterface struct {
	Token     string                     `xml:"token,attr"`
	Enabled   bool                       `xml:"http://www.onvif.org/ver10/schema Enabled"`
	Info      *NetworkInterfaceInfo      `xml:"http://www.onvif.org/ver10/schema Info"`
	IPv4      []IPv4NetworkInterface     `xml:"http://www.onvif.org/ver10/schema IPv4"`
	Extension *NetworkInterfaceExtension `xml:"http://www.onvif.org/ver10/schema Extension"`
}

type NetworkInterfaceInfo struct {
	Name      *string `xml:"http://www.onvif.org/ver10/schema Name"`
	HwAddress string  `xml:"http://www.onvif.org/ver10/schema HwAddress"`
	MTU       *int    `xml:"http://www.onvif.org/ver10/schema MTU"`
}

type IPv4NetworkInterface struct {
	Enabled bool              `xml:"http://www.onvif.org/ver10/schema Enabled"`
	Config  IPv4Configuration `xml:"http://www.onvif.org/ver10/schema Config"`
}

type IPv4Configuration struct {
	Manual   []PrefixedIPv4Address `xml:"http://www.onvif.org/ver10/schema Manual"`
	FromDHCP []PrefixedIPv4Address `xml:"http://www.onvif.org/ver10/schema FromDHCP"`
	DHCP     bool                  `xml:"http://www.onvif.org/ver10/schema DHCP"`
}

type PrefixedIPv4Address struct {
	Address      string `xml:"http://www.onvif.org/ver10/schema Address"`
	PrefixLength int    `xml:"http://www.onvif.org/ver10/schema PrefixLength"`
}

type NetworkInterfaceExtension struct {
	Dot11 []Dot11Configuration `xml:"http://www.onvif.org/ver10/schema Dot11"`
}

type Dot11Configuration struct {
	SSID string `xml:"http://www.onvif.org/ver10/schema SSID"`
}

type GetProfilesResponse struct {
	XMLName  xml.Name  `xml:"http://www.onvif.org/ver10/media/wsdl GetProfilesResponse"`
	Profiles []Profile `xml:"http://www.onvif.org/ver10/media/wsdl Profiles"`
}

type Profile struct {
	Token string `xml:"token,attr"`
	Name  string `xml:"http://www.onvif.org/ver10/schema Name"`
}

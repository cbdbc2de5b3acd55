// Package discovery provides WS-Discovery based device discovery for ONVIF
// cameras.
//
// This package broadcasts a WS-Discovery probe over UDP multicast
// (239.255.255.250:3702) and reports devices that respond with an ONVIF
// scope. It needs no prior knowledge of any device address.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Enumerates local network interface addresses (IPv4, non-loopback)
//  2. For each address, sequentially: binds a UDP socket, joins the
//     multicast group, and sends a probe envelope with a fresh message ID
//  3. Collects probe match responses until the per-interface timeout
//  4. Filters responses to those declaring the onvif://www.onvif.org scope
//  5. Reports each match to the caller as it arrives
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	err := scanner.Scan(func(m discovery.Match) {
//	    fmt.Printf("Found: %s\n", m)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Caveats
//
// Responses are not correlated with the probe's message ID, and a device
// visible on two local interfaces is reported once per interface. Malformed
// response packets are logged and skipped without ending the scan.
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow WS-Discovery (UDP port 3702)
package discovery

package discovery

import (
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/WillBuik/camctrl/internal/logging"
)

const (
	// MulticastAddress is the WS-Discovery multicast group
	MulticastAddress = "239.255.255.250"

	// MulticastPort is the WS-Discovery UDP port
	MulticastPort = 3702

	// DefaultTimeout is the default per-interface receive timeout
	DefaultTimeout = 5 * time.Second

	// ONVIFScope is the scope token that identifies an ONVIF device in a
	// probe match. Matches without it are discarded.
	ONVIFScope = "onvif://www.onvif.org"
)

// Scanner probes the local network for ONVIF devices via WS-Discovery
type Scanner struct {
	// Timeout is the receive timeout applied per interface; once no
	// datagram arrives within it, scanning moves to the next interface
	Timeout time.Duration
}

// NewScanner creates a new WS-Discovery scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultTimeout,
	}
}

// Scan broadcasts a probe on every local non-loopback IPv4 interface
// address, sequentially, and invokes found for each ONVIF match as it
// arrives. Matches are not deduplicated: a device visible on two local
// interfaces is reported twice. Interface enumeration failure aborts the
// whole scan; a receive timeout on one interface is normal control flow.
func (s *Scanner) Scan(found func(Match)) error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return fmt.Errorf("could not get local interfaces: %w", err)
	}

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			return fmt.Errorf("could not get addresses for %s: %w", iface.Name, err)
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}

			logging.Info("Probing interface",
				zap.String("interface", iface.Name),
				zap.String("address", ip.String()),
			)

			if err := s.probeInterface(iface, ip, found); err != nil {
				return err
			}
		}
	}

	return nil
}

// probeInterface sends one probe from the given local address and collects
// responses until the receive timeout expires
func (s *Scanner) probeInterface(iface net.Interface, local net.IP, found func(Match)) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: local})
	if err != nil {
		return fmt.Errorf("could not bind to %s: %w", local, err)
	}
	defer func() { _ = conn.Close() }()

	group := &net.UDPAddr{IP: net.ParseIP(MulticastAddress), Port: MulticastPort}
	if err := ipv4.NewPacketConn(conn).JoinGroup(&iface, &net.UDPAddr{IP: group.IP}); err != nil {
		return fmt.Errorf("could not join multicast group on %s: %w", iface.Name, err)
	}

	probe, messageID, err := buildProbe()
	if err != nil {
		return fmt.Errorf("could not build probe message: %w", err)
	}
	logging.Debug("Sending probe",
		zap.String("message_id", messageID),
		zap.String("local_addr", conn.LocalAddr().String()),
	)

	if _, err := conn.WriteToUDP(probe, group); err != nil {
		return fmt.Errorf("could not send probe: %w", err)
	}

	buf := make([]byte, 16*1024)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.Timeout)); err != nil {
			return fmt.Errorf("could not set read deadline: %w", err)
		}

		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return nil
			}
			// Treat any other receive failure like the timeout: this
			// interface is done, the scan itself continues.
			logging.Warn("Receive failed", zap.Error(err))
			return nil
		}

		logging.LogDatagram(conn.LocalAddr().String(), src.String(), buf[:n])

		// Decode as text, replacing invalid byte sequences rather than
		// failing on them.
		payload := strings.ToValidUTF8(string(buf[:n]), "�")

		matches, err := parseProbeMatches([]byte(payload))
		if err != nil {
			// One malformed packet must not end the scan; keep
			// listening until the deadline.
			logging.Warn("Discarding unparseable discovery response",
				zap.String("remote_addr", src.String()),
				zap.Error(err),
			)
			continue
		}

		for _, m := range matches {
			m.Source = src.String()
			if !m.HasScope(ONVIFScope) {
				continue
			}
			found(m)
		}
	}
}

// Scan is a convenience function to scan with a custom per-interface timeout
func Scan(timeout time.Duration, found func(Match)) error {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(found)
}

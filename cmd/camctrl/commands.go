package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/WillBuik/camctrl/internal/config"
	"github.com/WillBuik/camctrl/internal/creds"
	"github.com/WillBuik/camctrl/internal/discovery"
	"github.com/WillBuik/camctrl/internal/onvif"
)

// Command flags
var (
	cameraURI    string
	credsFile    string
	userName     string
	probeTimeout int
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&cameraURI, "uri", "", "Device management URI or configured alias")
	rootCmd.PersistentFlags().StringVar(&credsFile, "creds", "", "Credential file (JSON array of user/pass records)")
	rootCmd.PersistentFlags().StringVar(&userName, "user", "", "Username (password is prompted)")

	// Add subcommands directly to root
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(getUsersCmd)
	rootCmd.AddCommand(setUserCmd)
	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(aliasCmd)
}

// probeCmd discovers devices on the network
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Query the network for online ONVIF devices",
	Long: `Query the network for all online ONVIF compatible devices.

This command broadcasts a WS-Discovery probe on every local IPv4 interface
and prints each responding ONVIF device as it answers. No device address
or credentials are required.`,
	Example: `  # Probe with the default 5 second per-interface timeout
  camctrl probe

  # Longer timeout for slow networks
  camctrl probe --timeout 10`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 0, "Per-interface timeout in seconds (0 = configured default)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(probeTimeout) * time.Second
	if probeTimeout == 0 {
		timeout = discovery.DefaultTimeout
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences.ProbeTimeout > 0 {
			timeout = time.Duration(registry.Preferences.ProbeTimeout) * time.Second
		}
	}

	fmt.Println("Discovering cameras...")

	count := 0
	err := discovery.Scan(timeout, func(m discovery.Match) {
		count++
		fmt.Printf("%d. %s\n", count, m.EndpointAddress)
		fmt.Printf("   From:    %s\n", m.Source)
		if len(m.XAddrs) > 0 {
			fmt.Printf("   XAddrs:  %s\n", strings.Join(m.XAddrs, " "))
		}
		if len(m.Types) > 0 {
			fmt.Printf("   Types:   %s\n", strings.Join(m.Types, " "))
		}
		if len(m.Scopes) > 0 {
			fmt.Printf("   Scopes:  %s\n", strings.Join(m.Scopes, " "))
		}
		fmt.Println()
	})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the camera is powered on and on the same network segment")
		fmt.Println("  - Check that your firewall allows UDP port 3702")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --uri to address the camera directly if discovery fails")
		return nil
	}

	fmt.Printf("Found %d device(s).\n", count)
	fmt.Println("Use 'camctrl info --uri <xaddr>' to inspect a device")

	return nil
}

// infoCmd shows device configuration
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration for an ONVIF camera",
	Long: `Display the configuration of an ONVIF camera.

This command connects to the device and prints its identity information,
system time, NTP configuration, network interfaces, media profiles, and
user accounts.`,
	Example: `  # Show info for a camera by URI
  camctrl info --uri http://192.168.1.100/onvif/device_service

  # Show info with credentials from a file
  camctrl info --uri front-door --creds ~/cameras.json`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	dev, err := connectDevice()
	if err != nil {
		return err
	}

	info, err := dev.GetDeviceInformation()
	if err != nil {
		return err
	}
	fmt.Println("Device Info:")
	fmt.Printf("  Serial\t%s\n", info.SerialNumber)
	fmt.Printf("  Make\t\t%s\n", info.Manufacturer)
	fmt.Printf("  Model\t\t%s\n", info.Model)
	fmt.Printf("  Firmware\t%s\n", info.FirmwareVersion)
	fmt.Printf("  Hardware ID\t%s\n", info.HardwareID)

	if err := printDeviceTime(dev); err != nil {
		return err
	}
	if err := printNetworkInterfaces(dev); err != nil {
		return err
	}

	profiles, err := dev.GetProfiles()
	if err != nil {
		return err
	}
	if profiles != nil {
		fmt.Println("Media Profiles:")
		for _, profile := range profiles {
			fmt.Printf("  Profile\t%s (%s)\n", profile.Name, profile.Token)
		}
	}

	users, err := dev.GetUsers()
	if err != nil {
		return err
	}
	fmt.Println("Users:")
	for _, user := range users {
		fmt.Printf("  User\t\t%s (%s)\n", user.Username, user.UserLevel)
	}

	return nil
}

// printDeviceTime prints the device's clock and NTP configuration,
// flagging clock drift beyond 15 seconds from the local system time
func printDeviceTime(dev *onvif.Device) error {
	deviceTime, err := dev.GetSystemDateAndTime()
	if err != nil {
		return err
	}
	ntp, err := dev.GetNTP()
	if err != nil {
		return err
	}

	fmt.Println("Device Time:")
	fmt.Printf("  Source\t%s\n", deviceTime.DateTimeType)
	fmt.Printf("  DST\t\t%t\n", deviceTime.DaylightSavings)
	if deviceTime.TimeZone != nil {
		fmt.Printf("  TimeZone\t%s\n", deviceTime.TimeZone.TZ)
	} else {
		fmt.Println("  TimeZone\tNot Set")
	}
	if utc := deviceTime.UTCDateTime; utc != nil {
		fmt.Printf("  UTC\t\t%s", utc.AsTime().Format(time.DateTime))
		drift := utc.AsTime().Sub(time.Now().UTC())
		if drift < 0 {
			drift = -drift
		}
		if drift > 15*time.Second {
			fmt.Println(" *DOES NOT MATCH SYSTEM*")
		} else {
			fmt.Println()
		}
	} else {
		fmt.Println("  UTC\t\tNot Set")
	}
	if local := deviceTime.LocalDateTime; local != nil {
		fmt.Printf("  Local\t\t%s\n", local.AsTime().Format(time.DateTime))
	} else {
		fmt.Println("  Local\t\tNot Set")
	}

	if ntp.FromDHCP {
		fmt.Printf("  DHCP NTP\t")
		for _, host := range ntp.NTPFromDHCP {
			fmt.Printf("%s ", host.String())
		}
		fmt.Println()
	}
	fmt.Printf("  NTP\t\t")
	for _, host := range ntp.NTPManual {
		fmt.Printf("%s ", host.String())
	}
	fmt.Println()

	return nil
}

// printNetworkInterfaces prints the device's network interface configuration
func printNetworkInterfaces(dev *onvif.Device) error {
	interfaces, err := dev.GetNetworkInterfaces()
	if err != nil {
		return err
	}

	for _, iface := range interfaces {
		name := iface.Token
		if iface.Info != nil && iface.Info.Name != nil {
			name = *iface.Info.Name
		}
		fmt.Printf("Interface %s enabled=%t\n", name, iface.Enabled)

		if iface.Info != nil {
			fmt.Printf("  HW Addr\t%s\n", iface.Info.HwAddress)
			if iface.Info.MTU != nil {
				fmt.Printf("  MTU\t\t%d\n", *iface.Info.MTU)
			}
		}

		for _, ipv4 := range iface.IPv4 {
			if ipv4.Config.DHCP {
				for _, addr := range ipv4.Config.FromDHCP {
					fmt.Printf("  DHCP IP\t%s\n", addr.Address)
				}
			}
			for _, addr := range ipv4.Config.Manual {
				fmt.Printf("  IP\t\t%s\n", addr.Address)
			}
		}

		if iface.Extension != nil {
			for _, dot11 := range iface.Extension.Dot11 {
				fmt.Printf("  SSID\t\t%s\n", dot11.SSID)
			}
		}
	}

	return nil
}

// getUsersCmd lists the device's user accounts
var getUsersCmd = &cobra.Command{
	Use:     "get-users",
	Short:   "Get a list of users from a camera",
	Example: `  camctrl get-users --uri http://192.168.1.100/onvif/device_service --creds ~/cameras.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := connectDevice()
		if err != nil {
			return err
		}

		users, err := dev.GetUsers()
		if err != nil {
			return err
		}

		fmt.Println("Users:")
		for _, user := range users {
			fmt.Printf("    %s\t%s\n", user.Username, user.UserLevel)
		}
		return nil
	},
}

// setUserCmd changes a user's password
var setUserCmd = &cobra.Command{
	Use:   "set-user <username> <password>",
	Short: "Set a user's password",
	Long: `Set the password of an existing user account on a camera.

The account's user level and vendor extension data are preserved
unchanged; only the password is replaced. The account must already
exist on the device.`,
	Example: `  camctrl set-user operator newsecret --uri front-door --creds ~/cameras.json`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := connectDevice()
		if err != nil {
			return err
		}

		found, err := dev.SetPassword(args[0], args[1])
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("User %s not found.\n", args[0])
			os.Exit(1)
		}

		fmt.Printf("Password updated for %s.\n", args[0])
		return nil
	},
}

// rebootCmd reboots the device
var rebootCmd = &cobra.Command{
	Use:     "reboot",
	Short:   "Reboot a camera",
	Example: `  camctrl reboot --uri front-door --creds ~/cameras.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := connectDevice()
		if err != nil {
			return err
		}

		message, err := dev.SystemReboot()
		if err != nil {
			return err
		}
		fmt.Printf("Reboot: %s\n", message)
		return nil
	},
}

// aliasCmd manages configured camera aliases
var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage camera aliases",
	Long: `Manage camera aliases stored in the camctrl configuration file.

An alias maps a short name to a device management URI (and optionally a
default username and serial number) so other commands can take the name
in place of the full URI.`,
}

var aliasSerial string

func init() {
	aliasSetCmd.Flags().StringVar(&aliasSerial, "serial", "", "Device serial number (used to select credential file records)")

	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
	aliasCmd.AddCommand(aliasListCmd)
}

var aliasSetCmd = &cobra.Command{
	Use:     "set <name> <uri>",
	Short:   "Add or update a camera alias",
	Example: `  camctrl alias set front-door http://192.168.1.100/onvif/device_service --user admin`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[1])
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid device management URI: %s", args[1])
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		registry.SetCamera(args[0], &config.Camera{
			URI:      args[1],
			Username: userName,
			Serial:   aliasSerial,
		})
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Alias %s -> %s\n", args[0], args[1])
		return nil
	},
}

var aliasRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a camera alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if !registry.RemoveCamera(args[0]) {
			return fmt.Errorf("unknown alias: %s", args[0])
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Printf("Removed alias %s\n", args[0])
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured camera aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Cameras) == 0 {
			fmt.Println("No aliases configured.")
			return nil
		}
		for name, camera := range registry.Cameras {
			fmt.Printf("%s\t%s\n", name, camera.URI)
		}
		return nil
	},
}

// connectDevice resolves the --uri target and credentials and connects
func connectDevice() (*onvif.Device, error) {
	uri, camera, err := resolveTarget()
	if err != nil {
		return nil, err
	}

	username, password, err := resolveCredentials(camera)
	if err != nil {
		return nil, err
	}

	return onvif.Connect(uri, username, password)
}

// resolveTarget turns the --uri flag into a device management URI. A value
// with a URI scheme is used literally; anything else is looked up as a
// configured alias.
func resolveTarget() (string, *config.Camera, error) {
	if cameraURI == "" {
		return "", nil, fmt.Errorf("no camera specified (use --uri)")
	}

	if u, err := url.Parse(cameraURI); err == nil && u.Scheme != "" {
		return cameraURI, nil, nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return "", nil, err
	}
	camera := registry.GetCamera(cameraURI)
	if camera == nil {
		return "", nil, fmt.Errorf("unknown camera alias: %s", cameraURI)
	}
	return camera.URI, camera, nil
}

// resolveCredentials picks the credentials for a connection, in order:
// explicit --user (password prompted), then the --creds file, then the
// configured default credential file, then the alias's default username
// (password prompted). Returns empty strings when nothing applies.
func resolveCredentials(camera *config.Camera) (string, string, error) {
	if userName != "" {
		password, err := promptPassword(userName)
		return userName, password, err
	}

	serial := ""
	if camera != nil {
		serial = camera.Serial
	}

	path := credsFile
	if path == "" {
		if registry, err := config.LoadRegistry(); err == nil {
			path = registry.Preferences.CredsFile
		}
	}
	if path != "" {
		record, err := creds.Load(path, serial)
		if err != nil {
			return "", "", fmt.Errorf("could not load credential file: %w", err)
		}
		if record != nil {
			return record.User, record.Pass, nil
		}
	}

	if camera != nil && camera.Username != "" {
		password, err := promptPassword(camera.Username)
		return camera.Username, password, err
	}

	return "", "", nil
}

// promptPassword reads a password from the terminal without echo
func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(password), nil
}

// Camctrl is a control utility for ONVIF network cameras.
//
// It provides WS-Discovery device discovery and direct device commands
// (device information, user management, reboot) over the ONVIF SOAP
// services. Cameras are addressed by their device management URI or by a
// configured alias.
//
// Usage:
//
//	camctrl [command] [flags]
//
// See 'camctrl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WillBuik/camctrl/internal/logging"
	"github.com/WillBuik/camctrl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "camctrl",
	Short: "ONVIF Camera Control Utility",
	Long: `A standalone utility for controlling ONVIF network cameras.

Provides WS-Discovery device discovery, device information display,
user management, and reboot commands for ONVIF-compatible cameras.

Cameras are addressed with --uri, either as a full device management URI
(e.g., http://192.168.1.100/onvif/device_service) or as an alias
configured with 'camctrl alias set'.`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("camctrl %s (commit: %s)\n", version.Version, version.Commit)
	},
}

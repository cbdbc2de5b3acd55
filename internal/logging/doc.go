// Package logging provides structured logging for camctrl.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. Logging is silent by default so command
// output stays clean; set the CAMCTRL_LOG_LEVEL environment variable to
// enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (SOAP payloads, discovery datagrams)
//   - Info: Normal operations (SOAP calls, probe progress)
//   - Warn: Non-fatal issues (unparseable discovery responses, skipped services)
//   - Error: Fatal issues (resolution failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Service resolved",
//	    zap.String("namespace", "http://www.onvif.org/ver10/media/wsdl"),
//	    zap.String("address", "http://192.168.1.100/onvif/media"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogSOAPCall(endpoint, action, statusCode)
//	logging.LogSOAPPayload(endpoint, "sent", payload)
//	logging.LogDatagram(localAddr, remoteAddr, payload)
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging

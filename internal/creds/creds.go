// Package creds loads device credentials from a JSON credential file.
//
// A credential file is a JSON array of records:
//
//	[
//	  {"user": "admin", "pass": "secret", "serial": ["A123", "A124"]},
//	  {"user": "service", "pass": "fallback"}
//	]
//
// Records with a serial list only apply to devices with a matching serial
// number; records without one apply to any device.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Credentials is one credential file record
type Credentials struct {
	User   string   `json:"user"`
	Pass   string   `json:"pass"`
	Serial []string `json:"serial,omitempty"`
}

// Load reads a credential file and returns the first matching record.
//
// A record with a non-empty serial list matches only when the requested
// serial is in the list; any other record matches unconditionally. Returns
// nil without error when no record matches.
func Load(path string, serial string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read credential file: %w", err)
	}

	var records []Credentials
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not parse credential file: %w", err)
	}

	for i := range records {
		if serial != "" && len(records[i].Serial) > 0 {
			if slices.Contains(records[i].Serial, serial) {
				return &records[i], nil
			}
			continue
		}
		return &records[i], nil
	}

	return nil, nil
}

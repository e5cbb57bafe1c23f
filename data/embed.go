// Package data holds the facility seed compiled into the binary.
package data

import _ "embed"

// Facilities is the YAML seed document for the facility store.
//
//go:embed facilities.yaml
var Facilities []byte

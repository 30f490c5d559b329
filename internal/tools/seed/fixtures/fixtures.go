// Package fixtures embeds the bundled seed fixtures.
package fixtures

import "embed"

// FS holds the bundled TOML fixtures.
//
//go:embed *.toml
var FS embed.FS

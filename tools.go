//go:build tools
// +build tools

package tools

// Tracks the goose CLI in go.mod so migrations under
// internal/database/migrations can be managed by hand with the same version
// the server embeds.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)

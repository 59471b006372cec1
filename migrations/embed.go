// Package migrations carries the interaction log schema as numbered
// golang-migrate files.
package migrations

import "embed"

// FS exposes the up and down scripts to the iofs migration source.
//
//go:embed *.sql
var FS embed.FS

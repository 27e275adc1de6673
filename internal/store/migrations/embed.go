// Package migrations embeds the message store schema.
package migrations

import "embed"

// FS holds the golang-migrate up/down files.
//
//go:embed *.sql
var FS embed.FS

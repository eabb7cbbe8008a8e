// Package migrations embeds the goose SQL migrations so the schema can
// be created lazily at startup without shipping files beside the binary.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS

// Package migrations embeds the schema migration files applied on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Package migrations embeds the schema for the local session store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

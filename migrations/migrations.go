// Package migrations embeds the SQL schema migrations for the accounts
// store. Apply them with goose against the service database before
// serving traffic.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

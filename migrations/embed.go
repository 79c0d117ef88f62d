// Package migrations embeds the SQL schema migrations, one directory per driver.
package migrations

import "embed"

//go:embed sqlite3/*.sql mysql/*.sql
var FS embed.FS

// Package appfs embeds the files shipped inside the binaries.
package appfs

import "embed"

// FS holds the goose SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var FS embed.FS

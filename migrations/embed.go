// Package migrations содержит SQL-схему хранилища.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

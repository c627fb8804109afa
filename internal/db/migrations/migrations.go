package migrations

import "embed"

// Migrations expone los archivos SQL embebidos para goose.
//
//go:embed *.sql
var Migrations embed.FS

package migrations

import "embed"

// FS содержит SQL миграции для golang-migrate (source iofs)
//
//go:embed *.sql
var FS embed.FS

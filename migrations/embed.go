package migrations

import "embed"

// Files carries the forward-only SQL migrations compiled into the binary,
// so a deployment is a single file plus its database.
//
//go:embed *.sql
var Files embed.FS

// Package schema holds the postgres DDL. Every statement is idempotent so it can be
// applied to an existing database.
package schema

import _ "embed"

//go:embed schema.sql
var SQL string

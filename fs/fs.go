// Package appfs exposes embedded application assets such as database migrations.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS

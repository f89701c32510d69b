// Package locales provides the embedded message catalog used for user-facing
// results and diagnostics.
package locales

import "embed"

//go:embed en.yaml

// Content is an embedded file system containing the locale files.
var Content embed.FS

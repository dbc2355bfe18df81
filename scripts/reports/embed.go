// Package reports holds the built-in Risor report scripts.
package reports

import "embed"

// FS holds every built-in report, keyed by file name ("summary.risor").
//
//go:embed *.risor
var FS embed.FS

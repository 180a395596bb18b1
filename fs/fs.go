// Package appfs embeds static assets shipped with the binaries:
// SQL migrations and email templates.
package appfs

import "embed"

// the "all:" prefix pulls in the underscore-prefixed base templates,
// which plain patterns skip
//go:embed migrations all:templates
var FS embed.FS

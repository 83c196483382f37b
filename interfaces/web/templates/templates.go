// Package templates embeds the static assets served under /assets/.
package templates

import "embed"

// Assets holds the shell script and stylesheet.
//
//go:embed assets
var Assets embed.FS

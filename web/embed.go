// Package web embeds the static landing page assets.
package web

import "embed"

//go:embed static
var Static embed.FS

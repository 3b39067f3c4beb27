// Package web embeds the single-page wallet client served by the API.
package web

import "embed"

// StaticFS embeds the client shell and its assets.
//
//go:embed static
var StaticFS embed.FS

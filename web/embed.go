// Package web carries the embedded presentation assets: the HTML
// templates rendered by the server and the static files served under
// /static/.
package web

import "embed"

// TemplatesFS holds the page templates plus the shared layout partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet; the embedded paths keep the static/
// prefix so they map 1:1 to URLs.
//
//go:embed static/*
var StaticFS embed.FS

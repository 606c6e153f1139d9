// Package web carries the embedded single-page frontend. The binary serves
// it from memory; there is no separate static file deployment.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static returns the frontend asset tree rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(static, "static")
}

// Index returns the raw index page bytes.
func Index() ([]byte, error) {
	return static.ReadFile("static/index.html")
}

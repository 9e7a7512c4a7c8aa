// Package web provides embedded static assets (CSS, JS) for the dashboard.
// In development, templates load assets from CDN; in production, the compiled
// and vendored files are embedded here and served at /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:static
var staticFS embed.FS

// Static is the static asset tree rooted at the asset names themselves,
// ready to serve at /static/.
var Static fs.FS

func init() {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	Static = sub
}

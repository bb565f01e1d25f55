// Package aircraftcatalog embeds the static front-end served at /.
package aircraftcatalog

import (
	"embed"
	"io/fs"
)

//go:embed all:web
var webFS embed.FS

// WebFS returns the front-end rooted at web/, so index.html sits at the top.
func WebFS() fs.FS {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return sub
}

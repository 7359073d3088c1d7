// Package web holds the HTML templates compiled into the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views
var views embed.FS

// Views returns the template tree rooted at views/.
func Views() http.FileSystem {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Package web embeds the single-page frontend served alongside the API.
package web

import "embed"

//go:embed dist
var DistFS embed.FS

// Index returns the SPA entry page, used as the NoRoute fallback.
func Index() []byte {
	data, err := DistFS.ReadFile("dist/index.html")
	if err != nil {
		panic(err)
	}
	return data
}

package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/static"
)

type embedFileSystem struct {
	http.FileSystem
}

func (e embedFileSystem) Exists(prefix string, path string) bool {
	_, err := e.Open(path)
	return err == nil
}

// embedFolder exposes a subdirectory of an embed.FS to gin-contrib/static.
func embedFolder(fsEmbed embed.FS, targetPath string) static.ServeFileSystem {
	fsys, err := fs.Sub(fsEmbed, targetPath)
	if err != nil {
		panic(err)
	}
	return embedFileSystem{FileSystem: http.FS(fsys)}
}

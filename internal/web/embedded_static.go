package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var EmbeddedTemplatesFS embed.FS

//go:embed static
var EmbeddedStaticFS embed.FS

// TemplatesFS returns the on-disk template directory if dir is set,
// otherwise the embedded templates
func TemplatesFS(dir string) (fs.FS, error) {
	if dir != "" {
		log.Printf("[WEB]: Using templates from disk: %s", dir)
		return os.DirFS(dir), nil
	}
	return fs.Sub(EmbeddedTemplatesFS, "templates")
}

// StaticFS returns the on-disk static directory if dir is set,
// otherwise the embedded static files
func StaticFS(dir string) (fs.FS, error) {
	if dir != "" {
		log.Printf("[WEB]: Using static files from disk: %s", dir)
		return os.DirFS(dir), nil
	}
	return fs.Sub(EmbeddedStaticFS, "static")
}

// ListEmbeddedFiles returns a list of all embedded files for debugging
func ListEmbeddedFiles() ([]string, error) {
	var files []string
	for _, fsys := range []embed.FS{EmbeddedTemplatesFS, EmbeddedStaticFS} {
		err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// staticHandler serves files below the static prefix from s.static.
// Directories are never listed.
func (s *WebServer) staticHandler() gin.HandlerFunc {
	fileSystem := http.FS(s.static)
	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if name == "" || !fs.ValidPath(name) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		info, err := fs.Stat(s.static, name)
		if err != nil || info.IsDir() {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour
		c.FileFromFS(name, fileSystem)
	}
}

package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/legal-case-api/internal/errors"
)

// SPA serves the prebuilt frontend. Existing files are served as is, every
// other path gets index.html so client-side routing works. Unknown /api
// paths get a JSON 404 instead.
func SPA(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := path.Clean("/" + c.Request.URL.Path)
		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			apierrors.NotFound(c, "API route not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			apierrors.NotFound(c, "")
			return
		}

		if reqPath != "/" && serveFile(c, filepath.Join(staticDir, filepath.FromSlash(reqPath))) {
			return
		}
		if !serveFile(c, filepath.Join(staticDir, "index.html")) {
			apierrors.InternalError(c, "Frontend build not found")
		}
	}
}

// serveFile writes name if it is a regular file. The path is already
// cleaned, so http.ServeFile's rejection of ".." segments in the raw URL
// must not apply.
func serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}

// Health reports that the process is serving requests.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Legal Case API is running",
	})
}

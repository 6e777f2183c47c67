// Package static serves the scanner single page UI.
package static

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	logger "github.com/sirupsen/logrus"
)

//go:embed ui/*
var uiFS embed.FS

var allowedExtensions = map[string]bool{
	".html": true,
	".js":   true,
	".css":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// UIFS returns the embedded UI files.
func UIFS() fs.FS {
	sub, _ := fs.Sub(uiFS, "ui")
	return sub
}

type Handler struct {
	files fs.FS
}

// NewHandler serves files from dir, or the embedded UI when dir is empty.
func NewHandler(dir string) *Handler {
	if dir == "" {
		return &Handler{files: UIFS()}
	}
	return &Handler{files: os.DirFS(dir)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	for _, segment := range strings.Split(r.URL.Path, "/") {
		if segment == ".." || strings.Contains(segment, `\`) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}
	if !fs.ValidPath(name) || !allowedExtensions[strings.ToLower(path.Ext(name))] {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	f, err := h.files.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Errorf("Could not open %s: %s", name, err)
		}
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}
		content = bytes.NewReader(data)
	}
	http.ServeContent(w, r, name, stat.ModTime(), content)
}

package server

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	_ "embed"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/ozenlabs/ozenembed/internal/server/api"
	"github.com/ozenlabs/ozenembed/internal/utils"
)

//go:embed index.html.tpl
var indexOfTmpl string

//go:embed notfound.html.tpl
var notFoundOfTmpl string

// fileInfo is one row in a directory listing.
type fileInfo struct {
	Name string
	Size int64
}

// indexData contains data for the index template
type indexData struct {
	Path    string
	Folders []string
	Files   []fileInfo
}

// StaticHandler serves files and "Index Of" pages from the doc root.
type StaticHandler struct {
	root     string
	inject   bool
	tplIndex *template.Template
	tpl404   *template.Template
}

// NewStaticHandler creates a handler rooted at root. With inject set, served
// HTML pages get the live reload script added.
func NewStaticHandler(root string, inject bool) *StaticHandler {
	funcMap := template.FuncMap{
		"basename": filepath.Base,
		"humanizeSize": func(size int64) string {
			return humanize.Bytes(uint64(size))
		},
	}

	tplIndex := template.Must(template.New("index").Funcs(funcMap).Parse(indexOfTmpl))
	tpl404 := template.Must(template.New("notfound").Funcs(funcMap).Parse(notFoundOfTmpl))

	return &StaticHandler{
		root:     root,
		inject:   inject,
		tplIndex: tplIndex,
		tpl404:   tpl404,
	}
}

func (h *StaticHandler) Handler(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		api.AbortWithError(c, http.StatusMethodNotAllowed, api.CodeMethodNotAllowed, fmt.Errorf("method %s not allowed", c.Request.Method))
		return
	}

	if hasDotDot(c.Request.URL.Path) {
		h.serve404(c, c.Request.URL.Path)
		return
	}

	urlPath := path.Clean("/" + c.Request.URL.Path)
	rel := strings.TrimPrefix(urlPath, "/")
	full := filepath.Join(h.root, filepath.FromSlash(rel))

	// Second guard: nothing above the root is ever served.
	if full != h.root && !strings.HasPrefix(full, h.root+string(filepath.Separator)) {
		h.serve404(c, urlPath)
		return
	}

	info, err := os.Stat(full)
	if err != nil {
		h.serve404(c, urlPath)
		return
	}

	if info.IsDir() {
		if indexPage := filepath.Join(full, "index.html"); utils.FileExists(indexPage) {
			h.serveFile(c, indexPage)
			return
		}
		h.serveDir(c, urlPath, full)
		return
	}

	h.serveFile(c, full)
}

// Serve the "Index Of" page
func (h *StaticHandler) serveDir(c *gin.Context, urlPath, dir string) {
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		api.AbortWithError(c, http.StatusInternalServerError, api.CodeInternalError, fmt.Errorf("read dir: %w", err))
		return
	}

	folders := make([]string, 0, len(entries))
	files := make([]fileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{Name: entry.Name(), Size: info.Size()})
	}

	data := indexData{
		Path:    urlPath,
		Folders: folders,
		Files:   files,
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.tplIndex.Execute(c.Writer, data); err != nil {
		api.AbortWithError(c, http.StatusInternalServerError, api.CodeInternalError, fmt.Errorf("execute template: %w", err))
	}
}

func (h *StaticHandler) serveFile(c *gin.Context, full string) {
	if h.inject && isHTMLPath(full) {
		page, err := os.ReadFile(full)
		if err != nil {
			h.serve404(c, c.Request.URL.Path)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", InjectReloadScript(page))
		return
	}

	// http.ServeFile via gin handles content type, ranges and modtime.
	c.File(full)
}

func (h *StaticHandler) serve404(c *gin.Context, urlPath string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusNotFound)
	if err := h.tpl404.Execute(c.Writer, map[string]any{"Path": urlPath}); err != nil {
		// status is already written, just record it
		_ = c.Error(err)
	}
}

// Raw request paths carrying a ".." segment never resolve.
func hasDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func isHTMLPath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

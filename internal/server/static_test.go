package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	write("hello.txt", "hello world")
	write("page.html", "<html><body><h1>hi</h1></body></html>")
	write("audio/test.wav", "RIFFxxxx")
	write("site/index.html", "<html><body>site index</body></html>")
	return root
}

func serveRequest(t *testing.T, root string, inject bool, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := SetupRoutes(NewStaticHandler(root, inject), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	handler.ServeHTTP(w, req)
	return w
}

func TestServeFile(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/hello.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
}

func TestServeNestedFile(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/audio/test.wav")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RIFFxxxx", w.Body.String())
}

func TestDirectoryListing(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "Index of /")
	assert.Contains(t, body, `href="/hello.txt"`)
	assert.Contains(t, body, `href="/audio/"`)
	// sizes are humanized
	assert.Contains(t, body, "11 B")
}

func TestSubdirectoryListingHasParentLink(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/audio")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Index of /audio/")
	assert.Contains(t, body, `href="/audio/.."`)
	assert.Contains(t, body, `href="/audio/test.wav"`)
}

func TestDirectoryWithIndexServesIt(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/site")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site index")
	assert.NotContains(t, w.Body.String(), "Index of")
}

func TestNotFoundPage(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/missing.wav")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "404 Not Found")
	assert.Contains(t, w.Body.String(), "/missing.wav")
}

func TestTraversalStaysInsideRoot(t *testing.T) {
	root := newTestRoot(t)

	for _, target := range []string{
		"/../hello.txt",
		"/../../../../etc/passwd",
		"/audio/../../escape",
	} {
		w := serveRequest(t, root, false, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, w.Code, "target %q must not resolve", target)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodPost, "/hello.txt")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "E_METHOD_NOT_ALLOWED")
}

func TestLiveReloadInjection(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, true, http.MethodGet, "/page.html")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, ReloadEndpoint)
	assert.Contains(t, body, "<script>")
	// script lands before the closing body tag
	assert.Less(t, strings.Index(body, "<script>"), strings.Index(body, "</body>"))
}

func TestNoInjectionWhenDisabled(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/page.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), ReloadEndpoint)
}

func TestNoInjectionForNonHTML(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, true, http.MethodGet, "/hello.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
}

func TestHealthz(t *testing.T) {
	root := newTestRoot(t)

	w := serveRequest(t, root, false, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

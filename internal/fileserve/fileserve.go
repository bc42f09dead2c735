// Package fileserve implements the /files/ route handlers: serving a file
// from the configured base directory and saving an uploaded body into it.
package fileserve

import (
	"fmt"
	"os"
	"strings"

	"minihttp/internal/headers"
	"minihttp/internal/request"
	"minihttp/internal/response"
)

const routePrefix = "/files/"

// Handlers serves and saves files under one base directory. With no
// directory configured, every request answers 404 without touching the
// filesystem.
type Handlers struct {
	dir string
}

// New creates file handlers rooted at dir. A non-empty dir is normalized
// to end with the path separator. Empty dir disables both handlers.
func New(dir string) *Handlers {
	if dir != "" && !strings.HasSuffix(dir, string(os.PathSeparator)) {
		dir += string(os.PathSeparator)
	}
	return &Handlers{dir: dir}
}

// resolve maps the request path to a filesystem path. The name after the
// route prefix is joined verbatim, so parent-directory segments escape the
// base directory; traversal is a known, documented gap.
func (h *Handlers) resolve(path string) string {
	return h.dir + strings.TrimPrefix(path, routePrefix)
}

// Serve streams the requested file back as application/octet-stream, or
// 404 if it is missing or not a regular file.
func (h *Handlers) Serve(w *response.Writer, r *request.Request) {
	if h.dir == "" {
		w.EmptyResponse(response.StatusNotFound)
		return
	}

	name := h.resolve(r.Path)

	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		w.EmptyResponse(response.StatusNotFound)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		// Existence was already confirmed; no retry
		w.EmptyResponse(response.StatusInternalServerError)
		return
	}
	defer f.Close()

	if err := w.WriteStatusLine(response.StatusOK); err != nil {
		return
	}

	hs := headers.NewHeaders()
	hs.Set("Content-Type", "application/octet-stream")
	hs.Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	hs.Set("Connection", "close")

	if err := w.WriteHeaders(hs); err != nil {
		return
	}

	// A copy failure mid-stream is terminal for the connection; the head
	// is already on the wire.
	w.WriteBodyFrom(f)
}

// Save writes the request body as the file's entire content, truncating
// any prior content. Not atomic: a failed write can leave a truncated
// file behind.
func (h *Handlers) Save(w *response.Writer, r *request.Request) {
	if h.dir == "" {
		w.EmptyResponse(response.StatusNotFound)
		return
	}

	name := h.resolve(r.Path)

	if err := os.WriteFile(name, r.Body, 0o644); err != nil {
		w.EmptyResponse(response.StatusInternalServerError)
		return
	}

	w.EmptyResponse(response.StatusCreated)
}

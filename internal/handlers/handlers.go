// Package handlers wires the server's fixed route table: the root,
// user-agent echo, path echo, and file transfer routes.
package handlers

import (
	"strings"

	"minihttp/internal/fileserve"
	"minihttp/internal/request"
	"minihttp/internal/response"
	"minihttp/internal/router"
)

// Routes builds the complete route table. Registration order is match
// priority. dir is the optional base directory for the /files/ routes;
// empty disables them (they answer 404).
func Routes(dir string) *router.Router {
	r := router.New()

	r.Exact(router.MethodAny, "/", Root)
	r.Exact(router.MethodAny, "/user-agent", UserAgent)
	r.Prefix(router.MethodAny, "/echo/", Echo)

	files := fileserve.New(dir)
	r.Prefix("GET", "/files/", files.Serve)
	r.Prefix("POST", "/files/", files.Save)
	r.Prefix("PUT", "/files/", files.Save)

	return r
}

// Root answers 200 with an empty body for any method.
func Root(w *response.Writer, _ *request.Request) {
	w.EmptyResponse(response.StatusOK)
}

// UserAgent echoes the User-Agent header value back, or 404 when the
// header is absent.
func UserAgent(w *response.Writer, r *request.Request) {
	ua, ok := r.Headers.Get("User-Agent")
	if !ok {
		w.EmptyResponse(response.StatusNotFound)
		return
	}
	w.TextResponse(response.StatusOK, ua)
}

// Echo answers with the remainder of the path after /echo/, verbatim —
// no percent-decoding.
func Echo(w *response.Writer, r *request.Request) {
	msg := strings.TrimPrefix(r.Path, "/echo/")
	w.TextResponse(response.StatusOK, msg)
}

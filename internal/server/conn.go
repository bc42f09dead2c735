package server

import (
	"errors"
	"net"
	"time"

	"minihttp/internal/request"
	"minihttp/internal/response"
)

// serveConn runs one connection through its full lifetime: read the
// request, parse, route, respond, close. Errors are confined to this
// connection; nothing here can take down the accept loop or a sibling
// connection.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	s.cfg.Metrics.ActiveConnections.Add(1)
	defer s.cfg.Metrics.ActiveConnections.Add(-1)

	start := time.Now()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := request.FromReader(conn)
	if err != nil {
		s.handleReadFailure(conn, err)
		return
	}

	w := response.NewWriter(conn)
	s.handleRequest(w, req)

	s.cfg.Metrics.RecordRequest(int(w.StatusCode()), time.Since(start))
}

// handleRequest runs the handler with panic recovery so a broken handler
// degrades to a closed connection instead of a dead process.
func (s *Server) handleRequest(w *response.Writer, req *request.Request) {
	defer func() {
		if r := recover(); r != nil {
			s.cfg.Logger.Error("handler panic", Field{Key: "panic", Value: r})
			s.cfg.Metrics.ErrorsTotal.Add(1)
			if !w.Started() {
				w.EmptyResponse(response.StatusInternalServerError)
			}
		}
	}()

	s.handler(w, req)
}

// handleReadFailure answers a malformed request with a best-effort 400 and
// a clean close. Transport failures get no response; the connection is
// simply abandoned.
func (s *Server) handleReadFailure(conn net.Conn, err error) {
	if errors.Is(err, request.ErrMalformedRequestLine) || errors.Is(err, request.ErrUnknownMethod) {
		s.cfg.Logger.Warn("bad request", Field{Key: "error", Value: err})
		w := response.NewWriter(conn)
		w.TextResponse(response.StatusBadRequest, err.Error())
		s.cfg.Metrics.RecordRequest(int(response.StatusBadRequest), 0)
		return
	}

	s.cfg.Logger.Warn("read failed", Field{Key: "error", Value: err})
	s.cfg.Metrics.ErrorsTotal.Add(1)
}

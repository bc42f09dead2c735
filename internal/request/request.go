package request

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"minihttp/internal/headers"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrUnknownMethod        = errors.New("unknown HTTP method")
)

// Request is a fully parsed HTTP request. It is owned by the goroutine
// handling its connection and is never shared or mutated after parsing.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers *headers.Headers
	Body    []byte
}

// methods is the closed set of accepted request methods.
var methods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
	"TRACE":   true,
	"CONNECT": true,
}

// normalizeMethod matches a method token case-insensitively against the
// accepted set and returns its canonical upper-case form.
func normalizeMethod(token string) (string, bool) {
	m := strings.ToUpper(token)
	if !methods[m] {
		return "", false
	}
	return m, true
}

// ContentLength returns the declared body length, or -1 if the header is
// absent or not a valid integer.
func (r *Request) ContentLength() int64 {
	cl, ok := r.Headers.Get("Content-Length")
	if !ok {
		return -1
	}
	n, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

const readBufSize = 1024

// FromReader reads one complete request off r. The head is framed on the
// blank line terminating the header section; the body is exactly
// Content-Length bytes (absent or zero means no body). A stream that
// closes mid-message yields io.ErrUnexpectedEOF.
func FromReader(r io.Reader) (*Request, error) {
	req := &Request{Headers: headers.NewHeaders()}
	p := newParser()

	readBuf := make([]byte, readBufSize)
	var buf []byte
	eof := false

	for p.state != stateDone {
		if len(buf) > 0 {
			consumed, err := p.parse(buf, req)
			if err != nil {
				return nil, err
			}
			if consumed > 0 {
				buf = buf[consumed:]
				continue
			}
		}

		if p.state == stateDone {
			break
		}

		// The parser wants more data than the stream will ever deliver
		if eof {
			return nil, io.ErrUnexpectedEOF
		}

		n, err := r.Read(readBuf)
		if n > 0 {
			buf = append(buf, readBuf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				eof = true
				continue
			}
			return nil, err
		}
	}

	return req, nil
}

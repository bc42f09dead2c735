package response

import (
	"bytes"
	"fmt"
	"io"

	"minihttp/internal/headers"
)

// writerState tracks what has been written so far.
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer serializes one HTTP response to an io.Writer. The status line,
// headers, and body must be written in that order; calls out of order are
// programming errors. Write failures are not retried and the first one is
// sticky.
type Writer struct {
	w          io.Writer
	state      writerState
	statusCode StatusCode
	hadError   bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	statusLine := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, StatusText(code))
	if _, err := w.w.Write([]byte(statusLine)); err != nil {
		w.hadError = true
		return err
	}

	w.statusCode = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes all headers in insertion order, then the blank line
// that ends the header section.
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	buf := &bytes.Buffer{}
	h.WriteWire(buf)
	buf.WriteString("\r\n")

	if _, err := w.w.Write(buf.Bytes()); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body.
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}

	if len(data) > 0 {
		if _, err := w.w.Write(data); err != nil {
			w.hadError = true
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

// WriteBodyFrom streams the body from r, for large payloads that should
// not be buffered in memory.
func (w *Writer) WriteBodyFrom(r io.Reader) (int64, error) {
	if w.state != stateHeadersWritten {
		return 0, fmt.Errorf("must write headers before body")
	}

	n, err := io.Copy(w.w, r)
	if err != nil {
		w.hadError = true
		return n, err
	}

	w.state = stateBodyWritten
	return n, nil
}

// HadError reports whether any write on this response failed.
func (w *Writer) HadError() bool {
	return w.hadError
}

// StatusCode returns the status code written, or 0 if none yet.
func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}

// Started reports whether any bytes of the response have been written.
func (w *Writer) Started() bool {
	return w.state != stateStart
}

// TextResponse writes a complete text/plain response with an exact
// Content-Length.
func (w *Writer) TextResponse(code StatusCode, body string) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}

	h := headers.NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Set("Content-Length", fmt.Sprintf("%d", len(body)))
	h.Set("Connection", "close")

	if err := w.WriteHeaders(h); err != nil {
		return err
	}
	return w.WriteBody([]byte(body))
}

// EmptyResponse writes a complete response with no body.
func (w *Writer) EmptyResponse(code StatusCode) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}

	h := headers.NewHeaders()
	h.Set("Content-Length", "0")
	h.Set("Connection", "close")

	if err := w.WriteHeaders(h); err != nil {
		return err
	}
	return w.WriteBody(nil)
}

package response

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minihttp/internal/headers"
)

func TestWriterStatusLine(t *testing.T) {
	// Test: 200 OK
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	err := w.WriteStatusLine(StatusOK)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", buf.String())

	// Test: 201 Created
	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	err = w.WriteStatusLine(StatusCreated)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 201 Created\r\n", buf.String())

	// Test: 400 Bad Request
	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	err = w.WriteStatusLine(StatusBadRequest)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n", buf.String())

	// Test: 404 Not Found
	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	err = w.WriteStatusLine(StatusNotFound)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n", buf.String())

	// Test: 500 Internal Server Error
	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	err = w.WriteStatusLine(StatusInternalServerError)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 500 Internal Server Error\r\n", buf.String())
}

func TestWriterHeadersInInsertionOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.WriteStatusLine(StatusOK))

	h := headers.NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Set("Content-Length", "5")
	h.Set("Connection", "close")
	require.NoError(t, w.WriteHeaders(h))

	assert.Equal(t,
		"HTTP/1.1 200 OK\r\n"+
			"Content-Type: text/plain\r\n"+
			"Content-Length: 5\r\n"+
			"Connection: close\r\n"+
			"\r\n",
		buf.String())
}

func TestWriterBody(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.WriteStatusLine(StatusOK))
	h := headers.NewHeaders()
	h.Set("Content-Length", "5")
	require.NoError(t, w.WriteHeaders(h))
	require.NoError(t, w.WriteBody([]byte("hello")))

	assert.True(t, strings.HasSuffix(buf.String(), "\r\n\r\nhello"))
	assert.False(t, w.HadError())
}

func TestWriterBodyFromStreams(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.WriteStatusLine(StatusOK))
	h := headers.NewHeaders()
	h.Set("Content-Length", "11")
	require.NoError(t, w.WriteHeaders(h))

	n, err := w.WriteBodyFrom(strings.NewReader("file buffer"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.True(t, strings.HasSuffix(buf.String(), "file buffer"))
}

func TestWriterEnforcesOrder(t *testing.T) {
	// Test: body before status line
	w := NewWriter(&bytes.Buffer{})
	err := w.WriteBody([]byte("x"))
	assert.Error(t, err)

	// Test: headers before status line
	w = NewWriter(&bytes.Buffer{})
	err = w.WriteHeaders(headers.NewHeaders())
	assert.Error(t, err)

	// Test: double status line
	w = NewWriter(&bytes.Buffer{})
	require.NoError(t, w.WriteStatusLine(StatusOK))
	err = w.WriteStatusLine(StatusOK)
	assert.Error(t, err)
}

func TestTextResponse(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.TextResponse(StatusOK, "abc"))

	assert.Equal(t,
		"HTTP/1.1 200 OK\r\n"+
			"Content-Type: text/plain\r\n"+
			"Content-Length: 3\r\n"+
			"Connection: close\r\n"+
			"\r\n"+
			"abc",
		buf.String())
	assert.Equal(t, StatusOK, w.StatusCode())
}

func TestEmptyResponse(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	require.NoError(t, w.EmptyResponse(StatusNotFound))

	assert.Equal(t,
		"HTTP/1.1 404 Not Found\r\n"+
			"Content-Length: 0\r\n"+
			"Connection: close\r\n"+
			"\r\n",
		buf.String())
}

// failWriter fails every write.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestWriterErrorIsSticky(t *testing.T) {
	w := NewWriter(failWriter{})
	err := w.WriteStatusLine(StatusOK)
	assert.Error(t, err)
	assert.True(t, w.HadError())
}

package headers

import (
	"bytes"
	"fmt"
	"strings"
)

// Headers is a collection of HTTP headers. Names are case-insensitive and
// may repeat; duplicate names accumulate as multiple values. The order in
// which names first appear is preserved and is the order they serialize in.
type Headers struct {
	values map[string][]string
	order  []string
}

func NewHeaders() *Headers {
	return &Headers{
		values: make(map[string][]string),
	}
}

// Get returns the first value for a header.
func (h *Headers) Get(key string) (string, bool) {
	vals := h.values[strings.ToLower(key)]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Values returns all values for a header.
func (h *Headers) Values(key string) []string {
	return h.values[strings.ToLower(key)]
}

// Set replaces all values for a header.
func (h *Headers) Set(key, value string) {
	k := strings.ToLower(key)
	if _, exists := h.values[k]; !exists {
		h.order = append(h.order, k)
	}
	h.values[k] = []string{value}
}

// Add appends a value to a header.
func (h *Headers) Add(key, value string) {
	k := strings.ToLower(key)
	if _, exists := h.values[k]; !exists {
		h.order = append(h.order, k)
	}
	h.values[k] = append(h.values[k], value)
}

// Del removes a header.
func (h *Headers) Del(key string) {
	k := strings.ToLower(key)
	if _, exists := h.values[k]; !exists {
		return
	}
	delete(h.values, k)
	for i, name := range h.order {
		if name == k {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.order)
}

// Each calls fn for every (name, value) pair, names in insertion order.
func (h *Headers) Each(fn func(name, value string) error) error {
	for _, name := range h.order {
		for _, value := range h.values[name] {
			if err := fn(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parse consumes complete header lines from data, up to and including the
// empty line that ends the header section. It returns the number of bytes
// consumed and whether the end of headers was reached; a partial trailing
// line is left unconsumed for the next call.
func (h *Headers) Parse(data []byte) (int, bool, error) {
	read := 0
	done := false

	for {
		idx := bytes.Index(data[read:], []byte("\r\n"))
		if idx == -1 {
			// Need more data
			break
		}

		if idx == 0 {
			// Empty line = end of headers
			done = true
			read += 2
			break
		}

		line := data[read : read+idx]
		read += idx + 2

		name, value, ok := splitHeaderLine(line)
		if !ok {
			// Lines without a colon are skipped, not rejected
			continue
		}

		h.Add(name, value)
	}

	return read, done, nil
}

func splitHeaderLine(line []byte) (string, string, bool) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return "", "", false
	}

	name := bytes.TrimSpace(line[:colonIdx])
	value := bytes.TrimSpace(line[colonIdx+1:])

	if len(name) == 0 {
		return "", "", false
	}

	return string(name), string(value), true
}

// WriteWire serializes all headers in insertion order, one "name: value"
// line per value, without the terminating blank line.
func (h *Headers) WriteWire(buf *bytes.Buffer) {
	h.Each(func(name, value string) error {
		fmt.Fprintf(buf, "%s: %s\r\n", canonical(name), value)
		return nil
	})
}

// canonical restores conventional wire capitalization from a lowercase
// name (content-type -> Content-Type).
func canonical(name string) string {
	b := []byte(name)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
		upper = c == '-'
	}
	return string(b)
}

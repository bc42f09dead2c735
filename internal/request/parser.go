package request

import (
	"bytes"
	"fmt"
)

var crlf = []byte("\r\n")

// parserState tracks how far into the message the parser has advanced.
type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateBody
	stateDone
)

// parser advances one request through requestLine -> headers -> body.
// Each step consumes complete units from the front of the buffer and
// reports 0 consumed when it needs more data.
type parser struct {
	state parserState
}

func newParser() *parser {
	return &parser{state: stateRequestLine}
}

func (p *parser) parse(data []byte, req *Request) (int, error) {
	switch p.state {
	case stateRequestLine:
		return p.parseRequestLine(data, req)
	case stateHeaders:
		return p.parseHeaders(data, req)
	case stateBody:
		return p.parseBody(data, req)
	case stateDone:
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid parser state: %d", p.state)
	}
}

// parseRequestLine parses: METHOD PATH VERSION\r\n
//
// The target is everything between the first and last space, so a target
// containing spaces still parses; fewer than two distinct space positions
// is malformed.
func (p *parser) parseRequestLine(data []byte, req *Request) (int, error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		// Need more data
		return 0, nil
	}

	line := data[:idx]
	consumed := idx + 2

	first := bytes.IndexByte(line, ' ')
	last := bytes.LastIndexByte(line, ' ')
	if first == -1 || first == last {
		return 0, ErrMalformedRequestLine
	}

	method, ok := normalizeMethod(string(line[:first]))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, line[:first])
	}

	req.Method = method
	req.Path = string(line[first+1 : last])
	req.Version = string(line[last+1:])

	p.state = stateHeaders
	return consumed, nil
}

func (p *parser) parseHeaders(data []byte, req *Request) (int, error) {
	consumed, done, err := req.Headers.Parse(data)
	if err != nil {
		return 0, err
	}
	if !done {
		return consumed, nil
	}

	if req.ContentLength() > 0 {
		p.state = stateBody
	} else {
		// No body to read
		p.state = stateDone
	}
	return consumed, nil
}

func (p *parser) parseBody(data []byte, req *Request) (int, error) {
	remaining := int(req.ContentLength()) - len(req.Body)
	if remaining <= 0 {
		p.state = stateDone
		return 0, nil
	}

	toRead := min(remaining, len(data))
	req.Body = append(req.Body, data[:toRead]...)

	if len(req.Body) == int(req.ContentLength()) {
		p.state = stateDone
	}
	return toRead, nil
}

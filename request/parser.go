// Package request implements a zero-allocation HTTP/1.1 request-line and
// header parser.
//
// The parser never owns the bytes it reads: it borrows a window of its
// internal buffer to the caller via NextChunk, the caller fills that window
// with data read from wherever it likes (a socket, a test fixture, a replay
// log), and Ingest is told how many bytes actually landed in it. Everything
// the parser exposes afterwards - Method, URI, Header, Headers - is a view
// into that same buffer. Those views are valid only until the next call to
// Reset; the parser performs no copying and no allocation past construction.
package request

import (
	"iter"

	"github.com/indigo-web/httpcodec/http/method"
	"github.com/indigo-web/httpcodec/internal/charclass"
	"github.com/indigo-web/httpcodec/internal/fixedbuf"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// MaxHeaders is the number of header slots a Parser keeps. The 33rd header
// of a request turns it invalid rather than growing any storage.
const MaxHeaders = 32

// State identifies where in a request a Parser currently is. States below
// InvalidRequest are live: the parser is still reading and wants more bytes.
// InvalidRequest and Done are terminal; neither accepts further bytes.
type State uint8

const (
	Ready State = iota
	ReadingMethod
	ReadingURI
	ReadingProtocol
	ReadingHeaderName
	ReadingHeaderValue
	InvalidRequest
	Done
)

// Active reports whether the parser is still reading, i.e. neither failed
// nor finished.
func (s State) Active() bool {
	return s < InvalidRequest
}

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case ReadingMethod:
		return "ReadingMethod"
	case ReadingURI:
		return "ReadingURI"
	case ReadingProtocol:
		return "ReadingProtocol"
	case ReadingHeaderName:
		return "ReadingHeaderName"
	case ReadingHeaderValue:
		return "ReadingHeaderValue"
	case InvalidRequest:
		return "InvalidRequest"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// view is a half-open [idx, idx+length) range into the parser's buffer.
type view struct {
	idx, length uint16
}

func (v view) get(buf []byte) []byte {
	return buf[v.idx : v.idx+v.length]
}

// HeaderView is a single parsed header, exposed as raw views; use Parser's
// Header or Headers to read them as strings.
type HeaderView struct {
	Name, Value view
}

const protocolLiteral = "HTTP/1.1\r\n"

// Parser parses one HTTP/1.1 request at a time out of a fixed-capacity
// buffer. Call Reset between requests to parse another one; the buffer's
// capacity never changes.
type Parser struct {
	buf   fixedbuf.Buffer
	state State

	pos      uint16
	segStart uint16
	protoPos uint8
	afterCR  bool

	methodView view
	uriView    view

	headers      [MaxHeaders]HeaderView
	headersCount uint8

	headersEndIdx uint16
}

// New constructs a Parser whose internal buffer holds up to capacity bytes
// of a single request (request line plus headers; bodies are out of scope).
func New(capacity int) *Parser {
	return &Parser{buf: fixedbuf.New(capacity)}
}

// Capacity returns the fixed size of the parser's internal buffer.
func (p *Parser) Capacity() int {
	return p.buf.Cap()
}

// State returns the parser's current state.
func (p *Parser) State() State {
	return p.state
}

// Reset discards whatever was parsed and rewinds the parser to read a new
// request. Every view previously returned by Method, URI, Header or Headers
// becomes invalid. When zero is true, every byte of the internal buffer is
// cleared first; pass false to skip that pass when the previous request's
// bytes don't need to be scrubbed before reuse.
func (p *Parser) Reset(zero bool) {
	p.buf.Reset(zero)
	*p = Parser{buf: p.buf}
}

// NextChunk returns a window of up to desired unwritten bytes of the
// parser's buffer. The caller fills it with data from its own I/O source and
// reports how much it used via Ingest. An empty result means the buffer is
// full: the request exceeds the parser's capacity.
func (p *Parser) NextChunk(desired int) []byte {
	return p.buf.Chunk(desired)
}

// Ingest commits n bytes previously written into a window returned by
// NextChunk and runs the state machine over them. It returns the resulting
// state.
//
// Calling Ingest while the parser is already in a terminal state
// (InvalidRequest or Done) is a no-op that returns the current state
// unchanged - the spec leaves over-ingestion undefined, but refusing to read
// past the end of a finished request is cheap enough to guarantee.
//
// Calling Ingest(0) while the parser is still active is how a caller signals
// that no more bytes are coming - the underlying read returned EOF before a
// complete request arrived - and it's treated as a truncated request.
func (p *Parser) Ingest(n int) State {
	if !p.state.Active() {
		return p.state
	}

	if n == 0 {
		p.fail()
		return p.state
	}

	p.buf.Advance(n)
	buf := p.buf.Bytes()

	if p.state == Ready {
		p.state = ReadingMethod
		p.segStart = p.pos
	}

	for p.pos < uint16(len(buf)) && p.state.Active() {
		p.step(buf, buf[p.pos])
	}

	return p.state
}

func (p *Parser) step(buf []byte, c byte) {
	if c == 0 {
		p.fail()
		return
	}

	switch p.state {
	case ReadingMethod:
		if c == ' ' {
			if p.pos == p.segStart {
				p.fail()
				return
			}

			p.methodView = view{idx: p.segStart, length: p.pos - p.segStart}
			p.segStart = p.pos + 1
			p.state = ReadingURI
		}
	case ReadingURI:
		if c == ' ' {
			if p.pos == p.segStart {
				p.fail()
				return
			}

			p.uriView = view{idx: p.segStart, length: p.pos - p.segStart}
			p.segStart = p.pos + 1
			p.protoPos = 0
			p.state = ReadingProtocol
		}
	case ReadingProtocol:
		if c != protocolLiteral[p.protoPos] {
			p.fail()
			return
		}

		p.protoPos++
		if int(p.protoPos) == len(protocolLiteral) {
			p.state = ReadingHeaderName
			p.segStart = p.pos + 1
		}
	case ReadingHeaderName:
		if p.afterCR {
			if c != '\n' {
				p.fail()
				return
			}

			p.afterCR = false
			p.pos++
			p.headersEndIdx = p.pos
			p.state = Done
			return
		}

		switch {
		case c == '\r' && p.pos == p.segStart:
			p.afterCR = true
		case c == ':' && p.pos > p.segStart:
			if p.headersCount == MaxHeaders {
				p.fail()
				return
			}

			if !charclass.ValidHeaderName(buf[p.segStart:p.pos]) {
				p.fail()
				return
			}

			p.headers[p.headersCount].Name = view{idx: p.segStart, length: p.pos - p.segStart}
			p.segStart = p.pos + 1
			p.state = ReadingHeaderValue
		case !charclass.IsHeaderNameByte(c):
			p.fail()
			return
		}
	case ReadingHeaderValue:
		if p.afterCR {
			if c != '\n' {
				p.fail()
				return
			}

			p.afterCR = false
			p.commitHeader()
			return
		}

		switch {
		case c == ' ' && p.pos == p.segStart:
			// skip leading optional whitespace after the colon
			p.segStart = p.pos + 1
		case c == '\r':
			p.afterCR = true
		case !charclass.IsHeaderValueByte(c):
			p.fail()
			return
		}
	}

	p.pos++
}

// commitHeader records the header whose name and trailing CR have already
// been seen, then returns to reading the next header name. It's called with
// p.pos pointing at the LF that terminates the value; the CR immediately
// before it is excluded, but nothing else is trimmed - trailing whitespace
// before the CR is part of the value.
func (p *Parser) commitHeader() {
	valueEnd := p.pos - 1

	p.headers[p.headersCount].Value = view{idx: p.segStart, length: valueEnd - p.segStart}
	p.headersCount++
	p.pos++
	p.segStart = p.pos
	p.state = ReadingHeaderName
}

func (p *Parser) fail() {
	p.state = InvalidRequest
}

// Method returns the request method as read from the request line, verbatim
// and unvalidated; pair it with method.Parse to classify it.
func (p *Parser) Method() string {
	return uf.B2S(p.methodView.get(p.buf.Bytes()))
}

// MethodType classifies Method via method.Parse.
func (p *Parser) MethodType() method.Method {
	return method.Parse(p.Method())
}

// URI returns the request target as read from the request line, verbatim.
func (p *Parser) URI() string {
	return uf.B2S(p.uriView.get(p.buf.Bytes()))
}

// HeadersCount returns the number of headers successfully parsed so far.
func (p *Parser) HeadersCount() int {
	return int(p.headersCount)
}

// Header returns the value of the first header matching name,
// case-insensitively, and whether one was found.
func (p *Parser) Header(name string) (string, bool) {
	buf := p.buf.Bytes()

	for i := range p.headersCount {
		h := p.headers[i]
		if strcomp.EqualFold(uf.B2S(h.Name.get(buf)), name) {
			return uf.B2S(h.Value.get(buf)), true
		}
	}

	return "", false
}

// Headers lazily iterates over every parsed header in request order.
func (p *Parser) Headers() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		buf := p.buf.Bytes()

		for i := range p.headersCount {
			h := p.headers[i]
			if !yield(uf.B2S(h.Name.get(buf)), uf.B2S(h.Value.get(buf))) {
				return
			}
		}
	}
}

// BufferFragment returns the unparsed bytes left over past the end of the
// headers block: the start of the body, or the next pipelined request. It's
// only meaningful once State returns Done; before that it's empty.
func (p *Parser) BufferFragment() []byte {
	buf := p.buf.Bytes()
	if p.state != Done || int(p.headersEndIdx) > len(buf) {
		return nil
	}

	return buf[p.headersEndIdx:]
}

// Package response implements a zero-allocation HTTP/1.1 response composer:
// the mirror image of package request. A Composer builds a status line and a
// bounded set of headers directly into a fixed-capacity buffer, then hands
// the finished bytes back out to the caller through the same chunk-handoff
// protocol the parser uses on its input side, except here it's the
// composer's own output being drained rather than the caller's input being
// fed in.
package response

import (
	"fmt"

	"github.com/indigo-web/httpcodec/http/status"
	"github.com/indigo-web/httpcodec/internal/charclass"
	"github.com/indigo-web/httpcodec/internal/fixedbuf"
)

// MinCapacity is the smallest buffer New will accept. It leaves room for the
// longest standard status line plus the terminating CRLF.
const MinCapacity = 52

// reserved is how many bytes AddHeader must always leave free behind
// whatever it just wrote, so that EndHeaders's own terminating CRLF can
// never be the write that runs out of room.
const reserved = 2

const defaultProtocol = "HTTP/1.1"

// State is where a Composer is in building one response.
type State uint8

const (
	// Ready accepts AddStatus.
	Ready State = iota
	// WritingHeaders accepts AddHeader and EndHeaders.
	WritingHeaders
	// Composed accepts NextChunk/MarkRead; the response is complete and
	// waiting to be drained.
	Composed
	// Done means every composed byte has been read out.
	Done
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case WritingHeaders:
		return "WritingHeaders"
	case Composed:
		return "Composed"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// Result is returned by every operation that mutates a Composer.
type Result uint8

const (
	// Ok means the call succeeded.
	Ok Result = iota
	// BadState means the call isn't valid in the composer's current state.
	BadState
	// InsufficientCapacity means the call would have overrun the buffer
	// (accounting for the reserved terminator room); nothing was written.
	InsufficientCapacity
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "Ok"
	case BadState:
		return "BadState"
	case InsufficientCapacity:
		return "InsufficientCapacity"
	default:
		return "Unknown"
	}
}

// Composer builds a single HTTP/1.1 response at a time into a fixed-capacity
// buffer. Call Reset to compose another one.
type Composer struct {
	buf     fixedbuf.Buffer
	state   State
	readLen uint16
}

// New constructs a Composer with the given fixed buffer capacity, which must
// be at least MinCapacity.
func New(capacity int) (*Composer, error) {
	if capacity < MinCapacity {
		return nil, fmt.Errorf("response: capacity must be at least %d bytes, got %d", MinCapacity, capacity)
	}

	return &Composer{buf: fixedbuf.New(capacity)}, nil
}

// Capacity returns the fixed size of the composer's buffer.
func (c *Composer) Capacity() int {
	return c.buf.Cap()
}

// State returns the composer's current state.
func (c *Composer) State() State {
	return c.state
}

// Reset discards whatever was composed and rewinds the composer to build a
// new response. Its capacity is unchanged. When zero is true, every byte of
// the internal buffer is cleared first; pass false to skip that pass when
// the previous response's bytes don't need to be scrubbed before reuse.
func (c *Composer) Reset(zero bool) {
	c.buf.Reset(zero)
	c.state = Ready
	c.readLen = 0
}

func (c *Composer) fits(n int) bool {
	return c.buf.Free()-n >= reserved
}

// AddStatus writes the status line "<protocol> <code> <reason>\r\n". It's
// only valid from Ready.
//
// Unlike AddHeader, it performs no capacity check: the MinCapacity floor
// guarantees room for any standard status line, and the spec treats the
// status line as mandatory and singular, leaving nothing sensible for a
// caller to retry with on failure. A reason phrase long enough to overrun
// the buffer is a caller error, and it surfaces the same way any other
// out-of-bounds slice write in Go does.
func (c *Composer) AddStatus(protocol string, code status.Code, reason string) Result {
	if c.state != Ready {
		return BadState
	}

	c.state = WritingHeaders

	needed := len(protocol) + 1 + 3 + 1 + len(reason) + 2
	chunk := c.buf.Chunk(needed)
	n := copy(chunk, protocol)
	chunk[n] = ' '
	n++
	n += len(status.AppendCode(chunk[n:n], code))
	chunk[n] = ' '
	n++
	n += copy(chunk[n:], reason)
	chunk[n] = '\r'
	chunk[n+1] = '\n'

	c.buf.Advance(needed)

	return Ok
}

// AddStatusCode is AddStatus with the protocol fixed to HTTP/1.1 and the
// reason phrase looked up from status.Text.
func (c *Composer) AddStatusCode(code status.Code) Result {
	return c.AddStatus(defaultProtocol, code, status.Text(code))
}

// AddHeader writes one header line "<name>: <value>\r\n". It's only valid
// from WritingHeaders. AddHeader doesn't validate name or value itself - use
// IsHeaderNameValid and IsHeaderValueValid beforehand if the caller doesn't
// already know its own header is well-formed; a composer fed a malformed
// name or value will happily write malformed bytes.
func (c *Composer) AddHeader(name, value string) Result {
	if c.state != WritingHeaders {
		return BadState
	}

	needed := len(name) + 2 + len(value) + 2
	if !c.fits(needed) {
		return InsufficientCapacity
	}

	chunk := c.buf.Chunk(needed)
	n := copy(chunk, name)
	chunk[n] = ':'
	chunk[n+1] = ' '
	n += 2
	n += copy(chunk[n:], value)
	chunk[n] = '\r'
	chunk[n+1] = '\n'

	c.buf.Advance(needed)

	return Ok
}

// EndHeaders writes the blank line that ends the headers section and moves
// the composer into Composed, ready to be drained via NextChunk/MarkRead.
// It's only valid from WritingHeaders. It needs no capacity check of its own:
// every prior AddHeader left at least reserved bytes free precisely so this
// call can't be the one that runs out of room.
func (c *Composer) EndHeaders() Result {
	if c.state != WritingHeaders {
		return BadState
	}

	chunk := c.buf.Chunk(2)
	chunk[0] = '\r'
	chunk[1] = '\n'
	c.buf.Advance(2)
	c.state = Composed

	return Ok
}

// NextChunk returns a window of up to desired bytes of the composed response
// that haven't been handed out yet. The caller writes them to its own
// destination (a socket, typically) and reports how many were actually
// written via MarkRead. An empty result means either nothing is left to send
// or the composer hasn't reached Composed yet.
func (c *Composer) NextChunk(desired int) []byte {
	if c.state != Composed {
		return nil
	}

	available := c.buf.Len() - int(c.readLen)
	if desired > available {
		desired = available
	}
	if desired < 0 {
		desired = 0
	}

	start := int(c.readLen)

	return c.buf.Slice(start, desired)
}

// MarkRead commits n bytes previously handed out by NextChunk as sent. Once
// every composed byte has been marked read, the composer moves to Done.
func (c *Composer) MarkRead(n int) State {
	if c.state != Composed {
		return c.state
	}

	c.readLen += uint16(n)
	if int(c.readLen) >= c.buf.Len() {
		c.state = Done
	}

	return c.state
}

// IsHeaderNameValid reports whether name may be passed to AddHeader as a
// header name.
func IsHeaderNameValid(name string) bool {
	return charclass.ValidHeaderName([]byte(name))
}

// IsHeaderValueValid reports whether value may be passed to AddHeader as a
// header value.
func IsHeaderValueValid(value string) bool {
	return charclass.ValidHeaderValue([]byte(value))
}

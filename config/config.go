// Package config collects the compile-time-flavored sizing knobs for
// request.Parser and response.Composer. Go has no const-generic buffer
// capacities, so what the wire format calls a fixed template parameter is,
// here, just a number you pass to New once at construction.
package config

import (
	"github.com/indigo-web/httpcodec/request"
	"github.com/indigo-web/httpcodec/response"
)

// Request holds sizing for request.Parser.
type Request struct {
	// BufferSize is the fixed capacity of the parser's internal buffer:
	// request line plus headers, nothing else.
	BufferSize int
}

// Response holds sizing for response.Composer.
type Response struct {
	// BufferSize is the fixed capacity of the composer's internal buffer.
	// Must be at least response.MinCapacity.
	BufferSize int
}

// Config bundles the two together for callers that construct both a parser
// and a composer per connection.
type Config struct {
	Request  Request
	Response Response
}

// Default returns a well-balanced Config: 2KB for both the request buffer
// and the response buffer, fairly tolerant for ordinary requests and
// responses without reserving an unreasonable amount of memory per
// connection.
func Default() *Config {
	return &Config{
		Request: Request{
			BufferSize: 2 * 1024,
		},
		Response: Response{
			BufferSize: 2 * 1024,
		},
	}
}

// NewParser constructs a request.Parser sized according to c.Request.
func (c *Config) NewParser() *request.Parser {
	return request.New(c.Request.BufferSize)
}

// NewComposer constructs a response.Composer sized according to c.Response.
// It fails the same way response.New does if BufferSize is below
// response.MinCapacity.
func (c *Config) NewComposer() (*response.Composer, error) {
	return response.New(c.Response.BufferSize)
}

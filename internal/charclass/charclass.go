// Package charclass implements the character classes shared by the request
// parser and the response composer: what may appear in a header name and what
// may appear in a header value. Neither the method nor the request-target are
// validated here - the parser is deliberately lenient about those, leaving
// validation to the caller.
package charclass

// IsHeaderNameByte reports whether c is a legal header name character.
//
// This is stricter than the tchar class from RFC 7230 §3.2.6: punctuation such
// as !#$%&'*+.^|~` is rejected even though the RFC permits it. A header like
// "ETag" parses fine, but "X-Foo!" does not.
func IsHeaderNameByte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}

// IsHeaderValueByte reports whether c may appear in a header value: visible
// ASCII, SP through '~'.
func IsHeaderValueByte(c byte) bool {
	return c >= 0x20 && c <= 0x7E
}

// ValidHeaderName reports whether every byte of name is a legal header name
// character and name is non-empty.
func ValidHeaderName(name []byte) bool {
	if len(name) == 0 {
		return false
	}

	for _, c := range name {
		if !IsHeaderNameByte(c) {
			return false
		}
	}

	return true
}

// ValidHeaderValue reports whether every byte of value is a legal header
// value character. An empty value is valid.
func ValidHeaderValue(value []byte) bool {
	for _, c := range value {
		if !IsHeaderValueByte(c) {
			return false
		}
	}

	return true
}

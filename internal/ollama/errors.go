package ollama

import "fmt"

// TransportError is returned when a request never produced a usable body:
// the server was unreachable, the connection dropped, or it answered with a
// non-2xx status.
type TransportError struct {
	Method string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is returned when a response body is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "JSON parse error: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Package models provides the core data structures for handling inbound webhook requests and responses.
package models

// Request represents an inbound event: an optional serialized JSON body and the headers it arrived with.
type Request struct {
	// ID correlates logs and archived payloads of a single invocation.
	ID string
	// Body is nil when the hosting platform delivered no body at all.
	Body    *string
	Headers map[string]string
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}

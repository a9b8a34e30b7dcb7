package api

// Delivery is the single outcome a Transport reports for a Request.
// Either Err is set (raw failure) or StatusCode and Body describe the reply.
type Delivery struct {
	StatusCode int
	Body       []byte
	Err        error

	// URL is the address the transport resolved, when known.
	URL string
	// RequestID is the id echoed by the server, when present.
	RequestID string
}

// Transport performs the network I/O for a Request.
//
// Submit must return promptly and call done exactly once, from any
// goroutine, when the outcome is known.
type Transport interface {
	Submit(req *Request, done func(Delivery))
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(req *Request, done func(Delivery))

// Submit calls f(req, done).
func (f TransportFunc) Submit(req *Request, done func(Delivery)) {
	f(req, done)
}

package dwaplatform

import (
	"sync"
	"sync/atomic"
)

// fakeTransport records submitted requests and answers them with a
// scripted delivery on a new goroutine, like a real transport would.
type fakeTransport struct {
	calls atomic.Int32

	mu       sync.Mutex
	requests []*Request

	// respond builds the delivery for a request. Nil means hold the
	// request until release is called.
	respond func(*Request) Delivery
	// deliveries is how many times done is invoked per request.
	deliveries int

	held []func()
}

func newFakeTransport(respond func(*Request) Delivery) *fakeTransport {
	return &fakeTransport{respond: respond, deliveries: 1}
}

func (f *fakeTransport) Submit(req *Request, done func(Delivery)) {
	f.calls.Add(1)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	if f.respond == nil {
		f.held = append(f.held, func() { done(Delivery{StatusCode: 200, Body: []byte(`{"id":"held"}`)}) })
		f.mu.Unlock()
		return
	}
	respond, n := f.respond, f.deliveries
	f.mu.Unlock()

	go func() {
		d := respond(req)
		for i := 0; i < n; i++ {
			done(d)
		}
	}()
}

func (f *fakeTransport) release() {
	f.mu.Lock()
	held := f.held
	f.held = nil
	f.mu.Unlock()

	for _, h := range held {
		h()
	}
}

func (f *fakeTransport) lastRequest() *Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

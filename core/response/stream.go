package response

import (
	"context"
	"io"
	"sync"
)

// Stream delivers a streaming generation to its consumer while the producer
// is still decoding chunks off the wire. The consumer reads incrementally
// with Recv or waits for the aggregated final response with Response; both
// views come from the same underlying chunk sequence, so the final response
// is exactly the aggregate of everything Recv delivered.
//
// A Stream has one producer (the client goroutine decoding the body) and is
// intended for one consumer. Producer methods after termination are no-ops.
type Stream struct {
	mu     sync.Mutex
	chunks []*Response
	pos    int
	err    error
	closed bool
	final  *Response
	notify chan struct{}
	done   chan struct{}
}

// NewStream creates an open stream ready for a producer.
func NewStream() *Stream {
	return &Stream{
		notify: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Push appends one decoded chunk and wakes a blocked consumer.
func (s *Stream) Push(chunk *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.chunks = append(s.chunks, chunk)
	s.wake()
}

// Close terminates the stream successfully and freezes the aggregate
// response.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.final = Aggregate(s.chunks)
	close(s.done)
	s.wake()
}

// Fail terminates the stream with err. Chunks already pushed remain
// readable; Recv surfaces err once they are drained.
func (s *Stream) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.done)
	s.wake()
}

// wake releases any consumer parked on the notify channel. Callers hold mu.
func (s *Stream) wake() {
	close(s.notify)
	s.notify = make(chan struct{})
}

// Recv returns the next chunk. It blocks until a chunk arrives, the stream
// ends (io.EOF), the stream fails (the terminating error), or ctx expires.
func (s *Stream) Recv(ctx context.Context) (*Response, error) {
	for {
		s.mu.Lock()
		if s.pos < len(s.chunks) {
			chunk := s.chunks[s.pos]
			s.pos++
			s.mu.Unlock()
			return chunk, nil
		}
		if s.closed {
			err := s.err
			s.mu.Unlock()
			if err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		wait := s.notify
		s.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Response blocks until the stream terminates, then returns the aggregated
// response or the terminating error. It does not consume chunks: Recv and
// Response can be used together on the same stream.
func (s *Stream) Response(ctx context.Context) (*Response, error) {
	select {
	case <-s.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.final, nil
}

/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package dtls

import (
	"errors"
	"net"
	"sync"
	"time"

	pdtls "github.com/pion/dtls/v2"

	"github.com/nabbar/golib/transport"
)

// pollDeadline bounds how long a single Try call may block pion's
// net.Conn-shaped Read/Write before it is treated as "not ready yet".
// DTLS preserves record boundaries the same way UDP preserves datagram
// boundaries, so one Read/Write maps to one message; the deadline only
// exists to keep this call non-blocking.
const pollDeadline = time.Millisecond

// ShutdownState is the lifecycle of a Stream's underlying DTLS
// connection.
type ShutdownState uint8

const (
	Active ShutdownState = iota
	ShuttingDown
	Shutdown
)

// Stream is the handshaked counterpart of transport/stream.Stream: once
// a Candidate resolves successfully, its message stream is wrapped here
// so callers see the same TrySend/TryReceive shape, now running over an
// authenticated, encrypted DTLS session instead of a bare datagram.
type Stream struct {
	conn *pdtls.Conn
	role Role

	mu    sync.Mutex
	state ShutdownState
}

func newStream(c *Candidate) *Stream {
	return &Stream{conn: c.Conn(), role: c.role}
}

// Addr returns the peer address this stream is bound to.
func (s *Stream) Addr() net.Addr {
	return s.conn.RemoteAddr()
}

// Role reports which side of the handshake this stream played.
func (s *Stream) Role() Role {
	return s.role
}

// State reports this stream's shutdown lifecycle state.
func (s *Stream) State() ShutdownState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TrySend offers msg for transmission. It returns transport.ErrFull if
// the record could not be written within the poll deadline, and
// transport.ErrDisconnected once the stream has begun shutting down or
// the connection has failed.
func (s *Stream) TrySend(msg []byte) error {
	if s.State() != Active {
		return transport.ErrDisconnected
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(pollDeadline))

	if _, err := s.conn.Write(msg); err != nil {
		if isTimeout(err) {
			return transport.ErrFull
		}
		return transport.ErrDisconnected
	}

	return nil
}

// TryReceive returns the next decrypted message, or transport.ErrNotReady
// if none is pending within the poll deadline.
func (s *Stream) TryReceive() ([]byte, error) {
	if s.State() == Shutdown {
		return nil, transport.ErrDisconnected
	}

	_ = s.conn.SetReadDeadline(time.Now().Add(pollDeadline))

	buf := make([]byte, 65535)
	n, err := s.conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			return nil, transport.ErrNotReady
		}
		return nil, transport.ErrDisconnected
	}

	return buf[:n], nil
}

// BeginShutdown moves the stream to ShuttingDown: TrySend starts
// reporting disconnection immediately, but a caller still draining
// TryReceive can observe the peer's own close_notify before the
// connection is fully torn down.
func (s *Stream) BeginShutdown() {
	s.mu.Lock()
	if s.state == Active {
		s.state = ShuttingDown
	}
	s.mu.Unlock()
}

// Close tears down the DTLS connection and moves the stream to Shutdown.
func (s *Stream) Close() error {
	s.mu.Lock()
	s.state = Shutdown
	s.mu.Unlock()

	return s.conn.Close()
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

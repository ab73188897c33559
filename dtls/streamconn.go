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
	"net"
	"time"

	"github.com/nabbar/golib/transport/stream"
)

// streamConn adapts a message-oriented *stream.Stream to the net.Conn
// shape pion/dtls drives its (blocking) handshake and record layer over.
// Every Write is one message; every Read returns the oldest buffered
// message's bytes, trimmed to len(b). Reads and writes spin on the
// underlying Try* calls with a short sleep, since Stream exposes no
// blocking wait primitive - this is deliberately a busy-poll adapter,
// not a production socket wrapper, and is only ever driven from the
// dedicated goroutine a candidate's handshake runs in.
type streamConn struct {
	s    *stream.Stream
	poll time.Duration

	readDeadline  time.Time
	writeDeadline time.Time

	pending []byte
}

func newStreamConn(s *stream.Stream) *streamConn {
	return &streamConn{s: s, poll: time.Millisecond}
}

func (c *streamConn) Read(b []byte) (int, error) {
	for {
		if len(c.pending) > 0 {
			n := copy(b, c.pending)
			c.pending = c.pending[n:]
			return n, nil
		}

		if c.s.IsDisconnected() {
			return 0, net.ErrClosed
		}

		if !c.readDeadline.IsZero() && time.Now().After(c.readDeadline) {
			return 0, errTimeout{}
		}

		msg, err := c.s.TryReceive()
		if err == nil {
			c.pending = msg
			continue
		}

		time.Sleep(c.poll)
	}
}

func (c *streamConn) Write(b []byte) (int, error) {
	for {
		if c.s.IsDisconnected() {
			return 0, net.ErrClosed
		}

		if !c.writeDeadline.IsZero() && time.Now().After(c.writeDeadline) {
			return 0, errTimeout{}
		}

		if err := c.s.TrySend(b); err == nil {
			return len(b), nil
		}

		time.Sleep(c.poll)
	}
}

func (c *streamConn) Close() error {
	c.s.Close()
	return nil
}

func (c *streamConn) LocalAddr() net.Addr  { return nil }
func (c *streamConn) RemoteAddr() net.Addr { return c.s.Addr() }

func (c *streamConn) SetDeadline(t time.Time) error {
	c.readDeadline = t
	c.writeDeadline = t
	return nil
}

func (c *streamConn) SetReadDeadline(t time.Time) error {
	c.readDeadline = t
	return nil
}

func (c *streamConn) SetWriteDeadline(t time.Time) error {
	c.writeDeadline = t
	return nil
}

// errTimeout satisfies net.Error so pion's retry logic (which checks
// Timeout()) backs off instead of treating a deadline as fatal.
type errTimeout struct{}

func (errTimeout) Error() string   { return "dtls: i/o timeout" }
func (errTimeout) Timeout() bool   { return true }
func (errTimeout) Temporary() bool { return true }

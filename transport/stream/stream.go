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

package stream

import (
	"errors"
	"net"

	"github.com/nabbar/golib/transport"
	"github.com/nabbar/golib/transport/duplex"
)

// Stream is the user-facing handle for one peer's logical byte-message
// channel: whatever the mux layer receives from that peer surfaces here,
// and whatever is sent here is what the mux layer transmits to that peer.
type Stream struct {
	addr net.Addr
	half duplex.Half
}

// Addr returns the peer address this stream is bound to.
func (s *Stream) Addr() net.Addr {
	return s.addr
}

// TrySend offers msg to the mux layer for transmission to the peer. It
// returns transport.ErrFull on backpressure, transport.ErrDisconnected
// once the mux-side counterpart is gone.
func (s *Stream) TrySend(msg []byte) error {
	return s.half.TrySend(msg)
}

// TryReceive returns the next message received from the peer, or
// transport.ErrNotReady if none is pending yet.
func (s *Stream) TryReceive() ([]byte, error) {
	return s.half.TryReceive()
}

// IsDisconnected reports whether the mux-side counterpart is gone.
func (s *Stream) IsDisconnected() bool {
	return s.half.IsDisconnected()
}

// Close releases this stream's half. The mux-side counterpart observes a
// disconnected state on its next attempt.
func (s *Stream) Close() {
	s.half.Close()
}

// MuxSide is the internal, acceptor/connector-facing counterpart of a
// Stream: it owns the drop counter and the one-slot retransmit buffer
// the spec requires for backpressured sends.
type MuxSide struct {
	addr net.Addr
	half duplex.Half

	buffered    []byte
	hasBuffered bool

	dropped uint64
}

// NewPair allocates a duplex channel pair bound to addr and returns both
// sides: the user-facing Stream and the mux-facing MuxSide.
func NewPair(addr net.Addr, capacity int) (*Stream, *MuxSide) {
	userHalf, muxHalf := duplex.New(capacity)

	return &Stream{addr: addr, half: userHalf}, &MuxSide{addr: addr, half: muxHalf}
}

// Addr returns the peer address this side is bound to.
func (m *MuxSide) Addr() net.Addr {
	return m.addr
}

// IsDisconnected reports whether the user has dropped their Stream handle.
func (m *MuxSide) IsDisconnected() bool {
	return m.half.IsDisconnected()
}

// DroppedCount returns the number of inbound messages discarded because
// the user-facing queue was full.
func (m *MuxSide) DroppedCount() uint64 {
	return m.dropped
}

// OnRecv pushes a datagram received from the peer toward the user. It
// reports dropped=true (and counts the drop) if the user-facing queue is
// full; it reports disconnected=true and hands b back if the user has
// gone, so the caller can hand b to a replacement stream.
func (m *MuxSide) OnRecv(b []byte) (dropped bool, disconnected bool, returned []byte) {
	err := m.half.TrySend(b)

	switch {
	case err == nil:
		return false, false, nil
	case errors.Is(err, transport.ErrFull):
		m.dropped++
		return true, false, nil
	default:
		return false, true, b
	}
}

// TryTx returns the next message to transmit to the peer: a previously
// rebuffered message takes priority over draining a fresh one from the
// user's outbound queue.
func (m *MuxSide) TryTx() ([]byte, bool) {
	if m.hasBuffered {
		msg := m.buffered
		m.buffered = nil
		m.hasBuffered = false

		return msg, true
	}

	msg, err := m.half.TryReceive()
	if err != nil {
		return nil, false
	}

	return msg, true
}

// Rebuffer re-offers msg on the next TryTx call, used when the transport
// reports backpressure on send.
func (m *MuxSide) Rebuffer(msg []byte) {
	m.buffered = msg
	m.hasBuffered = true
}

// Close releases this side's half.
func (m *MuxSide) Close() {
	m.half.Close()
}

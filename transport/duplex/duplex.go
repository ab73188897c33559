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

package duplex

import (
	"sync/atomic"

	"github.com/nabbar/golib/transport"
)

// Half is one side of a duplex channel pair: an outbound queue the
// counterpart reads from, and an inbound queue the counterpart writes to.
type Half interface {
	// TrySend enqueues msg without blocking. It returns transport.ErrFull
	// if the outbound queue has no free slot, or transport.ErrDisconnected
	// if either this half or its counterpart has been closed.
	TrySend(msg []byte) error

	// TryReceive dequeues the next inbound message without blocking. It
	// returns transport.ErrNotReady if the inbound queue is empty and the
	// counterpart is still connected, or transport.ErrDisconnected once
	// the counterpart is gone and no more messages will ever arrive.
	TryReceive() ([]byte, error)

	// IsDisconnected reports whether either half has been closed.
	IsDisconnected() bool

	// Close marks this half as gone. Idempotent.
	Close()
}

type shared struct {
	aClosed atomic.Bool
	bClosed atomic.Bool
}

type half struct {
	out  chan []byte
	in   chan []byte
	mine *atomic.Bool
	peer *atomic.Bool
}

// New builds a duplex pair with the given per-direction capacity: each
// half can have up to capacity messages in flight toward the other before
// TrySend reports transport.ErrFull.
func New(capacity int) (Half, Half) {
	ab := make(chan []byte, capacity)
	ba := make(chan []byte, capacity)

	st := &shared{}

	a := &half{out: ab, in: ba, mine: &st.aClosed, peer: &st.bClosed}
	b := &half{out: ba, in: ab, mine: &st.bClosed, peer: &st.aClosed}

	return a, b
}

func (h *half) TrySend(msg []byte) error {
	if h.mine.Load() || h.peer.Load() {
		return transport.ErrDisconnected
	}

	select {
	case h.out <- msg:
		return nil
	default:
		return transport.ErrFull
	}
}

func (h *half) TryReceive() ([]byte, error) {
	select {
	case msg := <-h.in:
		return msg, nil
	default:
	}

	if h.mine.Load() || h.peer.Load() {
		return nil, transport.ErrDisconnected
	}

	return nil, transport.ErrNotReady
}

func (h *half) IsDisconnected() bool {
	return h.mine.Load() || h.peer.Load()
}

func (h *half) Close() {
	h.mine.Store(true)
}

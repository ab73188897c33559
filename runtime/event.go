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

package runtime

import "net"

// Mask is a subset of {Readable, Writable}.
type Mask uint8

const (
	Readable Mask = 1 << iota
	Writable
)

// Has reports whether m includes bit.
func (m Mask) Has(bit Mask) bool {
	return m&bit != 0
}

// Kind tags the variant carried by an Event.
type Kind uint8

const (
	// KindReady reports readiness on Socket for the bits in Mask.
	KindReady Kind = iota
	// KindError reports a fatal error on Socket; the socket should be
	// considered closed once observed.
	KindError
	// KindCtl delivers a user-supplied control message, in order.
	KindCtl
	// KindAccept reports that Socket (a local socket) has observed a
	// datagram from a new peer, minted as Remote with address Addr.
	KindAccept
)

// Event is the tagged variant yielded by a runtime's event queue.
type Event struct {
	Kind   Kind
	Socket Socket
	Mask   Mask
	Err    error
	Ctl    any

	Remote Socket
	Addr   net.Addr
}

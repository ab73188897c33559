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

// Socket is an opaque, copyable handle to either a bound local endpoint or
// a remote (connected/accepted) peer. Its zero value never refers to a live
// socket.
type Socket uint64

// remoteBit marks a handle as a remote socket; local handles leave it
// clear. This keeps the two ID spaces distinguishable without a lookup.
const remoteBit Socket = 1 << 63

// IsRemote reports whether s addresses a remote (peer) socket rather than
// a bound local one.
func (s Socket) IsRemote() bool {
	return s&remoteBit != 0
}

// IsZero reports whether s is the zero handle.
func (s Socket) IsZero() bool {
	return s == 0
}

// handleAllocator mints monotonically increasing handles within one of the
// two ID spaces, wrapping the remote bit into every remote handle it hands
// out.
type handleAllocator struct {
	next Socket
}

func (a *handleAllocator) nextLocal() (Socket, bool) {
	if a.next+1 >= remoteBit {
		return 0, false
	}

	a.next++
	return a.next &^ remoteBit, true
}

func (a *handleAllocator) nextRemote() (Socket, bool) {
	if a.next+1 >= remoteBit {
		return 0, false
	}

	a.next++
	return a.next | remoteBit, true
}

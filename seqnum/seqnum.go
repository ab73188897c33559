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

package seqnum

// Unsigned is any bounded unsigned integer width a RIST sequence counter
// may be carried in.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Max returns the maximum representable value for T, i.e. 2^k - 1.
func Max[T Unsigned]() T {
	return ^T(0)
}

// AddWrap adds a and b modulo 2^k. Unsigned overflow in Go already wraps,
// so this is addition, named for symmetry with SubWrap.
func AddWrap[T Unsigned](a, b T) T {
	return a + b
}

// SubWrap subtracts b from a modulo 2^k.
func SubWrap[T Unsigned](a, b T) T {
	return a - b
}

// ForwardDistance returns the wrapping distance travelled going forward
// from "from" to "to", i.e. how many AddWrap(x, 1) steps reach "to" from
// "from". It is always in [0, Max[T]()].
func ForwardDistance[T Unsigned](from, to T) T {
	return SubWrap(to, from)
}

// IsSeqReset reports whether current looks like a sequence-number reset
// relative to last, given the reorder ring's capacity: the forward
// distance from last to current exceeds capacity (it cannot be explained
// by an ordinary gap the ring can hold) but is at most Max[T]()-capacity
// (it is not simply a slightly-late arrival wrapping back near zero).
func IsSeqReset[T Unsigned](last, current, capacity T) bool {
	d := ForwardDistance(last, current)
	return d > capacity && d <= Max[T]()-capacity
}

// IsExpired reports whether pktSeq lies "in the past" of readSeq in the
// pivot-window sense: distinct from readSeq, and more than half the
// number space ahead of it going forward (equivalently, behind it going
// backward).
func IsExpired[T Unsigned](readSeq, pktSeq T) bool {
	if readSeq == pktSeq {
		return false
	}

	return ForwardDistance(readSeq, pktSeq) > Max[T]()/2
}

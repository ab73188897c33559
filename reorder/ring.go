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

package reorder

import (
	"github.com/nabbar/golib/seqnum"
	"github.com/nabbar/golib/transport"
)

// DefaultLostThreshold is the default "within N of capacity" trigger for a
// Missing event: once the backlog is this close to full, waiting any
// longer for the awaited sequence number risks losing it to admission
// pressure, so the ring declares it lost instead.
const DefaultLostThreshold = 2

// Sequenced is any value carrying a sequence number of width T.
type Sequenced[T seqnum.Unsigned] interface {
	Sequence() T
}

// Kind discriminates the result of NextEvent.
type Kind uint8

const (
	// KindNeedMore means no packet is ready yet and the backlog is not
	// close enough to capacity to declare a loss.
	KindNeedMore Kind = iota
	// KindPacket carries the next in-order packet.
	KindPacket
	// KindMissing means the awaited sequence number is declared lost.
	KindMissing
	// KindReset means a sequence reset was observed; ResetSeq carries the
	// sequence the next delivered packet will have.
	KindReset
)

// Event is the result of one NextEvent call.
type Event[T seqnum.Unsigned, P Sequenced[T]] struct {
	Kind     Kind
	Packet   P
	ResetSeq T
}

type slot[T seqnum.Unsigned, P Sequenced[T]] struct {
	valid bool
	pkt   P
}

// Counters is a point-in-time snapshot of the ring's monotonic counters.
type Counters struct {
	Delivered uint64
	Dropped   uint64
	Lost      uint64
	Reordered uint64
	Rejected  uint64
}

// Ring is a fixed-capacity reordering buffer admitting packets in
// arrival order and emitting them in sequence order. It belongs to a
// single stream-owning task and is not safe for concurrent use.
type Ring[T seqnum.Unsigned, P Sequenced[T]] struct {
	slots []slot[T, P]

	readHead  int
	writeHead int
	occupied  int

	readSeq     T
	lastWritten T

	resetPending bool

	lostThreshold T

	counters Counters
}

// New builds a Ring with DefaultLostThreshold.
func New[T seqnum.Unsigned, P Sequenced[T]](capacity int) (*Ring[T, P], error) {
	return NewWithThreshold[T, P](capacity, T(DefaultLostThreshold))
}

// NewWithThreshold builds a Ring with an explicit lost-threshold, per the
// spec's note that the "within N of capacity" Missing trigger may be
// parameterised.
func NewWithThreshold[T seqnum.Unsigned, P Sequenced[T]](capacity int, lostThreshold T) (*Ring[T, P], error) {
	if capacity <= 0 {
		return nil, transport.ErrorRingCapacityInvalid.Error()
	}

	return &Ring[T, P]{
		slots:         make([]slot[T, P], capacity),
		lostThreshold: lostThreshold,
	}, nil
}

// Capacity returns the fixed slot count passed to New.
func (r *Ring[T, P]) Capacity() int {
	return len(r.slots)
}

// Backlog returns the number of occupied slots right now.
func (r *Ring[T, P]) Backlog() int {
	return r.occupied
}

// Snapshot returns the current counters.
func (r *Ring[T, P]) Snapshot() Counters {
	return r.counters
}

func (r *Ring[T, P]) next(idx int) int {
	return (idx + 1) % len(r.slots)
}

// Put admits p. It returns (p, false) if the packet was rejected as
// expired or the ring is full (backpressure); a full-ring rejection
// leaves every counter untouched, while an expired rejection increments
// Rejected. It returns (p, true) once p has been stored.
func (r *Ring[T, P]) Put(p P) (P, bool) {
	if seqnum.IsExpired(r.readSeq, p.Sequence()) {
		r.counters.Rejected++
		return p, false
	}

	if seqnum.IsSeqReset(r.lastWritten, p.Sequence(), T(len(r.slots))) {
		r.resetRing(p.Sequence())
	}

	if r.occupied >= len(r.slots) {
		return p, false
	}

	idx := r.writeHead
	if r.slots[idx].valid {
		r.counters.Dropped++
	} else {
		r.occupied++
	}

	r.slots[idx] = slot[T, P]{valid: true, pkt: p}
	r.writeHead = r.next(r.writeHead)

	r.lastWritten = p.Sequence()

	return p, true
}

func (r *Ring[T, P]) resetRing(seq T) {
	for i := range r.slots {
		r.slots[i] = slot[T, P]{}
	}

	r.readHead = 0
	r.writeHead = 0
	r.occupied = 0
	r.readSeq = seqnum.SubWrap(seq, T(1))
	r.resetPending = true
}

// advanceHeadOverEmpty reclaims a contiguous run of already-drained slots
// starting at the read head, so Backlog/Put see accurate free space even
// though a match earlier in NextEvent may have been found and removed
// further along the ring than the read head itself.
func (r *Ring[T, P]) advanceHeadOverEmpty() {
	for r.readHead != r.writeHead && !r.slots[r.readHead].valid {
		r.readHead = r.next(r.readHead)
	}
}

func (r *Ring[T, P]) remove(idx int) {
	r.slots[idx] = slot[T, P]{}
	r.occupied--

	if idx == r.readHead {
		r.advanceHeadOverEmpty()
	}
}

// NextEvent advances the ring by exactly one event: a sequence reset, the
// next in-order packet, a declared loss, or NeedMore if nothing can be
// concluded yet.
func (r *Ring[T, P]) NextEvent() Event[T, P] {
	if r.resetPending {
		r.resetPending = false
		r.readSeq = seqnum.AddWrap(r.readSeq, T(1))

		return Event[T, P]{Kind: KindReset, ResetSeq: r.readSeq}
	}

	r.advanceHeadOverEmpty()

	for idx := r.readHead; idx != r.writeHead; idx = r.next(idx) {
		s := r.slots[idx]

		if !s.valid {
			continue
		}

		if seqnum.IsExpired(r.readSeq, s.pkt.Sequence()) {
			r.remove(idx)
			r.counters.Dropped++
			continue
		}

		if s.pkt.Sequence() != r.readSeq {
			continue
		}

		reordered := idx != r.readHead

		r.remove(idx)
		r.readSeq = seqnum.AddWrap(r.readSeq, T(1))
		r.counters.Delivered++

		if reordered {
			r.counters.Reordered++
		}

		return Event[T, P]{Kind: KindPacket, Packet: s.pkt}
	}

	if r.occupied >= len(r.slots)-int(r.lostThreshold) {
		r.readSeq = seqnum.AddWrap(r.readSeq, T(1))
		r.counters.Lost++

		return Event[T, P]{Kind: KindMissing}
	}

	return Event[T, P]{Kind: KindNeedMore}
}

// SkipToNext repeatedly advances read_seq, independently of the Missing
// threshold NextEvent applies, until an in-order packet can be emitted or
// the ring drains. It does not raise a pending reset; callers that need
// reset handling should drain resets via NextEvent first.
func (r *Ring[T, P]) SkipToNext() (P, bool) {
	r.resetPending = false

	for {
		r.advanceHeadOverEmpty()

		for idx := r.readHead; idx != r.writeHead; idx = r.next(idx) {
			s := r.slots[idx]

			if !s.valid {
				continue
			}

			if seqnum.IsExpired(r.readSeq, s.pkt.Sequence()) {
				r.remove(idx)
				r.counters.Dropped++
				continue
			}

			if s.pkt.Sequence() != r.readSeq {
				continue
			}

			reordered := idx != r.readHead

			r.remove(idx)
			r.readSeq = seqnum.AddWrap(r.readSeq, T(1))
			r.counters.Delivered++

			if reordered {
				r.counters.Reordered++
			}

			return s.pkt, true
		}

		if r.occupied == 0 {
			var zero P
			return zero, false
		}

		r.readSeq = seqnum.AddWrap(r.readSeq, T(1))
	}
}

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
	"net"

	"github.com/nabbar/golib/logger"
	logent "github.com/nabbar/golib/logger/entry"
	loglvl "github.com/nabbar/golib/logger/level"
)

// ReapInterval is how many Tick calls elapse between dead-stream sweeps.
const ReapInterval = 1024

// Collection maps peer addresses to their mux-facing stream side. It is
// owned by a single acceptor/connector and is not safe for concurrent
// use; the Stream handles it hands out cross a duplex channel and are
// safe to use from another goroutine.
type Collection struct {
	capacity int

	streams map[string]*MuxSide
	order   []string
	cursor  int

	ticks uint64

	log logger.FuncLog
}

// NewCollection builds an empty Collection; capacity is the per-direction
// duplex buffer size used for every stream it creates.
func NewCollection(capacity int) *Collection {
	return &Collection{
		capacity: capacity,
		streams:  make(map[string]*MuxSide),
	}
}

// SetLogger wires a log provider into the Collection; every reap-swept
// stream is then reported through it. Returns the Collection so it can
// be chained from a constructor call.
func (c *Collection) SetLogger(fct logger.FuncLog) *Collection {
	c.log = fct
	return c
}

func (c *Collection) logEntry(lvl loglvl.Level, pattern string, args ...interface{}) logent.Entry {
	if c.log != nil {
		if l := c.log(); l != nil {
			return l.Entry(lvl, pattern, args...)
		}
	}
	return logent.New(loglvl.NilLevel)
}

// Len returns the number of streams currently tracked.
func (c *Collection) Len() int {
	return len(c.streams)
}

// Get returns the mux-facing side for addr, if any.
func (c *Collection) Get(addr net.Addr) (*MuxSide, bool) {
	m, ok := c.streams[addr.String()]
	return m, ok
}

// Create allocates a new stream pair for addr, registers it, and returns
// both sides.
func (c *Collection) Create(addr net.Addr) (*Stream, *MuxSide) {
	s, m := NewPair(addr, c.capacity)

	key := addr.String()
	if _, exists := c.streams[key]; !exists {
		c.order = append(c.order, key)
	}

	c.streams[key] = m

	return s, m
}

// Remove evicts addr from the collection.
func (c *Collection) Remove(addr net.Addr) {
	c.removeKey(addr.String())
}

func (c *Collection) removeKey(key string) {
	if _, ok := c.streams[key]; !ok {
		return
	}

	delete(c.streams, key)

	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			if c.cursor > i {
				c.cursor--
			}
			break
		}
	}

	if len(c.order) == 0 {
		c.cursor = 0
	} else {
		c.cursor %= len(c.order)
	}
}

// Tick increments the accept-call counter and, every ReapInterval calls,
// sweeps the collection for disconnected streams.
func (c *Collection) Tick() {
	c.ticks++

	if c.ticks%ReapInterval == 0 {
		c.reap()
	}
}

func (c *Collection) reap() {
	for _, key := range append([]string(nil), c.order...) {
		if m, ok := c.streams[key]; ok && m.IsDisconnected() {
			c.removeKey(key)

			ent := c.logEntry(loglvl.InfoLevel, "reaped disconnected stream")
			ent.FieldAdd("addr", key)
			ent.Log()
		}
	}
}

// EachTx visits every tracked stream exactly once, starting from a cursor
// remembered across calls so sustained backpressure on one peer cannot
// starve the others' turn at the front of the iteration indefinitely. If
// fn returns an error, iteration stops immediately and the error is
// returned; the cursor is still advanced for the next call.
func (c *Collection) EachTx(fn func(addr net.Addr, m *MuxSide) error) error {
	n := len(c.order)
	if n == 0 {
		return nil
	}

	start := c.cursor % n

	var retErr error

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		key := c.order[idx]

		m, ok := c.streams[key]
		if !ok {
			continue
		}

		if err := fn(m.Addr(), m); err != nil {
			retErr = err
			break
		}
	}

	c.cursor = (start + 1) % n

	return retErr
}

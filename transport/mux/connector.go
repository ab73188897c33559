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

package mux

import (
	"errors"
	"net"
	"time"

	"github.com/nabbar/golib/logger"
	logent "github.com/nabbar/golib/logger/entry"
	loglvl "github.com/nabbar/golib/logger/level"
	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/transport/stream"
)

// Connector multiplexes one bound local socket into streams the user
// dials explicitly; unsolicited datagrams from addresses nobody connected
// to are dropped rather than turned into new streams.
type Connector struct {
	rt    runtime.Runtime
	local runtime.Socket
	col   *stream.Collection

	keepAlive time.Duration
	lastSent  map[string]time.Time

	log logger.FuncLog
}

// NewConnector builds a Connector over an already-bound local socket.
func NewConnector(rt runtime.Runtime, local runtime.Socket, streamCapacity int) *Connector {
	return &Connector{
		rt:       rt,
		local:    local,
		col:      stream.NewCollection(streamCapacity),
		lastSent: make(map[string]time.Time),
	}
}

// WithKeepAlive sets the idle interval after which Run sends a
// zero-length keep-alive datagram to a peer with no outbound traffic of
// its own. Zero (the default) disables keep-alives.
func (c *Connector) WithKeepAlive(d time.Duration) *Connector {
	c.keepAlive = d
	return c
}

// SetLogger wires a log provider into the Connector and the stream
// Collection it owns; dropped datagrams and reaped peers are then
// reported through it.
func (c *Connector) SetLogger(fct logger.FuncLog) *Connector {
	c.log = fct
	c.col.SetLogger(fct)
	return c
}

func (c *Connector) logEntry(lvl loglvl.Level, pattern string, args ...interface{}) logent.Entry {
	if c.log != nil {
		if l := c.log(); l != nil {
			return l.Entry(lvl, pattern, args...)
		}
	}
	return logent.New(loglvl.NilLevel)
}

// Connect allocates a stream bound to addr and returns it immediately; no
// datagram is sent until the user writes to the stream or a keep-alive
// interval elapses.
func (c *Connector) Connect(addr net.Addr) *stream.Stream {
	s, _ := c.col.Create(addr)
	return s
}

// Len returns the number of streams currently tracked.
func (c *Connector) Len() int {
	return c.col.Len()
}

// Run executes one reap-drain-pump cycle: inbound datagrams are fanned
// out to their stream (unsolicited ones from unconnected peers are
// dropped), then every stream's outbound queue is pumped, with an
// optional keep-alive sent to otherwise-idle peers.
func (c *Connector) Run() error {
	c.col.Tick()

	if err := c.drain(); err != nil {
		return err
	}

	return c.pump()
}

func (c *Connector) drain() error {
	for {
		buf, addr, err := c.rt.RecvFrom(c.local)
		if err != nil {
			if errors.Is(err, runtime.ErrNotReady) {
				return nil
			}
			return err
		}

		m, ok := c.col.Get(addr)
		if !ok {
			ent := c.logEntry(loglvl.WarnLevel, "dropping datagram from unconnected peer")
			ent.FieldAdd("local_socket", uint64(c.local))
			ent.FieldAdd("addr", addr.String())
			ent.Log()
			continue
		}

		if m.IsDisconnected() {
			c.col.Remove(addr)

			ent := c.logEntry(loglvl.InfoLevel, "removing disconnected peer stream")
			ent.FieldAdd("addr", addr.String())
			ent.Log()
			continue
		}

		m.OnRecv(buf)
	}
}

func (c *Connector) pump() error {
	now := c.rt.Clock().Now()

	return c.col.EachTx(func(addr net.Addr, m *stream.MuxSide) error {
		sent := false

		for {
			msg, ok := m.TryTx()
			if !ok {
				break
			}

			if err := c.rt.SendTo(c.local, msg, addr); err != nil {
				if errors.Is(err, runtime.ErrNotReady) {
					m.Rebuffer(msg)
					break
				}
				return err
			}

			sent = true
		}

		key := addr.String()

		if sent {
			c.lastSent[key] = now
			return nil
		}

		if c.keepAlive <= 0 {
			return nil
		}

		if last, ok := c.lastSent[key]; ok && now.Sub(last) < c.keepAlive {
			return nil
		}

		if err := c.rt.SendTo(c.local, nil, addr); err != nil && !errors.Is(err, runtime.ErrNotReady) {
			return err
		}

		c.lastSent[key] = now
		return nil
	})
}

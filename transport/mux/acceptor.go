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

	"github.com/nabbar/golib/logger"
	logent "github.com/nabbar/golib/logger/entry"
	loglvl "github.com/nabbar/golib/logger/level"
	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/transport/stream"
)

// Acceptor multiplexes one bound local socket into per-peer streams,
// surfacing a new stream the first time a datagram arrives from an
// address it has not seen, or from an address whose prior stream's
// reader has since disconnected.
type Acceptor struct {
	rt    runtime.Runtime
	local runtime.Socket
	col   *stream.Collection

	log logger.FuncLog
}

// NewAcceptor builds an Acceptor over an already-bound local socket.
// streamCapacity is the per-direction duplex buffer size given to every
// stream it creates.
func NewAcceptor(rt runtime.Runtime, local runtime.Socket, streamCapacity int) *Acceptor {
	return &Acceptor{
		rt:    rt,
		local: local,
		col:   stream.NewCollection(streamCapacity),
	}
}

// SetLogger wires a log provider into the Acceptor and the stream
// Collection it owns; replaced and reaped peers are then reported
// through it.
func (a *Acceptor) SetLogger(fct logger.FuncLog) *Acceptor {
	a.log = fct
	a.col.SetLogger(fct)
	return a
}

func (a *Acceptor) logEntry(lvl loglvl.Level, pattern string, args ...interface{}) logent.Entry {
	if a.log != nil {
		if l := a.log(); l != nil {
			return l.Entry(lvl, pattern, args...)
		}
	}
	return logent.New(loglvl.NilLevel)
}

// Len returns the number of streams currently tracked.
func (a *Acceptor) Len() int {
	return a.col.Len()
}

// Accept runs one reap-drain-pump cycle and returns the next newly
// accepted stream, if any. A nil, nil result means no new stream arrived
// this call; existing streams were still serviced.
func (a *Acceptor) Accept() (*stream.Stream, error) {
	a.col.Tick()

	newStream, err := a.drain()
	if err != nil {
		return nil, err
	}

	if txErr := pumpTx(a.rt, a.local, a.col); txErr != nil && newStream == nil {
		return nil, txErr
	}

	return newStream, nil
}

func (a *Acceptor) drain() (*stream.Stream, error) {
	for {
		buf, addr, err := a.rt.RecvFrom(a.local)
		if err != nil {
			if errors.Is(err, runtime.ErrNotReady) {
				return nil, nil
			}
			return nil, err
		}

		m, ok := a.col.Get(addr)
		if ok {
			_, disconnected, returned := m.OnRecv(buf)
			if !disconnected {
				continue
			}

			a.col.Remove(addr)
			ent := a.logEntry(loglvl.InfoLevel, "replacing disconnected stream")
			ent.FieldAdd("local_socket", uint64(a.local))
			ent.FieldAdd("addr", addr.String())
			ent.Log()
			buf = returned
		}

		s, fresh := a.col.Create(addr)
		fresh.OnRecv(buf)

		return s, nil
	}
}

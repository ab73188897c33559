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

package protocol

import (
	"net"
	"time"

	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/transport/mux"
	"github.com/nabbar/golib/transport/stream"
)

// EchoProtocol is a minimal, fully worked Protocol: on Start it binds a
// local socket and attaches an acceptor; on every Run it accepts new
// peers, echoes back whatever each tracked stream sent it, and on
// Shutdown closes the socket and reports Never. It exists to exercise
// the runtime/mux/protocol contract end to end.
type EchoProtocol struct {
	bindAddr string

	local   runtime.Socket
	haveSoc bool

	acceptor *mux.Acceptor
	streams  []*stream.Stream
}

// NewEchoProtocol builds an EchoProtocol that binds bindAddr once it
// receives a Start control message.
func NewEchoProtocol(bindAddr string) *EchoProtocol {
	return &EchoProtocol{bindAddr: bindAddr}
}

// LocalAddr returns the address EchoProtocol bound after processing its
// Start control message, or an error if it has not started yet.
func (e *EchoProtocol) LocalAddr(rt runtime.Runtime) (net.Addr, error) {
	if !e.haveSoc {
		return nil, runtime.ErrNotReady
	}

	return rt.LocalAddr(e.local)
}

func (e *EchoProtocol) Run(rt runtime.Runtime, events []runtime.Event) (NextWake, error) {
	for _, ev := range events {
		switch ev.Kind {
		case runtime.KindCtl:
			ctl, ok := ev.Ctl.(Ctl)
			if !ok {
				continue
			}

			switch {
			case ctl.IsStart():
				if err := e.start(rt); err != nil {
					return NextWake{}, err
				}
			case ctl.IsShutdown():
				e.shutdown(rt)
				return Never(), nil
			}
		}
	}

	if e.haveSoc {
		if err := e.pump(); err != nil {
			return NextWake{}, err
		}
	}

	return At(time.Time{}), nil
}

func (e *EchoProtocol) start(rt runtime.Runtime) error {
	sock, err := rt.Bind(e.bindAddr)
	if err != nil {
		return err
	}

	e.local = sock
	e.haveSoc = true
	e.acceptor = mux.NewAcceptor(rt, sock, 32)

	return nil
}

func (e *EchoProtocol) pump() error {
	for {
		s, err := e.acceptor.Accept()
		if err != nil {
			return err
		}
		if s == nil {
			break
		}

		e.streams = append(e.streams, s)
	}

	live := e.streams[:0]

	for _, s := range e.streams {
		if s.IsDisconnected() {
			continue
		}

		for {
			msg, err := s.TryReceive()
			if err != nil {
				break
			}

			_ = s.TrySend(msg)
		}

		live = append(live, s)
	}

	e.streams = live

	return nil
}

func (e *EchoProtocol) shutdown(rt runtime.Runtime) {
	if !e.haveSoc {
		return
	}

	for _, s := range e.streams {
		s.Close()
	}
	e.streams = nil

	_ = rt.Close(e.local)
	e.haveSoc = false
}

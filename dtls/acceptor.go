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

package dtls

import (
	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport/mux"
)

// Acceptor wraps a message-stream mux.Acceptor so every new peer goes
// through a DTLS handshake (server role) before it is handed to the
// caller. Candidates that never complete their handshake within
// HandshakeTimeout, or whose handshake fails, are dropped from the
// store (and logged, once a logger is wired in); the peer is free to
// retry by sending a fresh first datagram, which mints a new message
// stream and a new candidate.
type Acceptor struct {
	mux   *mux.Acceptor
	store *Store
}

// NewAcceptor builds a DTLS Acceptor over an existing message-stream
// acceptor. cfg supplies the server's certificate and trust material;
// sm bounds how many handshakes may run concurrently.
func NewAcceptor(m *mux.Acceptor, cfg ContextProvider, sm sem.Sem) *Acceptor {
	return &Acceptor{mux: m, store: NewStore(cfg, sm)}
}

// SetLogger wires a log provider into the Acceptor's mux layer and its
// candidate store, so replaced streams and handshake outcomes are both
// reported through it.
func (a *Acceptor) SetLogger(fct logger.FuncLog) *Acceptor {
	a.mux.SetLogger(fct)
	a.store.SetLogger(fct)
	return a
}

// Accept drains every newly contacted peer into a fresh server-role
// candidate, advances every tracked candidate one step, and returns the
// first one that completed its handshake this call. It returns
// (nil, nil) when nothing is ready yet.
func (a *Acceptor) Accept() (*Stream, error) {
	for {
		s, err := a.mux.Accept()
		if err != nil {
			return nil, err
		}
		if s == nil {
			break
		}

		if err := a.store.Add(s, RoleServer, ""); err != nil {
			continue
		}
	}

	for _, c := range a.store.Advance() {
		if c.Poll() == Success {
			return newStream(c), nil
		}
	}

	return nil, nil
}

// Len reports the number of peers whose handshake has not yet resolved.
func (a *Acceptor) Len() int {
	return a.store.Len()
}

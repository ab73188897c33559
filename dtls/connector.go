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
	"net"

	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport/mux"
)

// Connector wraps a message-stream mux.Connector so every dialed peer
// goes through a client-role DTLS handshake before being handed back to
// the caller. One Connector dials many peers; each gets its own
// candidate and, once resolved, its own Stream.
type Connector struct {
	mux   *mux.Connector
	store *Store
}

// NewConnector builds a DTLS Connector over an existing message-stream
// connector. cfg supplies the client certificate and trust material
// (serverName passed to Dial is forwarded to cfg for SNI/verification).
func NewConnector(m *mux.Connector, cfg ContextProvider, sm sem.Sem) *Connector {
	return &Connector{mux: m, store: NewStore(cfg, sm)}
}

// SetLogger wires a log provider into the Connector's mux layer and its
// candidate store, so dropped datagrams and handshake outcomes are both
// reported through it.
func (c *Connector) SetLogger(fct logger.FuncLog) *Connector {
	c.mux.SetLogger(fct)
	c.store.SetLogger(fct)
	return c
}

// Dial allocates a message stream to addr and starts a client-role
// handshake over it. The returned Stream is not usable until its
// handshake completes; callers should poll Run until that peer's
// address stops appearing as pending.
func (c *Connector) Dial(addr net.Addr, serverName string) error {
	s := c.mux.Connect(addr)
	return c.store.Add(s, RoleClient, serverName)
}

// Run advances the underlying message-stream connector and every
// tracked candidate one step, returning every peer whose handshake
// completed successfully this call. Failed or timed-out candidates are
// dropped; the caller can Dial the same address again to retry.
func (c *Connector) Run() ([]*Stream, error) {
	if err := c.mux.Run(); err != nil {
		return nil, err
	}

	var ready []*Stream

	for _, cand := range c.store.Advance() {
		if cand.Poll() == Success {
			ready = append(ready, newStream(cand))
		}
	}

	return ready, nil
}

// Len reports the number of peers whose handshake has not yet resolved.
func (c *Connector) Len() int {
	return c.store.Len()
}

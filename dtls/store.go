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
	pdtls "github.com/pion/dtls/v2"

	"github.com/nabbar/golib/logger"
	logent "github.com/nabbar/golib/logger/entry"
	loglvl "github.com/nabbar/golib/logger/level"
	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport/stream"
)

// Store tracks every candidate whose DTLS handshake has not yet
// resolved. It is not safe for concurrent use; the accept/connect
// wrappers own one each and drive it from their single-threaded poll
// loop, same as stream.Collection.
type Store struct {
	cfg ContextProvider
	sm  sem.Sem
	mtu int

	candidates []*Candidate

	log logger.FuncLog
}

// NewStore builds an empty Store. sm bounds how many handshakes may run
// concurrently; cfg supplies the DTLS configuration for each new
// candidate.
func NewStore(cfg ContextProvider, sm sem.Sem) *Store {
	return &Store{cfg: cfg, sm: sm}
}

// SetLogger wires a log provider into the Store; every candidate setup
// failure, handshake failure, and timeout cancellation is then reported
// through it.
func (st *Store) SetLogger(fct logger.FuncLog) *Store {
	st.log = fct
	return st
}

func (st *Store) logEntry(lvl loglvl.Level, pattern string, args ...interface{}) logent.Entry {
	if st.log != nil {
		if l := st.log(); l != nil {
			return l.Entry(lvl, pattern, args...)
		}
	}
	return logent.New(loglvl.NilLevel)
}

// Add starts a new candidate's handshake over s, playing role, and
// begins tracking it.
func (st *Store) Add(s *stream.Stream, role Role, serverName string) error {
	cfg, err := st.cfg.DTLSConfig(serverName)
	if err != nil {
		return err
	}

	st.candidates = append(st.candidates, newCandidate(s, role, cfg, st.sm))

	return nil
}

// Len returns the number of candidates still being tracked.
func (st *Store) Len() int {
	return len(st.candidates)
}

// Advance reaps any candidate older than HandshakeTimeout and returns
// every candidate that resolved (successfully or not) since the last
// Advance call. Still-pending candidates remain tracked.
func (st *Store) Advance() []*Candidate {
	var resolved []*Candidate
	live := st.candidates[:0]

	for _, c := range st.candidates {
		if c.Age() > HandshakeTimeout && c.Poll() == InProgress {
			c.Cancel()

			ent := st.logEntry(loglvl.WarnLevel, "dtls handshake timed out")
			ent.FieldAdd("candidate_id", c.CorrID())
			ent.FieldAdd("addr", c.Addr().String())
			ent.Log()
		}

		switch c.Poll() {
		case InProgress:
			live = append(live, c)
		case Success:
			resolved = append(resolved, c)
		case SetupError:
			resolved = append(resolved, c)

			ent := st.logEntry(loglvl.ErrorLevel, "dtls candidate setup failed")
			ent.FieldAdd("candidate_id", c.CorrID())
			ent.FieldAdd("addr", c.Addr().String())
			ent.ErrorAdd(true, c.Err())
			ent.Log()
		default:
			resolved = append(resolved, c)

			ent := st.logEntry(loglvl.ErrorLevel, "dtls handshake failed")
			ent.FieldAdd("candidate_id", c.CorrID())
			ent.FieldAdd("addr", c.Addr().String())
			ent.ErrorAdd(true, c.Err())
			ent.Log()
		}
	}

	st.candidates = live

	return resolved
}

// Conn is a handshaked DTLS connection paired with the candidate's
// original role, handed back by an accept/connect wrapper once the
// corresponding candidate resolves successfully.
type Conn struct {
	*pdtls.Conn
	Role Role
}

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

	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/transport/stream"
)

// pumpTx drains every tracked stream's outbound queue and forwards each
// message via sendTo. A rebuffered message always takes priority over a
// fresh one (stream.MuxSide.TryTx already enforces this); on backpressure
// the message is rebuffered and the pump moves to the next stream. A real
// transport error aborts the pump and is returned to the caller.
func pumpTx(rt runtime.Runtime, local runtime.Socket, col *stream.Collection) error {
	return col.EachTx(func(addr net.Addr, m *stream.MuxSide) error {
		for {
			msg, ok := m.TryTx()
			if !ok {
				return nil
			}

			if err := rt.SendTo(local, msg, addr); err != nil {
				if errors.Is(err, runtime.ErrNotReady) {
					m.Rebuffer(msg)
					return nil
				}
				return err
			}
		}
	})
}

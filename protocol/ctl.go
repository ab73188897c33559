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

// ctlKind distinguishes the control commands every Protocol must at
// least recognize.
type ctlKind uint8

const (
	ctlStart ctlKind = iota
	ctlShutdown
	ctlCustom
)

// Ctl is the user-supplied control message a runtime delivers in-order
// via a runtime.Event of kind KindCtl. Start and Shutdown are the two
// distinguished constructors every Protocol must handle; Custom carries
// an arbitrary payload for protocol-specific commands.
type Ctl struct {
	kind    ctlKind
	payload any
}

// Start builds the control message a Protocol receives once, before any
// other event, to initialize itself (bind/connect via the runtime).
func Start() Ctl {
	return Ctl{kind: ctlStart}
}

// Shutdown builds the control message instructing a Protocol to close
// its sockets and report no further interest.
func Shutdown() Ctl {
	return Ctl{kind: ctlShutdown}
}

// Custom wraps an arbitrary protocol-specific command.
func Custom(payload any) Ctl {
	return Ctl{kind: ctlCustom, payload: payload}
}

// IsStart reports whether this is the Start control message.
func (c Ctl) IsStart() bool {
	return c.kind == ctlStart
}

// IsShutdown reports whether this is the Shutdown control message.
func (c Ctl) IsShutdown() bool {
	return c.kind == ctlShutdown
}

// Payload returns the Custom payload, or nil for Start/Shutdown.
func (c Ctl) Payload() any {
	return c.payload
}

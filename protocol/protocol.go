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
	"time"

	"github.com/nabbar/golib/runtime"
)

// Protocol is driven cooperatively and single-threaded: Run is handed
// whatever events the runtime collected since the previous call and
// returns the next time point at which it wants to run again. Run must
// not block for more than bounded CPU time; it owns no goroutine of its
// own.
type Protocol[R runtime.Runtime] interface {
	Run(rt R, events []runtime.Event) (NextWake, error)
}

// Drive runs one Poll/Run cycle: it blocks up to poll for the runtime's
// next batch of events (an empty batch after the deadline is still a
// valid, event-less Run), calls p.Run, and returns its NextWake. This is
// the minimal scheduler loop described by the runtime/protocol contract;
// callers that need multiple protocols sharing one runtime, or a custom
// sleep-until-NextWake policy, drive Poll/Run themselves instead.
func Drive[R runtime.Runtime](p Protocol[R], rt R, poll time.Duration) (NextWake, error) {
	events, err := rt.Poll(poll)
	if err != nil {
		return NextWake{}, err
	}

	return p.Run(rt, events)
}

// Loop calls Drive repeatedly until the Protocol reports Never (after
// processing a Shutdown control message) or Run returns an error.
func Loop[R runtime.Runtime](p Protocol[R], rt R, poll time.Duration) error {
	for {
		wake, err := Drive(p, rt, poll)
		if err != nil {
			return err
		}

		if wake.IsNever() {
			return nil
		}
	}
}

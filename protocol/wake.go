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

import "time"

// NextWake is a Protocol's answer to "when do you want to run again".
// The zero value is not meaningful on its own; build one with At or
// Never.
type NextWake struct {
	at    time.Time
	never bool
}

// At requests another Run no earlier than t.
func At(t time.Time) NextWake {
	return NextWake{at: t}
}

// Immediately requests another Run as soon as the scheduler can manage
// it, with no preferred delay.
func Immediately() NextWake {
	return NextWake{}
}

// Never is the sentinel a Protocol returns after Shutdown to report it
// has no further interest; the scheduler should stop calling Run.
func Never() NextWake {
	return NextWake{never: true}
}

// IsNever reports whether the Protocol reported no further interest.
func (n NextWake) IsNever() bool {
	return n.never
}

// Time returns the requested wake time. Meaningless if IsNever is true.
func (n NextWake) Time() time.Time {
	return n.at
}

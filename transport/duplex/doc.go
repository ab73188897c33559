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

// Package duplex builds a pair of bounded, single-producer/single-consumer
// byte-message queues crossed into two halves, so each half has an
// outbound and an inbound endpoint talking to the other. Capacity is fixed
// at construction; a half becomes "disconnected" once its counterpart is
// dropped, and that state propagates to the other half's next attempt.
//
// Go already provides a wait-free bounded SPSC primitive as a language
// feature - a buffered channel - so this package is a thin, explicitly
// non-blocking wrapper over a pair of them rather than a hand-rolled
// stamped-slot ring: TrySend/TryReceive use select/default instead of a
// custom atomic sequence-counter algorithm.
package duplex

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

package network

import "strconv"

// Number is a plain counter (packets, events, drops) formatted with decimal
// SI prefixes (K = 1000, M = 1000000, ...).
type Number uint64

func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

func (n Number) AsBytes() Bytes {
	return Bytes(n)
}

func (n Number) AsUint64() uint64 {
	return uint64(n)
}

func (n Number) AsFloat64() float64 {
	return float64(n)
}

// FormatUnitInt renders the number right-padded to 4 digits with a decimal
// SI-scaled unit suffix, e.g. "   1 K", " 999 K", "  10 K".
func (n Number) FormatUnitInt() string {
	return formatUnitInt(uint64(n), false)
}

// FormatUnitFloat renders the number with the given decimal precision and a
// decimal SI-scaled unit suffix. A precision of 0 delegates to FormatUnitInt.
func (n Number) FormatUnitFloat(prec int) string {
	return formatUnitFloat(uint64(n), prec, false)
}

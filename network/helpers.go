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

import (
	"fmt"
	"math"
)

const (
	_PowerUnit_  = 0
	_PowerKilo_  = 3
	_PowerMega_  = 6
	_PowerGiga_  = 9
	_PowerTera_  = 12
	_PowerPeta_  = 15
	_PowerExa_   = 18
	_PowerZetta_ = 21
	_PowerYotta_ = 24
)

// power2Unit maps a decimal power of ten to its SI prefix letter. Negative
// powers and the unit power itself return an empty prefix; powers at or
// beyond yotta saturate to "Y".
func power2Unit(power int) string {
	switch {
	case power < 0:
		return ""
	case power < _PowerKilo_:
		return ""
	case power < _PowerMega_:
		return "K"
	case power < _PowerGiga_:
		return "M"
	case power < _PowerTera_:
		return "G"
	case power < _PowerPeta_:
		return "T"
	case power < _PowerExa_:
		return "P"
	case power < _PowerZetta_:
		return "E"
	case power < _PowerYotta_:
		return "Z"
	default:
		return "Y"
	}
}

// scaleDecimal picks the largest power of 1000 that is still <= value and
// returns the unscaled value together with the unit letter for it.
func scaleDecimal(value uint64) (float64, string) {
	return scale(value, 1000, []string{"", "K", "M", "G", "T", "P", "E", "Z", "Y"})
}

// scaleBinary picks the largest power of 1024 that is still <= value and
// returns the unscaled value together with the unit suffix ("" or "xB") for it.
func scaleBinary(value uint64) (float64, string) {
	v, u := scale(value, 1024, []string{"", "K", "M", "G", "T", "P", "E", "Z", "Y"})
	if u != "" {
		u += "B"
	}
	return v, u
}

func scale(value uint64, base float64, units []string) (float64, string) {
	f := float64(value)
	idx := 0

	for idx < len(units)-1 && f >= base {
		f /= base
		idx++
	}

	return f, units[idx]
}

func formatUnitInt(value uint64, binary bool) string {
	f, unit := pickScale(value, binary)

	rounded := int64(math.Round(f))

	if unit == "" {
		return fmt.Sprintf("%4d", rounded)
	}

	return fmt.Sprintf("%4d %s", rounded, unit)
}

func formatUnitFloat(value uint64, prec int, binary bool) string {
	if prec <= 0 {
		return formatUnitInt(value, binary)
	}

	f, unit := pickScale(value, binary)

	if unit == "" {
		return fmt.Sprintf("%6.*f", prec, f)
	}

	return fmt.Sprintf("%6.*f %s", prec, f, unit)
}

func pickScale(value uint64, binary bool) (float64, string) {
	if binary {
		return scaleBinary(value)
	}

	return scaleDecimal(value)
}

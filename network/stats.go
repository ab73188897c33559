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
	"sort"
)

// Stats identifies one of the counters exposed by a stream, ring or socket:
// traffic volume, packet count, queue depth, drops and transport errors.
type Stats uint8

const (
	StatBytes Stats = iota + 1
	StatPackets
	StatFifo
	StatDrop
	StatErr
)

func (s Stats) String() string {
	switch s {
	case StatBytes:
		return "Traffic"
	case StatPackets:
		return "Packets"
	case StatFifo:
		return "Fifo"
	case StatDrop:
		return "Drop"
	case StatErr:
		return "Error"
	default:
		return ""
	}
}

// FormatUnitInt formats n using the unit convention appropriate for this
// stat: binary byte units for StatBytes, decimal units otherwise.
func (s Stats) FormatUnitInt(n Number) string {
	switch s {
	case StatBytes:
		return n.AsBytes().FormatUnitInt()
	case StatPackets, StatFifo, StatDrop, StatErr:
		return n.FormatUnitInt()
	default:
		return ""
	}
}

// FormatUnitFloat formats n with prec decimal places using the unit
// convention appropriate for this stat.
func (s Stats) FormatUnitFloat(n Number, prec int) string {
	switch s {
	case StatBytes:
		return n.AsBytes().FormatUnitFloat(prec)
	case StatPackets, StatFifo, StatDrop, StatErr:
		return n.FormatUnitFloat(prec)
	default:
		return ""
	}
}

// FormatUnit formats n using each stat's natural default: a 2-decimal float
// for traffic volume, integer scaling for everything else.
func (s Stats) FormatUnit(n Number) string {
	switch s {
	case StatBytes:
		return s.FormatUnitFloat(n, 2)
	case StatPackets, StatFifo, StatDrop, StatErr:
		return s.FormatUnitInt(n)
	default:
		return ""
	}
}

// FormatLabelUnit prefixes the formatted value with the stat's label,
// e.g. "Packets:   5 K".
func (s Stats) FormatLabelUnit(n Number) string {
	if s.String() == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", s, s.FormatUnit(n))
}

// FormatLabelUnitPadded is FormatLabelUnit with the label padded to a fixed
// column width so multiple stat lines align.
func (s Stats) FormatLabelUnitPadded(n Number) string {
	if s.String() == "" {
		return ""
	}

	return fmt.Sprintf("%-8s%s", s.String()+":", s.FormatUnit(n))
}

// ListStatsSort returns the defined Stats values as ints, ascending.
func ListStatsSort() []int {
	list := []int{
		int(StatBytes),
		int(StatPackets),
		int(StatFifo),
		int(StatDrop),
		int(StatErr),
	}

	sort.Ints(list)

	return list
}

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

// Package gre is a read-only view over a GRE (RFC 2784/2890) header,
// just far enough to reach the optional sequence number RIST's GRE
// encapsulation carries.
package gre

import "encoding/binary"

// fixedHeaderLen is the length of a GRE header with none of the
// checksum/key/sequence optional fields present.
const fixedHeaderLen = 4

// Packet is a zero-copy view over a GRE frame. The backing slice is not
// retained beyond what's needed to serve the accessor methods below.
type Packet struct {
	data []byte
}

// Parse validates data is at least long enough to hold a fixed GRE
// header and returns a Packet view over it. It does not copy data.
func Parse(data []byte) (Packet, error) {
	if len(data) < fixedHeaderLen {
		return Packet{}, ErrorPacketTooShort.Error()
	}
	return Packet{data: data}, nil
}

func checkBit(b byte, bit uint) bool {
	return b&(0x80>>bit) != 0
}

// HasChecksum reports whether the checksum/reserved1 field is present.
func (p Packet) HasChecksum() bool { return checkBit(p.data[0], 0) }

// HasKey reports whether the key field is present.
func (p Packet) HasKey() bool { return checkBit(p.data[0], 2) }

// HasSequence reports whether the sequence number field is present.
func (p Packet) HasSequence() bool { return checkBit(p.data[0], 3) }

// Version is the 3-bit GRE version field.
func (p Packet) Version() uint8 { return p.data[1] & 0x7 }

// Protocol is the encapsulated ethertype carried in the fixed header.
func (p Packet) Protocol() uint16 {
	return binary.BigEndian.Uint16(p.data[2:4])
}

func (p Packet) optFieldsOffset() int {
	offset := fixedHeaderLen
	if p.HasChecksum() {
		offset += 4
	}
	if p.HasKey() {
		offset += 4
	}
	return offset
}

// Key returns the key field and true if present, or false if the key bit
// is unset.
func (p Packet) Key() (uint32, bool, error) {
	if !p.HasKey() {
		return 0, false, nil
	}

	offset := fixedHeaderLen
	if p.HasChecksum() {
		offset += 4
	}

	if len(p.data) < offset+4 {
		return 0, false, ErrorFieldTruncated.Error()
	}

	return binary.BigEndian.Uint32(p.data[offset : offset+4]), true, nil
}

// SequenceNumber returns the sequence number field and true if present,
// or false if the sequence bit is unset - this is the value a reorder
// ring should key on for a GRE-encapsulated RIST stream.
func (p Packet) SequenceNumber() (uint32, bool, error) {
	if !p.HasSequence() {
		return 0, false, nil
	}

	offset := p.optFieldsOffset()

	if len(p.data) < offset+4 {
		return 0, false, ErrorFieldTruncated.Error()
	}

	return binary.BigEndian.Uint32(p.data[offset : offset+4]), true, nil
}

// Payload returns the encapsulated payload following the fixed header
// and whichever optional fields are present.
func (p Packet) Payload() ([]byte, error) {
	offset := p.optFieldsOffset()
	if p.HasSequence() {
		offset += 4
	}

	if len(p.data) < offset {
		return nil, ErrorFieldTruncated.Error()
	}

	return p.data[offset:], nil
}

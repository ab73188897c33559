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

// Package rtp is a read-only view over an RTP (RFC 3550) fixed header and
// payload, just far enough to reach the sequence number a reorder ring
// keys on.
package rtp

import "encoding/binary"

// headerLenMin is the length of a fixed RTP header with no CSRCs.
const headerLenMin = 12

// Packet is a zero-copy view over an RTP frame.
type Packet struct {
	data []byte
}

// Parse validates data is at least long enough to hold a fixed RTP
// header and returns a Packet view over it. It does not copy data.
func Parse(data []byte) (Packet, error) {
	if len(data) < headerLenMin {
		return Packet{}, ErrorPacketTooShort.Error()
	}
	return Packet{data: data}, nil
}

// Version is the RTP protocol version, almost always 2.
func (p Packet) Version() uint8 { return (p.data[0] & 0xc0) >> 6 }

// HasPadding reports whether the payload carries trailing padding.
func (p Packet) HasPadding() bool { return p.data[0]&0x20 != 0 }

// HasExtension reports whether a header extension follows the CSRC list.
func (p Packet) HasExtension() bool { return p.data[0]&0x10 != 0 }

// CSRCCount is the number of contributing source identifiers present.
func (p Packet) CSRCCount() uint8 { return p.data[0] & 0xf }

// PayloadType is the RTP payload type field.
func (p Packet) PayloadType() uint8 { return p.data[1] & 0x7f }

// SequenceNumber is the RTP sequence number - the value a reorder ring
// should key on.
func (p Packet) SequenceNumber() uint16 {
	return binary.BigEndian.Uint16(p.data[2:4])
}

// Timestamp is the RTP media timestamp.
func (p Packet) Timestamp() uint32 {
	return binary.BigEndian.Uint32(p.data[4:8])
}

// SSRC identifies the synchronization source for this stream.
func (p Packet) SSRC() uint32 {
	return binary.BigEndian.Uint32(p.data[8:12])
}

func (p Packet) csrcLen() int {
	return int(p.CSRCCount()) * 4
}

// CSRC returns the contributing source identifiers following the fixed
// header, in order.
func (p Packet) CSRC() []uint32 {
	n := int(p.CSRCCount())
	out := make([]uint32, 0, n)

	offset := headerLenMin
	for i := 0; i < n && offset+4 <= len(p.data); i++ {
		out = append(out, binary.BigEndian.Uint32(p.data[offset:offset+4]))
		offset += 4
	}

	return out
}

// extensionLen returns the length in bytes of the full extension field,
// or 0 if the extension bit is unset.
func (p Packet) extensionLen() (int, error) {
	if !p.HasExtension() {
		return 0, nil
	}

	offset := headerLenMin + p.csrcLen()
	if len(p.data) < offset+4 {
		return 0, ErrorFieldTruncated.Error()
	}

	// The extension length field counts 32-bit words, excluding the
	// 4-byte profile/length header itself.
	words := binary.BigEndian.Uint16(p.data[offset+2 : offset+4])
	return 4 + int(words)*4, nil
}

func (p Packet) paddingLen() (int, error) {
	if !p.HasPadding() {
		return 0, nil
	}
	if len(p.data) == 0 {
		return 0, ErrorFieldTruncated.Error()
	}

	l := int(p.data[len(p.data)-1])
	if l == 0 || l > len(p.data)-headerLenMin {
		return 0, ErrorInvalidPadding.Error()
	}

	return l, nil
}

// Payload returns the media payload, stripped of the CSRC list, any
// header extension, and any trailing padding.
func (p Packet) Payload() ([]byte, error) {
	ext, err := p.extensionLen()
	if err != nil {
		return nil, err
	}

	pad, err := p.paddingLen()
	if err != nil {
		return nil, err
	}

	offset := headerLenMin + p.csrcLen() + ext
	if offset+pad > len(p.data) {
		return nil, ErrorFieldTruncated.Error()
	}

	return p.data[offset : len(p.data)-pad], nil
}

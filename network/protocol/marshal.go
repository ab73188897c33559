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
	"bytes"
	"fmt"
)

func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = Parse(string(bytes.Trim(bytes.Trim(data, `'`), `"`)))
	return nil
}

func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	return p.UnmarshalText(data)
}

func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *NetworkProtocol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	*p = Parse(s)

	return nil
}

func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalTOML(data interface{}) error {
	if s, ok := data.(string); ok {
		*p = Parse(s)
	}

	return nil
}

/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package reg

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value type of a named register
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindString
	KindArray
)

var kindNames = map[Kind]string{
	KindNone:   "none",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindArray:  "array",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", k)
	}
	return name
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && k != KindNone {
			return k, nil
		}
	}
	return KindNone, ErrWrongKind{Kind: s}
}

// Access is the direction a register may be used in
type Access uint8

const (
	ReadOnly Access = iota + 1
	WriteOnly
	ReadWrite
)

func (a Access) Readable() bool {
	return a == ReadOnly || a == ReadWrite
}

func (a Access) Writable() bool {
	return a == WriteOnly || a == ReadWrite
}

// Value is the content of a register.
// Only the field selected by Kind is meaningful.
type Value struct {
	Kind  Kind    `json:"kind"`
	Int   int64   `json:"int,omitempty"`
	Float float64 `json:"float,omitempty"`
	Str   string  `json:"str,omitempty"`
	Array []int64 `json:"array,omitempty"`
}

func Int(v int64) *Value {
	return &Value{Kind: KindInt, Int: v}
}

func Float(v float64) *Value {
	return &Value{Kind: KindFloat, Float: v}
}

func String(v string) *Value {
	return &Value{Kind: KindString, Str: v}
}

func Array(v []int64) *Value {
	return &Value{Kind: KindArray, Array: v}
}

// AsInt converts the value to an integer. Floats are truncated,
// arrays yield their first element.
func (v *Value) AsInt() int64 {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return int64(v.Float)
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 0, 64)
		if err != nil {
			return 0
		}
		return i
	case KindArray:
		if len(v.Array) > 0 {
			return v.Array[0]
		}
	}
	return 0
}

func (v *Value) AsFloat() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.Int)
	case KindFloat:
		return v.Float
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	case KindArray:
		if len(v.Array) > 0 {
			return float64(v.Array[0])
		}
	}
	return 0
}

// AsArray returns the array contents, scalars become one element arrays
func (v *Value) AsArray() []int64 {
	switch v.Kind {
	case KindArray:
		return v.Array
	case KindInt, KindFloat:
		return []int64{v.AsInt()}
	}
	return []int64{}
}

func (v *Value) AsString() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindArray:
		items := make([]string, len(v.Array))
		for i, item := range v.Array {
			items[i] = strconv.FormatInt(item, 10)
		}
		return strings.Join(items, ",")
	}
	return ""
}

func (v *Value) String() string {
	return v.AsString()
}

// Truncate returns a copy of an array value holding at most count items.
// count <= 0 keeps everything.
func (v *Value) Truncate(count int) *Value {
	if v.Kind != KindArray || count <= 0 || count >= len(v.Array) {
		return v
	}
	array := make([]int64, count)
	copy(array, v.Array[:count])
	return Array(array)
}

// Window returns a copy of an array value holding at most count items starting at offset.
// count <= 0 takes everything from offset on, an offset past the end gives an empty array.
// Other kinds are returned as they are.
func (v *Value) Window(offset, count int) *Value {
	if v.Kind != KindArray || offset <= 0 {
		return v.Truncate(count)
	}
	if offset >= len(v.Array) {
		return Array([]int64{})
	}
	end := len(v.Array)
	if count > 0 && offset+count < end {
		end = offset + count
	}
	array := make([]int64, end-offset)
	copy(array, v.Array[offset:end])
	return Array(array)
}

// Parse builds a value of the given kind from its text form.
// Array items are comma separated.
func Parse(kind Kind, s string) (*Value, error) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
		if err != nil {
			return nil, ErrParse{Kind: kind, Text: s, Err: err}
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, ErrParse{Kind: kind, Text: s, Err: err}
		}
		return Float(f), nil
	case KindString:
		return String(s), nil
	case KindArray:
		array := []int64{}
		for _, item := range strings.Split(s, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			i, err := strconv.ParseInt(item, 0, 64)
			if err != nil {
				return nil, ErrParse{Kind: kind, Text: s, Err: err}
			}
			array = append(array, i)
		}
		return Array(array), nil
	}
	return nil, ErrWrongKind{Kind: kind.String()}
}

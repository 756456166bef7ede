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

package layers

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const (
	// RegLayerNum identifies the layer
	RegLayerNum = 2002
	// Op, Flags, Status, Kind 1 byte each, NameLen 2 bytes, Count 4 bytes, Offset 4 bytes
	regHeaderSize = 14
	// RegPageSize is the number of array items a link reads per request.
	// A page of int64 items fits into one RegLink frame.
	RegPageSize = 4096
)

type RegOpType uint8

const (
	RegOpGet RegOpType = 1
	RegOpPut RegOpType = 2
)

type RegStatus uint8

const (
	RegStatusOk       RegStatus = 0
	RegStatusError    RegStatus = 1
	RegStatusNotFound RegStatus = 2
)

const (
	regFlagWait  = 0x01
	regFlagValue = 0x02
)

// RegLayer is a get or put of one named register.
// Requests carry Name, Count and Offset (get) or Value and Wait (put).
// Responses repeat Op and Name and carry Status, Value (get) and Message.
type RegLayer struct {
	layers.BaseLayer
	Op      RegOpType
	Wait    bool
	Status  RegStatus
	Name    string
	Count   uint32 // 0 means all items of an array register
	Offset  uint32 // first array item to get
	Value   *reg.Value
	Message string
}

var RegLayerType = gopacket.RegisterLayerType(RegLayerNum,
	gopacket.LayerTypeMetadata{Name: "RegLayerType", Decoder: gopacket.DecodeFunc(DecodeRegLayer)})

// LayerType returns the type of the Reg layer in the layer catalog
func (r *RegLayer) LayerType() gopacket.LayerType {
	return RegLayerType
}

// Err converts a failed response status to an error
func (r *RegLayer) Err() error {
	if r.Status == RegStatusOk {
		return nil
	}
	if r.Message == "" {
		return errors.New("register operation failed")
	}
	return errors.New(r.Message)
}

func valueSize(v *reg.Value) int {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case reg.KindInt, reg.KindFloat:
		return 8
	case reg.KindString:
		return 4 + len(v.Str)
	case reg.KindArray:
		return 4 + 8*len(v.Array)
	}
	return 0
}

func (r *RegLayer) size() int {
	return regHeaderSize + len(r.Name) + valueSize(r.Value) + 2 + len(r.Message)
}

// Serialize writes the layer into buf which must be at least size() long
func (r *RegLayer) Serialize(buf []byte) {
	var flags uint8
	kind := reg.KindNone
	if r.Wait {
		flags |= regFlagWait
	}
	if r.Value != nil {
		flags |= regFlagValue
		kind = r.Value.Kind
	}
	buf[0] = uint8(r.Op)
	buf[1] = flags
	buf[2] = uint8(r.Status)
	buf[3] = uint8(kind)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(r.Name)))
	binary.LittleEndian.PutUint32(buf[6:10], r.Count)
	binary.LittleEndian.PutUint32(buf[10:14], r.Offset)
	offset := regHeaderSize
	offset += copy(buf[offset:], r.Name)

	if r.Value != nil {
		switch r.Value.Kind {
		case reg.KindInt:
			binary.LittleEndian.PutUint64(buf[offset:], uint64(r.Value.Int))
			offset += 8
		case reg.KindFloat:
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(r.Value.Float))
			offset += 8
		case reg.KindString:
			binary.LittleEndian.PutUint32(buf[offset:], uint32(len(r.Value.Str)))
			offset += 4
			offset += copy(buf[offset:], r.Value.Str)
		case reg.KindArray:
			binary.LittleEndian.PutUint32(buf[offset:], uint32(len(r.Value.Array)))
			offset += 4
			for _, item := range r.Value.Array {
				binary.LittleEndian.PutUint64(buf[offset:], uint64(item))
				offset += 8
			}
		}
	}

	binary.LittleEndian.PutUint16(buf[offset:], uint16(len(r.Message)))
	offset += 2
	copy(buf[offset:], r.Message)
}

// SerializeTo serializes the register operation into bytes and writes the bytes to the SerializeBuffer
func (r *RegLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if len(r.Name) > math.MaxUint16 || len(r.Message) > math.MaxUint16 {
		return ErrFrameTooLong{Size: r.size()}
	}
	bytes, err := b.PrependBytes(r.size())
	if err != nil {
		return err
	}
	r.Serialize(bytes)
	return nil
}

type regReader struct {
	data   []byte
	offset int
	err    error
}

func (rr *regReader) next(n int) []byte {
	if rr.err != nil {
		return nil
	}
	if n < 0 || rr.offset+n > len(rr.data) {
		rr.err = ErrTruncated{Layer: "Reg", Size: len(rr.data)}
		return nil
	}
	chunk := rr.data[rr.offset : rr.offset+n]
	rr.offset += n
	return chunk
}

func (rr *regReader) uint16() uint16 {
	if b := rr.next(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (rr *regReader) uint32() uint32 {
	if b := rr.next(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (rr *regReader) uint64() uint64 {
	if b := rr.next(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (rr *regReader) value(kind reg.Kind) *reg.Value {
	switch kind {
	case reg.KindInt:
		return reg.Int(int64(rr.uint64()))
	case reg.KindFloat:
		return reg.Float(math.Float64frombits(rr.uint64()))
	case reg.KindString:
		n := int(rr.uint32())
		return reg.String(string(rr.next(n)))
	case reg.KindArray:
		n := int(rr.uint32())
		if rr.err == nil && n > (len(rr.data)-rr.offset)/8 {
			rr.err = ErrTruncated{Layer: "Reg", Size: len(rr.data)}
			return nil
		}
		array := make([]int64, n)
		for i := range array {
			array[i] = int64(rr.uint64())
		}
		return reg.Array(array)
	}
	rr.err = reg.ErrWrongKind{Kind: kind.String()}
	return nil
}

func (r *RegLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < regHeaderSize {
		df.SetTruncated()
		return ErrTruncated{Layer: "Reg", Size: len(data)}
	}
	r.Op = RegOpType(data[0])
	flags := data[1]
	r.Wait = flags&regFlagWait != 0
	r.Status = RegStatus(data[2])
	kind := reg.Kind(data[3])
	nameLen := int(binary.LittleEndian.Uint16(data[4:6]))
	r.Count = binary.LittleEndian.Uint32(data[6:10])
	r.Offset = binary.LittleEndian.Uint32(data[10:14])

	rr := &regReader{data: data, offset: regHeaderSize}
	r.Name = string(rr.next(nameLen))
	r.Value = nil
	if flags&regFlagValue != 0 {
		r.Value = rr.value(kind)
	}
	msgLen := int(rr.uint16())
	r.Message = string(rr.next(msgLen))
	if rr.err != nil {
		df.SetTruncated()
		return rr.err
	}

	r.BaseLayer = layers.BaseLayer{
		Contents: data[:rr.offset],
		Payload:  []byte{},
	}
	return nil
}

func DecodeRegLayer(data []byte, p gopacket.PacketBuilder) error {
	r := &RegLayer{}
	err := r.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(r)
	return nil
}

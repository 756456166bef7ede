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
	"fmt"
	"hash/crc32"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-mcs/pkg/log"
)

const (
	// RegLinkLayerNum identifies the layer
	RegLinkLayerNum = 2001
	// RegLinkSync is a magic number that appears in the beginning of each RegLink frame
	RegLinkSync = 0x4D43
	// RegLinkHeaderSize Type, Sync, Seq, Len 2 bytes each
	RegLinkHeaderSize = 8
	// RegLinkCrcSize crc32 of header and payload in the end of each frame
	RegLinkCrcSize = 4
	// RegLinkMaxFrameSize fits a UDP datagram
	RegLinkMaxFrameSize = 65507
	RegLinkMaxPayloadSize = RegLinkMaxFrameSize - RegLinkHeaderSize - RegLinkCrcSize
)

type RegLinkType uint16

const (
	RegLinkTypeRequest  RegLinkType = 0x0201
	RegLinkTypeResponse RegLinkType = 0x0202
)

func (t RegLinkType) String() string {
	switch t {
	case RegLinkTypeRequest:
		return "Request"
	case RegLinkTypeResponse:
		return "Response"
	}
	return fmt.Sprintf("UnknownRegLinkType(0x%04x)", uint16(t))
}

// RegLinkLayer frames one named register operation.
//
//	0      2      4      6      8          8+Len   12+Len
//	| Type | Sync | Seq  | Len  | payload  | CRC32 |
//
// All words are little endian, Len is the payload length in bytes.
type RegLinkLayer struct {
	layers.BaseLayer
	Type RegLinkType
	Sync uint16
	Seq  uint16
	Len  uint16
	Crc  uint32
}

var RegLinkLayerType = gopacket.RegisterLayerType(RegLinkLayerNum,
	gopacket.LayerTypeMetadata{Name: "RegLinkLayerType", Decoder: gopacket.DecodeFunc(decodeRegLinkLayer)})

func (rl *RegLinkLayer) LayerType() gopacket.LayerType {
	return RegLinkLayerType
}

func (rl *RegLinkLayer) serializeHeader(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(rl.Type))
	binary.LittleEndian.PutUint16(buf[2:4], rl.Sync)
	binary.LittleEndian.PutUint16(buf[4:6], rl.Seq)
	binary.LittleEndian.PutUint16(buf[6:8], rl.Len)
}

// SerializeTo wraps the already serialized payload with the header and CRC.
// Len, Sync and Crc are always computed here.
func (rl *RegLinkLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payloadLen := len(b.Bytes())
	if payloadLen > RegLinkMaxPayloadSize {
		return ErrFrameTooLong{Size: payloadLen}
	}
	rl.Sync = RegLinkSync
	rl.Len = uint16(payloadLen)

	headerBytes, err := b.PrependBytes(RegLinkHeaderSize)
	if err != nil {
		return err
	}
	rl.serializeHeader(headerBytes)

	rl.Crc = crc32.ChecksumIEEE(b.Bytes())
	tailBytes, err := b.AppendBytes(RegLinkCrcSize)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(tailBytes, rl.Crc)
	return nil
}

// DecodeFromBytes attempts to decode the byte slice as a RegLink frame
func (rl *RegLinkLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < RegLinkHeaderSize+RegLinkCrcSize {
		df.SetTruncated()
		return ErrTruncated{Layer: "RegLink", Size: len(data)}
	}
	if sync := binary.LittleEndian.Uint16(data[2:4]); sync != RegLinkSync {
		return ErrWrongSync{Sync: sync}
	}

	rl.Type = RegLinkType(binary.LittleEndian.Uint16(data[0:2]))
	rl.Sync = binary.LittleEndian.Uint16(data[2:4])
	rl.Seq = binary.LittleEndian.Uint16(data[4:6])
	rl.Len = binary.LittleEndian.Uint16(data[6:8])

	end := RegLinkHeaderSize + int(rl.Len)
	if len(data) < end+RegLinkCrcSize {
		df.SetTruncated()
		return ErrTruncated{Layer: "RegLink", Size: len(data)}
	}
	rl.Crc = binary.LittleEndian.Uint32(data[end : end+RegLinkCrcSize])
	if crc := crc32.ChecksumIEEE(data[:end]); crc != rl.Crc {
		return ErrWrongCrc{Expected: rl.Crc, Actual: crc}
	}

	rl.BaseLayer = layers.BaseLayer{
		Contents: data[:RegLinkHeaderSize],
		Payload:  data[RegLinkHeaderSize:end],
	}
	return nil
}

func (rl *RegLinkLayer) NextLayerType() gopacket.LayerType {
	switch rl.Type {
	case RegLinkTypeRequest, RegLinkTypeResponse:
		return RegLayerType
	}
	return gopacket.LayerTypePayload
}

func decodeRegLinkLayer(data []byte, p gopacket.PacketBuilder) error {
	rl := &RegLinkLayer{}
	err := rl.DecodeFromBytes(data, p)
	if err != nil {
		log.Debug("Error while decoding reglink layer: %s", err)
		return err
	}
	p.AddLayer(rl)
	return p.NextDecoder(rl.NextLayerType())
}

// Encode serializes one register operation into a RegLink frame
func Encode(t RegLinkType, seq uint16, reg *RegLayer) ([]byte, error) {
	rl := &RegLinkLayer{Type: t, Seq: seq}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, rl, reg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a RegLink frame carrying a register operation
func Decode(data []byte) (*RegLinkLayer, *RegLayer, error) {
	packet := gopacket.NewPacket(data, RegLinkLayerType, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return nil, nil, errLayer.Error()
	}
	rlLayer := packet.Layer(RegLinkLayerType)
	regLayer := packet.Layer(RegLayerType)
	if rlLayer == nil || regLayer == nil {
		return nil, nil, ErrNoRegLayer{}
	}
	return rlLayer.(*RegLinkLayer), regLayer.(*RegLayer), nil
}

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

package channel

import (
	"fmt"
	"net"
	"sync"
	"time"

	"jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/layers"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

// Link is a control channel talking to a register gateway over UDP.
// One request is in flight at a time, responses are matched by sequence number.
type Link struct {
	mu      sync.Mutex
	conn    *net.UDPConn
	timeout time.Duration
	seq     uint16
	buffer  []byte
}

var _ ifc.ControlChannel = &Link{}

func NewLink(address string, port int, timeout time.Duration) (*Link, error) {
	log.Debug("Initializing register link to address: %s port: %d", address, port)
	udpAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", address, port))
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &Link{
		conn:    conn,
		timeout: timeout,
		buffer:  make([]byte, layers.RegLinkMaxFrameSize),
	}, nil
}

func (l *Link) Close() error {
	return l.conn.Close()
}

func (l *Link) nextSeq() uint16 {
	seq := l.seq
	l.seq++
	return seq
}

func (l *Link) exchange(req *layers.RegLayer) (*layers.RegLayer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.nextSeq()
	data, err := layers.Encode(layers.RegLinkTypeRequest, seq, req)
	if err != nil {
		return nil, err
	}
	if err := l.conn.SetDeadline(time.Now().Add(l.timeout)); err != nil {
		return nil, err
	}
	if _, err := l.conn.Write(data); err != nil {
		return nil, err
	}

	for {
		length, err := l.conn.Read(l.buffer)
		if err != nil {
			return nil, err
		}
		rl, rsp, err := layers.Decode(l.buffer[:length])
		if err != nil {
			log.Debug("Drop frame: %s", err)
			continue
		}
		if rl.Type != layers.RegLinkTypeResponse || rl.Seq != seq {
			log.Debug("Drop frame: type: %s seq: %d, waiting for seq: %d", rl.Type, rl.Seq, seq)
			continue
		}
		if rsp.Op != req.Op || rsp.Name != req.Name {
			return nil, ErrUnexpectedResponse{Name: req.Name, What: fmt.Sprintf("got %s", rsp.Name)}
		}
		return rsp, nil
	}
}

func responseErr(rsp *layers.RegLayer) error {
	if rsp.Status == layers.RegStatusNotFound {
		return ErrRegisterNotFound{Name: rsp.Name}
	}
	return rsp.Err()
}

func (l *Link) getPage(name string, offset, count int) (*reg.Value, error) {
	rsp, err := l.exchange(&layers.RegLayer{
		Op:     layers.RegOpGet,
		Name:   name,
		Count:  uint32(count),
		Offset: uint32(offset),
	})
	if err != nil {
		return nil, err
	}
	if err := responseErr(rsp); err != nil {
		return nil, err
	}
	if rsp.Value == nil {
		return nil, ErrUnexpectedResponse{Name: name, What: "no value"}
	}
	return rsp.Value, nil
}

// Get implements ControlChannel.
// Array registers are read in pages of layers.RegPageSize items.
func (l *Link) Get(name string, count int) (*reg.Value, error) {
	if count < 0 {
		count = 0
	}
	var bins []int64
	for offset := 0; ; {
		n := layers.RegPageSize
		if count > 0 && count-offset < n {
			n = count - offset
		}
		value, err := l.getPage(name, offset, n)
		if err != nil {
			return nil, ErrChannelIO{Op: OpGet, Name: name, Err: err}
		}
		if value.Kind != reg.KindArray {
			if offset > 0 {
				return nil, ErrChannelIO{Op: OpGet, Name: name, Err: ErrUnexpectedResponse{Name: name, What: "kind changed while paging"}}
			}
			return value, nil
		}
		bins = append(bins, value.Array...)
		offset += len(value.Array)
		if len(value.Array) < n || offset == count {
			break
		}
	}
	if bins == nil {
		bins = []int64{}
	}
	return reg.Array(bins), nil
}

// Put implements ControlChannel
func (l *Link) Put(name string, value *reg.Value, wait bool) error {
	rsp, err := l.exchange(&layers.RegLayer{
		Op:    layers.RegOpPut,
		Wait:  wait,
		Name:  name,
		Value: value,
	})
	if err != nil {
		return ErrChannelIO{Op: OpPut, Name: name, Err: err}
	}
	if err := responseErr(rsp); err != nil {
		return ErrChannelIO{Op: OpPut, Name: name, Err: err}
	}
	return nil
}

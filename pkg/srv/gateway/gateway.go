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

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/layers"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/srv"
)

// Gateway serves register get/put requests over UDP from a register store
type Gateway struct {
	srv.Server
	state      *channel.RegState
	instrument *Instrument
	conn       *net.UDPConn
}

// NewGateway ...
func NewGateway(ctx context.Context, cfg *config.Config, state *channel.RegState) (*Gateway, error) {
	log.Debug("Initializing register gateway with address: %s port: %d", cfg.ChannelConfig.Address, cfg.ChannelConfig.Port)

	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.ChannelConfig.Address, cfg.ChannelConfig.Port))
	if err != nil {
		return nil, err
	}

	return &Gateway{
		Server: srv.Server{
			Context: ctx,
			Config:  cfg,
			UDPAddr: uaddr,
			ChIn:    make(chan srv.InPacket),
			ChOut:   make(chan srv.OutPacket),
		},
		state:      state,
		instrument: NewInstrument(cfg.DeviceConfig, state),
	}, nil
}

// Instrument returns the simulated device behind the gateway
func (g *Gateway) Instrument() *Instrument {
	return g.instrument
}

// Listen binds the UDP socket. Run calls it if it was not called before.
func (g *Gateway) Listen() error {
	if g.conn != nil {
		return nil
	}
	conn, err := net.ListenUDP("udp", g.Server.UDPAddr)
	if err != nil {
		return err
	}
	g.conn = conn
	return nil
}

// LocalAddr is the address the gateway listens on
func (g *Gateway) LocalAddr() *net.UDPAddr {
	if g.conn == nil {
		return g.Server.UDPAddr
	}
	return g.conn.LocalAddr().(*net.UDPAddr)
}

func (g *Gateway) Run() error {
	if err := g.Listen(); err != nil {
		return err
	}
	log.Info("Starting register gateway: %s", g.LocalAddr())

	defer g.conn.Close()

	errChan := make(chan error, 1)

	// Read UDP packets from wire and put them to input queue
	go func() {
		buffer := make([]byte, layers.RegLinkMaxFrameSize)
		for {
			length, udpAddr, readErr := g.conn.ReadFromUDP(buffer)
			if readErr != nil {
				select {
				case errChan <- readErr:
				default:
				}
				return
			}
			data := make([]byte, length)
			copy(data, buffer[:length])

			captureInfo := gopacket.CaptureInfo{
				Length:        length,
				CaptureLength: length,
				Timestamp:     time.Now(),
				AncillaryData: []interface{}{udpAddr},
			}

			select {
			case g.ChIn <- srv.InPacket{Data: data, CaptureInfo: captureInfo}:
			case <-g.Context.Done():
				return
			}
		}
	}()

	// Read captured packets from input queue, handle requests and queue responses
	go func() {
		source := gopacket.NewPacketSource(g, layers.RegLinkLayerType)
		for packet := range source.Packets() {
			if errLayer := packet.ErrorLayer(); errLayer != nil {
				log.Debug("Drop packet: %s", errLayer.Error())
				continue
			}
			udpAddr, packetErr := srv.GetAddrPort(packet)
			if packetErr != nil {
				log.Error(packetErr.Error())
				continue
			}
			rlLayer := packet.Layer(layers.RegLinkLayerType)
			regLayer := packet.Layer(layers.RegLayerType)
			if rlLayer == nil || regLayer == nil {
				log.Debug("Drop packet from %s: no register operation", udpAddr)
				continue
			}
			rl := rlLayer.(*layers.RegLinkLayer)
			if rl.Type != layers.RegLinkTypeRequest {
				log.Debug("Drop packet from %s: type %s", udpAddr, rl.Type)
				continue
			}
			rsp := g.handle(regLayer.(*layers.RegLayer))
			data, err := layers.Encode(layers.RegLinkTypeResponse, rl.Seq, rsp)
			if err != nil {
				log.Error("Error while serializing response to %s: %s", udpAddr, err)
				data, err = layers.Encode(layers.RegLinkTypeResponse, rl.Seq, &layers.RegLayer{
					Op:      rsp.Op,
					Name:    rsp.Name,
					Status:  layers.RegStatusError,
					Message: err.Error(),
				})
				if err != nil {
					log.Error("Error while serializing error response to %s: %s", udpAddr, err)
					continue
				}
			}
			select {
			case g.ChOut <- srv.OutPacket{Data: data, UDPAddr: udpAddr}:
			case <-g.Context.Done():
				return
			}
		}
	}()

	// Read packets from output queue and send them to wire
	go func() {
		for {
			select {
			case <-g.Context.Done():
				return
			case outPacket := <-g.ChOut:
				_, sendErr := g.conn.WriteToUDP(outPacket.Data, outPacket.UDPAddr)
				if sendErr != nil {
					log.Error("Error while sending data to %s", outPacket.UDPAddr)
					select {
					case errChan <- sendErr:
					default:
					}
					return
				}
			}
		}
	}()

	select {
	case <-g.Context.Done():
		return g.Context.Err()
	case err := <-errChan:
		return err
	}
}

// handle executes one request against the register store and builds the response
func (g *Gateway) handle(req *layers.RegLayer) *layers.RegLayer {
	rsp := &layers.RegLayer{
		Op:   req.Op,
		Name: req.Name,
	}
	fail := func(err error) *layers.RegLayer {
		rsp.Status = layers.RegStatusError
		if errors.As(err, &channel.ErrRegisterNotFound{}) {
			rsp.Status = layers.RegStatusNotFound
		}
		rsp.Message = err.Error()
		return rsp
	}

	switch req.Op {
	case layers.RegOpGet:
		log.Debug("Get: %s offset: %d count: %d", req.Name, req.Offset, req.Count)
		value, err := g.state.GetReg(req.Name)
		if err != nil {
			return fail(err)
		}
		rsp.Value = value.Window(int(req.Offset), int(req.Count))
	case layers.RegOpPut:
		if req.Value == nil {
			return fail(srv.ErrUnknownOperation{What: "put without value"})
		}
		log.Debug("Put: %s = %s", req.Name, req.Value)
		if err := g.state.SetReg(req.Name, req.Value); err != nil {
			return fail(err)
		}
		if err := g.instrument.React(req.Name); err != nil {
			return fail(err)
		}
	default:
		return fail(srv.ErrUnknownOperation{What: fmt.Sprintf("register op %d", req.Op)})
	}
	rsp.Status = layers.RegStatusOk
	return rsp
}

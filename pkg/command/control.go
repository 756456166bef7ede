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

package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	chifc "jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/device/mcs"
	"jinr.ru/greenlab/go-mcs/pkg/device/scaler"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/srv/api"
	"jinr.ru/greenlab/go-mcs/pkg/srv/gateway"
)

// NewChannel opens the control channel selected by the config.
// The returned closer releases the database or the socket.
func NewChannel(cfg *config.Config) (chifc.ControlChannel, io.Closer, error) {
	switch cfg.ChannelConfig.Type {
	case config.ChannelTypeLocal:
		state, err := channel.NewRegState(cfg.ChannelConfig.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return state, state, nil
	case config.ChannelTypeLink:
		link, err := channel.NewLink(cfg.ChannelConfig.Address, cfg.ChannelConfig.Port, cfg.ChannelConfig.Timeout())
		if err != nil {
			return nil, nil, err
		}
		return link, link, nil
	}
	return nil, nil, ErrUnknownChannelType{Type: cfg.ChannelConfig.Type}
}

// NewController builds the MCS controller, with the scaler when its prefix is configured
func NewController(cfg *config.Config, ch chifc.ControlChannel) (*mcs.Device, error) {
	opts := []mcs.Option{mcs.WithSettleTime(cfg.DeviceConfig.SettleTime())}
	if cfg.DeviceConfig.ScalerPrefix != "" {
		opts = append(opts, mcs.WithScaler(scaler.NewDevice(cfg.DeviceConfig.ScalerPrefix, ch)))
	}
	return mcs.NewDevice(cfg.DeviceConfig.Prefix, cfg.DeviceConfig.NChannels, cfg.DeviceConfig.ClockRate, ch, opts...)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// StartApiServer serves the controller over HTTP until interrupted
func StartApiServer(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	ch, closer, err := NewChannel(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	regs, err := channel.NewInstrumented(ch, registry)
	if err != nil {
		return err
	}

	dev, err := NewController(cfg, regs)
	if err != nil {
		return err
	}

	s, err := api.NewApiServer(ctx, cfg, dev, regs, registry)
	if err != nil {
		return err
	}
	err = s.Run()
	if errors.Is(err, context.Canceled) {
		log.Info("API server stopped")
		return nil
	}
	return err
}

// StartGateway serves the register database over UDP until interrupted
func StartGateway(cfg *config.Config, seed bool) error {
	ctx, stop := signalContext()
	defer stop()

	state, err := channel.NewRegState(cfg.ChannelConfig.DBPath)
	if err != nil {
		return err
	}
	defer state.Close()

	g, err := gateway.NewGateway(ctx, cfg, state)
	if err != nil {
		return err
	}
	if seed {
		if err := g.Instrument().Seed(); err != nil {
			return err
		}
	}
	err = g.Run()
	if errors.Is(err, context.Canceled) {
		log.Info("Register gateway stopped")
		return nil
	}
	return err
}

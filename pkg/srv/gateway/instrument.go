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
	"fmt"
	"strings"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	"jinr.ru/greenlab/go-mcs/pkg/device/scaler"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const (
	SimModel    = "SIS3820"
	SimFirmware = "0x0000"
)

// Instrument makes the register store behave like an MCS:
// trigger registers change the run state the way the hardware does.
type Instrument struct {
	prefix       string
	scalerPrefix string
	nchan        int
	state        *channel.RegState
}

func NewInstrument(cfg *config.DeviceConfig, state *channel.RegState) *Instrument {
	i := &Instrument{
		prefix: device.NormalizePrefix(cfg.Prefix),
		nchan:  cfg.NChannels,
		state:  state,
	}
	if cfg.ScalerPrefix != "" {
		i.scalerPrefix = device.NormalizePrefix(cfg.ScalerPrefix)
	}
	return i
}

func (i *Instrument) set(alias device.RegAlias, value *reg.Value) error {
	return i.state.SetReg(device.RegMap[alias].Name(i.prefix), value)
}

// Seed writes the power-on register values
func (i *Instrument) Seed() error {
	log.Info("Seeding registers of %s with %d channels", i.prefix, i.nchan)
	defaults := []struct {
		alias device.RegAlias
		value *reg.Value
	}{
		{device.RegChannelAdvance, reg.Int(device.ChannelAdvanceInternal)},
		{device.RegPrescale, reg.Int(1)},
		{device.RegPresetReal, reg.Float(0)},
		{device.RegElapsedReal, reg.Float(0)},
		{device.RegDwell, reg.Float(0)},
		{device.RegAcquiring, reg.Int(0)},
		{device.RegNuseAll, reg.Int(0)},
		{device.RegCurrentChannel, reg.Int(0)},
		{device.RegInitialChannelAdvance, reg.Int(0)},
		{device.RegChannel1Source, reg.Int(0)},
		{device.RegModel, reg.String(SimModel)},
		{device.RegFirmware, reg.String(SimFirmware)},
	}
	for _, d := range defaults {
		if err := i.set(d.alias, d.value); err != nil {
			return err
		}
	}
	if err := i.erase(); err != nil {
		return err
	}
	if i.scalerPrefix == "" {
		return nil
	}
	if err := i.state.SetReg(i.scalerPrefix+scaler.RegCountMode, reg.Int(scaler.CountModeAuto)); err != nil {
		return err
	}
	for n := 1; n <= i.nchan; n++ {
		label := fmt.Sprintf("Channel %d", n)
		if n == 1 {
			label = "Clock"
		}
		if err := i.state.SetReg(i.scalerPrefix+scaler.LabelSuffix(n), reg.String(label)); err != nil {
			return err
		}
	}
	return nil
}

func (i *Instrument) erase() error {
	for n := 1; n <= i.nchan; n++ {
		if err := i.state.SetReg(i.prefix+device.McaSuffix(n), reg.Array([]int64{})); err != nil {
			return err
		}
		if err := i.state.SetReg(i.prefix+device.McaPointCountSuffix(n), reg.Int(0)); err != nil {
			return err
		}
	}
	if err := i.set(device.RegElapsedReal, reg.Float(0)); err != nil {
		return err
	}
	return i.set(device.RegCurrentChannel, reg.Int(0))
}

func (i *Instrument) advance() error {
	current, err := i.state.GetReg(device.RegMap[device.RegCurrentChannel].Name(i.prefix))
	if err != nil {
		return err
	}
	return i.set(device.RegCurrentChannel, reg.Int(current.AsInt()+1))
}

// React applies the side effects of a write to the named register.
// Registers of other devices are left alone.
func (i *Instrument) React(name string) error {
	if !strings.HasPrefix(name, i.prefix) {
		return nil
	}
	alias, _, ok := device.LookupRegister(strings.TrimPrefix(name, i.prefix))
	if !ok {
		return nil
	}
	switch alias {
	case device.RegEraseStart:
		if err := i.erase(); err != nil {
			return err
		}
		return i.set(device.RegAcquiring, reg.Int(1))
	case device.RegStartAll:
		return i.set(device.RegAcquiring, reg.Int(1))
	case device.RegStopAll:
		return i.set(device.RegAcquiring, reg.Int(0))
	case device.RegEraseAll:
		return i.erase()
	case device.RegSoftwareChannelAdvance:
		return i.advance()
	}
	return nil
}

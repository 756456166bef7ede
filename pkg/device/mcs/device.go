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

package mcs

import (
	"time"

	chifc "jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device/mca"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const (
	DefaultSettleTime = 10 * time.Millisecond
)

// Device controls a SIS38xx multichannel scaler.
// It keeps no acquisition state of its own: mode and run state
// live in the device registers and are read back when needed.
type Device struct {
	prefix     string
	nchan      int
	clockRate  float64 // MHz
	settleTime time.Duration
	ch         chifc.ControlChannel
	scaler     deviceifc.Scaler
	mcas       []deviceifc.Analyzer
}

var _ deviceifc.MCS = &Device{}

type Option func(d *Device)

// WithScaler attaches the companion scaler
func WithScaler(s deviceifc.Scaler) Option {
	return func(d *Device) {
		d.scaler = s
	}
}

// WithSettleTime sets the pause before a batch readout
func WithSettleTime(t time.Duration) Option {
	return func(d *Device) {
		d.settleTime = t
	}
}

// WithAnalyzers replaces the per-channel histogram readers.
// The slice must hold one analyzer per channel.
func WithAnalyzers(mcas []deviceifc.Analyzer) Option {
	return func(d *Device) {
		d.mcas = mcas
	}
}

// NewDevice ...
func NewDevice(prefix string, nchan int, clockRate float64, ch chifc.ControlChannel, opts ...Option) (*Device, error) {
	if nchan <= 0 {
		return nil, ErrInvalidChannelCount{NChannels: nchan}
	}
	if clockRate <= 0 {
		return nil, ErrInvalidClockRate{ClockRate: clockRate}
	}
	d := &Device{
		prefix:     device.NormalizePrefix(prefix),
		nchan:      nchan,
		clockRate:  clockRate,
		settleTime: DefaultSettleTime,
		ch:         ch,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.mcas == nil {
		d.mcas = make([]deviceifc.Analyzer, nchan)
		for i := 0; i < nchan; i++ {
			d.mcas[i] = mca.NewDevice(d.prefix, i+1, ch)
		}
	}
	if len(d.mcas) != nchan {
		return nil, ErrInvalidChannelCount{NChannels: len(d.mcas)}
	}
	return d, nil
}

// GetPrefix ...
func (d *Device) GetPrefix() string {
	return d.prefix
}

// NChannels ...
func (d *Device) NChannels() int {
	return d.nchan
}

// ClockRate ...
func (d *Device) ClockRate() float64 {
	return d.clockRate
}

func (d *Device) put(alias device.RegAlias, value *reg.Value) error {
	name := device.RegMap[alias].Name(d.prefix)
	log.Debug("Writing register: %s = %s", name, value)
	return d.ch.Put(name, value, false)
}

func (d *Device) get(alias device.RegAlias) (*reg.Value, error) {
	return d.ch.Get(device.RegMap[alias].Name(d.prefix), 0)
}

func (d *Device) trigger(alias device.RegAlias) error {
	return d.put(alias, reg.Int(device.TriggerValue))
}

func (d *Device) oneShot() error {
	if d.scaler == nil {
		return nil
	}
	return d.scaler.OneShotMode()
}

// SetExternalMode switches channel advance to the external input.
// The channel advance source is written first so that the scaler and
// the optional registers are set up for the selected mode.
func (d *Device) SetExternalMode(m deviceifc.ExternalMode) error {
	log.Info("MCS %s: external mode", d.prefix)
	if err := d.put(device.RegChannelAdvance, reg.Int(device.ChannelAdvanceExternal)); err != nil {
		return err
	}
	if err := d.oneShot(); err != nil {
		return err
	}
	if m.PresetRealTime != nil {
		if err := d.put(device.RegPresetReal, reg.Float(*m.PresetRealTime)); err != nil {
			return err
		}
	}
	if m.Prescale != nil {
		if err := d.put(device.RegPrescale, reg.Int(int64(*m.Prescale))); err != nil {
			return err
		}
	}
	if m.InitialAdvance != nil {
		if err := d.put(device.RegInitialChannelAdvanceExt, reg.Int(int64(*m.InitialAdvance))); err != nil {
			return err
		}
	}
	return nil
}

// SetInternalMode switches channel advance to the internal clock
func (d *Device) SetInternalMode(prescale *int) error {
	log.Info("MCS %s: internal mode", d.prefix)
	if err := d.put(device.RegChannelAdvance, reg.Int(device.ChannelAdvanceInternal)); err != nil {
		return err
	}
	if err := d.oneShot(); err != nil {
		return err
	}
	if prescale != nil {
		return d.put(device.RegPrescale, reg.Int(int64(*prescale)))
	}
	return nil
}

// Mode reads the channel advance source back from the device
func (d *Device) Mode() (deviceifc.Mode, error) {
	value, err := d.get(device.RegChannelAdvance)
	if err != nil {
		return deviceifc.ModeInternal, err
	}
	switch value.AsInt() {
	case device.ChannelAdvanceInternal:
		return deviceifc.ModeInternal, nil
	case device.ChannelAdvanceExternal:
		return deviceifc.ModeExternal, nil
	}
	return deviceifc.ModeInternal, ErrUnknownMode{Value: value.AsInt()}
}

func (d *Device) SetPresetRealTime(val float64) error {
	return d.put(device.RegPresetReal, reg.Float(val))
}

func (d *Device) SetDwellTime(val float64) error {
	return d.put(device.RegDwell, reg.Float(val))
}

// SetAutoCountMode does nothing without a scaler
func (d *Device) SetAutoCountMode() error {
	if d.scaler == nil {
		return nil
	}
	return d.scaler.AutoCountMode()
}

// Start erases and starts acquisition with a single write.
// The scaler is put to one-shot mode before that.
func (d *Device) Start() error {
	log.Info("MCS %s: erase and start", d.prefix)
	if err := d.oneShot(); err != nil {
		return err
	}
	return d.trigger(device.RegEraseStart)
}

func (d *Device) Stop() error {
	log.Info("MCS %s: stop", d.prefix)
	return d.trigger(device.RegStopAll)
}

// Erase clears the accumulated data, acquisition is not started
func (d *Device) Erase() error {
	log.Info("MCS %s: erase", d.prefix)
	return d.trigger(device.RegEraseAll)
}

// SoftwareAdvance moves to the next time bin
func (d *Device) SoftwareAdvance() error {
	return d.trigger(device.RegSoftwareChannelAdvance)
}

// Status ...
func (d *Device) Status() (*deviceifc.Status, error) {
	status := &deviceifc.Status{}
	acquiring, err := d.get(device.RegAcquiring)
	if err != nil {
		return nil, err
	}
	status.Acquiring = acquiring.AsInt() != 0
	elapsed, err := d.get(device.RegElapsedReal)
	if err != nil {
		return nil, err
	}
	status.ElapsedReal = elapsed.AsFloat()
	current, err := d.get(device.RegCurrentChannel)
	if err != nil {
		return nil, err
	}
	status.CurrentChannel = int(current.AsInt())
	model, err := d.get(device.RegModel)
	if err != nil {
		return nil, err
	}
	status.Model = model.AsString()
	firmware, err := d.get(device.RegFirmware)
	if err != nil {
		return nil, err
	}
	status.Firmware = firmware.AsString()
	return status, nil
}

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

package scaler

import (
	"fmt"

	chifc "jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const (
	RegCountMode = "CONT"

	CountModeOneShot int64 = 0
	CountModeAuto    int64 = 1
)

// LabelSuffix is the name register of channel n
func LabelSuffix(n int) string {
	return fmt.Sprintf("NM%d", n)
}

// CountSuffix is the counter register of channel n
func CountSuffix(n int) string {
	return fmt.Sprintf("S%d", n)
}

type Device struct {
	prefix string
	ch     chifc.ControlChannel
}

var _ deviceifc.Scaler = &Device{}

// NewDevice ...
func NewDevice(prefix string, ch chifc.ControlChannel) *Device {
	return &Device{
		prefix: device.NormalizePrefix(prefix),
		ch:     ch,
	}
}

// GetPrefix ...
func (d *Device) GetPrefix() string {
	return d.prefix
}

// OneShotMode makes the scaler count once per start
func (d *Device) OneShotMode() error {
	log.Debug("Scaler %s: one-shot mode", d.prefix)
	return d.ch.Put(d.prefix+RegCountMode, reg.Int(CountModeOneShot), false)
}

// AutoCountMode makes the scaler count continuously
func (d *Device) AutoCountMode() error {
	log.Debug("Scaler %s: auto-count mode", d.prefix)
	return d.ch.Put(d.prefix+RegCountMode, reg.Int(CountModeAuto), false)
}

// Label ...
func (d *Device) Label(n int) (string, error) {
	value, err := d.ch.Get(d.prefix+LabelSuffix(n), 0)
	if err != nil {
		return "", err
	}
	return value.AsString(), nil
}

// Address ...
func (d *Device) Address(n int) string {
	return d.prefix + CountSuffix(n)
}

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

package mca

import (
	chifc "jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
)

// Device reads one histogram record of the MCS
type Device struct {
	name string
	nord string
	ch   chifc.ControlChannel
}

var _ deviceifc.Analyzer = &Device{}

// NewDevice creates the analyzer of channel n of the MCS with the given prefix
func NewDevice(prefix string, n int, ch chifc.ControlChannel) *Device {
	prefix = device.NormalizePrefix(prefix)
	return &Device{
		name: prefix + device.McaSuffix(n),
		nord: prefix + device.McaPointCountSuffix(n),
		ch:   ch,
	}
}

// GetName ...
func (d *Device) GetName() string {
	return d.name
}

// Read ...
func (d *Device) Read(count int) ([]int64, error) {
	value, err := d.ch.Get(d.name, count)
	if err != nil {
		return nil, err
	}
	bins := value.AsArray()
	if count > 0 && len(bins) > count {
		bins = bins[:count]
	}
	return bins, nil
}

// PointCount ...
func (d *Device) PointCount() (int, error) {
	value, err := d.ch.Get(d.nord, 0)
	if err != nil {
		return 0, err
	}
	return int(value.AsInt()), nil
}

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
	"strings"

	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

func lookup(cfg *config.Config, name string) (device.Register, bool) {
	_, r, ok := device.LookupRegister(strings.TrimPrefix(name, device.NormalizePrefix(cfg.DeviceConfig.Prefix)))
	return r, ok
}

// RegName expands a register suffix of the schema to the full name for the configured device.
// Other names are used as they are.
func RegName(cfg *config.Config, name string) string {
	if _, _, ok := device.LookupRegister(name); ok {
		return device.NormalizePrefix(cfg.DeviceConfig.Prefix) + name
	}
	return name
}

// RegGet reads one register through the configured channel without the API server
func RegGet(cfg *config.Config, name string, count int) (*reg.Value, error) {
	ch, closer, err := NewChannel(cfg)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return ch.Get(RegName(cfg, name), count)
}

// RegSet writes one register through the configured channel without the API server.
// Without an explicit kind the kind from the register schema is used.
func RegSet(cfg *config.Config, name, kind, value string, wait bool) error {
	var k reg.Kind
	if kind != "" {
		parsed, err := reg.ParseKind(kind)
		if err != nil {
			return err
		}
		k = parsed
	} else if r, ok := lookup(cfg, name); ok {
		k = r.Kind
	} else {
		return ErrKindRequired{Name: name}
	}
	v, err := reg.Parse(k, value)
	if err != nil {
		return err
	}

	ch, closer, err := NewChannel(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	return ch.Put(RegName(cfg, name), v, wait)
}

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

package ifc

import (
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

// ControlChannel reads and writes named remote registers.
// Names are full register names, i.e. device prefix + suffix.
type ControlChannel interface {
	// Get returns the register value. For array registers
	// count > 0 limits the number of items, count <= 0 returns all of them.
	Get(name string, count int) (*reg.Value, error)
	// Put writes the register. With wait the call returns
	// after the write has been processed by the device.
	Put(name string, value *reg.Value, wait bool) error
}

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
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/srv/api"
)

// ApiClient talks to the control API server
type ApiClient interface {
	RegRead(name string, count int) (*api.Register, error)
	RegWrite(name, kind, value string, wait bool) error

	Mode() (string, error)
	SetExternalMode(m deviceifc.ExternalMode) error
	SetInternalMode(prescale *int) error
	SetPresetRealTime(val float64) error
	SetDwellTime(val float64) error
	SetAutoCountMode() error

	// Acquisition is one of start, stop, erase, advance
	Acquisition(action string) error
	Status() (*deviceifc.Status, error)

	ReadChannel(n, count int) (*api.Record, error)
	Export(request *api.ExportRequest) (*api.ExportResponse, error)
}

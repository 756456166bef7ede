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

// Scaler is the counting device that accompanies the MCS.
// It names the channels and switches between one-shot and auto-count.
type Scaler interface {
	OneShotMode() error
	AutoCountMode() error
	// Label returns the name of channel n, counting from 1
	Label(n int) (string, error)
	// Address returns the register name of the counter of channel n
	Address(n int) string
}

// Analyzer is the histogram memory of one MCS channel
type Analyzer interface {
	// Read returns up to count bins, count <= 0 means all bins
	Read(count int) ([]int64, error)
	// PointCount returns the number of valid bins
	PointCount() (int, error)
}

// MCS is the multichannel scaler controller
type MCS interface {
	GetPrefix() string
	NChannels() int

	Mode() (Mode, error)
	Status() (*Status, error)

	SetExternalMode(m ExternalMode) error
	SetInternalMode(prescale *int) error
	SetPresetRealTime(val float64) error
	SetDwellTime(val float64) error
	SetAutoCountMode() error

	Start() error
	Stop() error
	Erase() error
	SoftwareAdvance() error

	ChannelPointCount(n int) (int, error)
	ReadChannel(n, count int) ([]int64, error)
	Export(filename string, opts ExportOptions) (*ExportResult, error)
}

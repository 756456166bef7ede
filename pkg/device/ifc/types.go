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
	"fmt"
)

type Mode int

const (
	ModeInternal Mode = iota
	ModeExternal
)

func (m Mode) String() string {
	switch m {
	case ModeInternal:
		return "internal"
	case ModeExternal:
		return "external"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ExternalMode holds the optional writes done when switching to external
// channel advance. A nil field is not written.
type ExternalMode struct {
	InitialAdvance *int     `json:"initialAdvance"`
	PresetRealTime *float64 `json:"presetRealTime"`
	Prescale       *int     `json:"prescale"`
}

// NewExternalMode returns the default settings:
// initial advance 0, preset real time 0, prescale 1.
func NewExternalMode() ExternalMode {
	return ExternalMode{
		InitialAdvance: IntPtr(0),
		PresetRealTime: FloatPtr(0),
		Prescale:       IntPtr(1),
	}
}

type Status struct {
	Acquiring      bool    `json:"acquiring"`
	ElapsedReal    float64 `json:"elapsedReal"`
	CurrentChannel int     `json:"currentChannel"`
	Model          string  `json:"model"`
	Firmware       string  `json:"firmware"`
}

type ExportOptions struct {
	// Channels to export counting from 1, empty means all
	Channels []int `json:"channels,omitempty"`
	// IgnorePrefix skips channels whose scaler label starts with it, empty disables
	IgnorePrefix string `json:"ignorePrefix,omitempty"`
	// MaxPoints limits the number of rows, 0 means all
	MaxPoints int `json:"maxPoints,omitempty"`
}

type ExportResult struct {
	File      string   `json:"file"`
	Rows      int      `json:"rows"`
	Columns   int      `json:"columns"`
	Labels    []string `json:"labels"`
	Addresses []string `json:"addresses"`
	// Degraded is set when the channel records could not be assembled
	// and placeholder data was written instead
	Degraded bool `json:"degraded"`
}

func IntPtr(v int) *int {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}

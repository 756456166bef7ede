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
	"fmt"
)

type ErrInvalidClockRate struct {
	ClockRate float64
}

func (e ErrInvalidClockRate) Error() string {
	return fmt.Sprintf("Invalid clock rate: %g MHz. Must be positive", e.ClockRate)
}

type ErrInvalidChannelCount struct {
	NChannels int
}

func (e ErrInvalidChannelCount) Error() string {
	return fmt.Sprintf("Invalid number of channels: %d", e.NChannels)
}

// ErrUnknownMode returned when the channel advance register holds an unexpected value
type ErrUnknownMode struct {
	Value int64
}

func (e ErrUnknownMode) Error() string {
	return fmt.Sprintf("Unknown channel advance value: %d", e.Value)
}

type ErrChannelOutOfRange struct {
	Channel   int
	NChannels int
}

func (e ErrChannelOutOfRange) Error() string {
	return fmt.Sprintf("Channel %d out of range 1..%d", e.Channel, e.NChannels)
}

// ErrInconsistentRecords returned when channel records differ in length
type ErrInconsistentRecords struct {
	Lengths []int
}

func (e ErrInconsistentRecords) Error() string {
	return fmt.Sprintf("Channel records have different lengths: %v", e.Lengths)
}

// ErrNoChannels returned when no channel is left for export
type ErrNoChannels struct{}

func (e ErrNoChannels) Error() string {
	return "No channels selected for export"
}

// ErrExportFile wraps failures to create or write the export file
type ErrExportFile struct {
	Path string
	Err  error
}

func (e ErrExportFile) Error() string {
	return fmt.Sprintf("Error while writing export file %s: %s", e.Path, e.Err)
}

func (e ErrExportFile) Unwrap() error {
	return e.Err
}

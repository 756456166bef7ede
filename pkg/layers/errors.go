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

package layers

import (
	"fmt"
)

type ErrTruncated struct {
	Layer string
	Size  int
}

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("%s layer truncated: %d bytes", e.Layer, e.Size)
}

type ErrWrongSync struct {
	Sync uint16
}

func (e ErrWrongSync) Error() string {
	return fmt.Sprintf("Wrong RegLink sync 0x%04x. Must be 0x%04x", e.Sync, RegLinkSync)
}

type ErrWrongCrc struct {
	Expected uint32
	Actual   uint32
}

func (e ErrWrongCrc) Error() string {
	return fmt.Sprintf("Wrong RegLink CRC: frame says 0x%08x, computed 0x%08x", e.Expected, e.Actual)
}

type ErrFrameTooLong struct {
	Size int
}

func (e ErrFrameTooLong) Error() string {
	return fmt.Sprintf("RegLink payload too long: %d bytes", e.Size)
}

// ErrNoRegLayer returned when a frame decodes but carries no register operation
type ErrNoRegLayer struct{}

func (e ErrNoRegLayer) Error() string {
	return "RegLink frame carries no register operation"
}

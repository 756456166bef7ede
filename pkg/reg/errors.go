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

package reg

import (
	"fmt"
)

// ErrWrongKind returned for unknown register value kinds
type ErrWrongKind struct {
	Kind string
}

func (e ErrWrongKind) Error() string {
	return fmt.Sprintf("Wrong value kind: %s. Must be one of int, float, string, array", e.Kind)
}

// ErrParse returned when text can not be converted to a register value
type ErrParse struct {
	Kind Kind
	Text string
	Err  error
}

func (e ErrParse) Error() string {
	return fmt.Sprintf("Can not parse %q as %s: %s", e.Text, e.Kind, e.Err)
}

func (e ErrParse) Unwrap() error {
	return e.Err
}

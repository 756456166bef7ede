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
	"fmt"
)

// ErrApi returned when the API server responds with a non OK status
type ErrApi struct {
	Status  string
	Message string
}

func (e ErrApi) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

type ErrUnknownChannelType struct {
	Type string
}

func (e ErrUnknownChannelType) Error() string {
	return fmt.Sprintf("Unknown channel type: %s", e.Type)
}

// ErrKindRequired returned when writing a register outside of the schema without a value kind
type ErrKindRequired struct {
	Name string
}

func (e ErrKindRequired) Error() string {
	return fmt.Sprintf("Register %s is not in the schema, value kind must be given", e.Name)
}

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

package channel

import (
	"fmt"
)

const (
	OpGet = "get"
	OpPut = "put"
)

// ErrChannelIO wraps any failure of a register get or put
type ErrChannelIO struct {
	Op   string
	Name string
	Err  error
}

func (e ErrChannelIO) Error() string {
	return fmt.Sprintf("Register %s %s failed: %s", e.Op, e.Name, e.Err)
}

func (e ErrChannelIO) Unwrap() error {
	return e.Err
}

// ErrRegisterNotFound returned when the register has never been written
type ErrRegisterNotFound struct {
	Name string
}

func (e ErrRegisterNotFound) Error() string {
	return fmt.Sprintf("Register not found: %s", e.Name)
}

// ErrBucketNotFound returned when the register database is not initialized
type ErrBucketNotFound struct {
	Bucket string
}

func (e ErrBucketNotFound) Error() string {
	return fmt.Sprintf("Bucket not found: %s", e.Bucket)
}

// ErrUnexpectedResponse returned by the link when a response does not match the request
type ErrUnexpectedResponse struct {
	Name string
	What string
}

func (e ErrUnexpectedResponse) Error() string {
	return fmt.Sprintf("Unexpected response for register %s: %s", e.Name, e.What)
}

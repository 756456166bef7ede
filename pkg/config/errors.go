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

package config

import (
	"fmt"
)

// ErrConfigFileExists returned when trying to persist config over an existing file
type ErrConfigFileExists struct {
	Path string
}

func (e ErrConfigFileExists) Error() string {
	return fmt.Sprintf("Config file already exists: %s", e.Path)
}

// ErrConfigParse returned when the config file is not valid YAML
type ErrConfigParse struct {
	Path string
	Err  error
}

func (e ErrConfigParse) Error() string {
	return fmt.Sprintf("Error while parsing config file %s: %s", e.Path, e.Err)
}

func (e ErrConfigParse) Unwrap() error {
	return e.Err
}

// ErrInvalidValue returned by Validate
type ErrInvalidValue struct {
	Field string
	What  string
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("Invalid config value %s: %s", e.Field, e.What)
}

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

package control

import (
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
)

func NewAcqCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:       "acq start|stop|erase|advance",
		Short:     "Start/stop/erase acquisition or advance to the next channel",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"start", "stop", "erase", "advance"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).Acquisition(args[0])
		},
	}
	return cmd
}

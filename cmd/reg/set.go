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
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
)

func NewSetCommand() *cobra.Command {
	var name, kind, value string
	var wait bool
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:     "set",
		Aliases: []string{"write"},
		Short:   "Set register value",
		Example: "go-mcs reg set --name Prescale --value 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.RegSet(cfg, name, kind, value, wait)
		},
	}
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register suffix from the schema or full register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().StringVar(&value, ValueOptionName, "", "Register value")
	cmd.MarkFlagRequired(ValueOptionName)
	cmd.Flags().StringVar(&kind, KindOptionName, "", "Value kind: int, float, string, array. Defaults to the schema kind")
	cmd.Flags().BoolVar(&wait, WaitOptionName, false, "Wait for the write to complete")
	return cmd
}

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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
)

func NewGetCommand() *cobra.Command {
	var name string
	var count int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"read"},
		Short:   "Get register value",
		Example: "go-mcs reg get --name ChannelAdvance",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := command.RegGet(cfg, name, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", command.RegName(cfg, name), value)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register suffix from the schema or full register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().IntVar(&count, CountOptionName, 0, "Number of array elements to read, 0 means all")
	return cmd
}

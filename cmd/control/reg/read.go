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

func NewReadCommand() *cobra.Command {
	var name string
	var count int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read value from register",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			r, err := apiClient.RegRead(command.RegName(cfg, name), count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Register state: %s = %s\n", r.Name, r.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, NameOptionName, "", "Register suffix from the schema or full register name")
	cmd.MarkFlagRequired(NameOptionName)
	cmd.Flags().IntVar(&count, CountOptionName, 0, "Number of array elements to read, 0 means all")
	return cmd
}

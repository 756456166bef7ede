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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
)

func NewMcaCommand() *cobra.Command {
	var count int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "mca CHANNEL",
		Short: "Print the record of a channel counting from 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			record, err := command.NewApiClient(cfg).ReadChannel(n, count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# channel %d, %d points\n", record.Channel, record.PointCount)
			for _, v := range record.Bins {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, CountOptionName, 0, "Number of bins to read, 0 means all")
	return cmd
}

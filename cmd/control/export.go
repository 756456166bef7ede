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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/srv/api"
)

const (
	FileOptionName         = "file"
	ChannelsOptionName     = "channels"
	IgnorePrefixOptionName = "ignore-prefix"
	MaxPointsOptionName    = "max-points"
)

func NewExportCommand() *cobra.Command {
	request := &api.ExportRequest{}
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export channel records to a text file on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := command.NewApiClient(cfg).Export(request)
			if err != nil {
				return err
			}
			if result.Degraded {
				fmt.Fprintln(cmd.ErrOrStderr(), "Channel records were inconsistent, placeholder data written")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows x %d columns (export %s)\n", result.File, result.Rows, result.Columns, result.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&request.File, FileOptionName, "", "File name inside the server export directory")
	cmd.Flags().IntSliceVar(&request.Channels, ChannelsOptionName, nil, "Channels to export counting from 1, default all")
	cmd.Flags().StringVar(&request.IgnorePrefix, IgnorePrefixOptionName, "", "Skip channels whose scaler label starts with this prefix")
	cmd.Flags().IntVar(&request.MaxPoints, MaxPointsOptionName, 0, "Maximum number of rows, 0 means all")
	return cmd
}

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

func NewPresetCommand() *cobra.Command {
	var value float64
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Set preset real time in seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).SetPresetRealTime(value)
		},
	}
	cmd.Flags().Float64Var(&value, ValueOptionName, 0, "Preset real time")
	cmd.MarkFlagRequired(ValueOptionName)
	return cmd
}

func NewDwellCommand() *cobra.Command {
	var value float64
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "dwell",
		Short: "Set dwell time in seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).SetDwellTime(value)
		},
	}
	cmd.Flags().Float64Var(&value, ValueOptionName, 0, "Dwell time")
	cmd.MarkFlagRequired(ValueOptionName)
	return cmd
}

func NewAutoCountCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "auto-count",
		Short: "Put the companion scaler to auto count mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).SetAutoCountMode()
		},
	}
	return cmd
}

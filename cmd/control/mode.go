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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-mcs/pkg/command"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
)

const (
	InitialAdvanceOptionName = "initial-advance"
	PresetRealOptionName     = "preset-real"
)

func NewModeCommand() *cobra.Command {
	var initialAdvance, prescale int
	var presetReal float64
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:       "mode [external|internal]",
		Short:     "Get or switch channel advance mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"external", "internal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if len(args) == 0 {
				mode, err := apiClient.Mode()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			}
			flags := cmd.Flags()
			switch args[0] {
			case "external":
				m := deviceifc.NewExternalMode()
				if flags.Changed(InitialAdvanceOptionName) {
					m.InitialAdvance = deviceifc.IntPtr(initialAdvance)
				}
				if flags.Changed(PresetRealOptionName) {
					m.PresetRealTime = deviceifc.FloatPtr(presetReal)
				}
				if flags.Changed(PrescaleOptionName) {
					m.Prescale = deviceifc.IntPtr(prescale)
				}
				return apiClient.SetExternalMode(m)
			case "internal":
				var p *int
				if flags.Changed(PrescaleOptionName) {
					p = deviceifc.IntPtr(prescale)
				}
				return apiClient.SetInternalMode(p)
			default:
				return errors.New("Wrong mode. Must be one of external/internal")
			}
		},
	}
	cmd.Flags().IntVar(&initialAdvance, InitialAdvanceOptionName, 0, "Initial channel advance (external mode)")
	cmd.Flags().Float64Var(&presetReal, PresetRealOptionName, 0, "Preset real time in seconds (external mode)")
	cmd.Flags().IntVar(&prescale, PrescaleOptionName, 1, "Prescale factor")
	return cmd
}

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

const (
	ConfigDir     = ".go-mcs"
	ConfigFile    = "config"
	ConfigPathEnv = "GO_MCS_CONFIG"
	DBFile        = "registers.db"

	DefaultLogLevel = "info"

	DefaultDevicePrefix = "13IDE:SIS1:"
	DefaultNChannels    = 8
	DefaultClockRate    = 50.0 // MHz
	DefaultSettleTimeMs = 10
	DefaultScalerPrefix = ""

	ChannelTypeLocal = "local"
	ChannelTypeLink  = "link"

	DefaultChannelType      = ChannelTypeLocal
	DefaultGatewayAddress   = "127.0.0.1"
	DefaultGatewayPort      = 33310
	DefaultChannelTimeoutMs = 1000

	DefaultApiAddress = "127.0.0.1"
	DefaultApiPort    = 8010
	DefaultExportDir  = "."
)

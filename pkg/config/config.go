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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

// DeviceConfig describes one MCS instrument
type DeviceConfig struct {
	Prefix       string  `json:"prefix"`
	NChannels    int     `json:"nchan"`
	ClockRate    float64 `json:"clockRate"` // MHz
	ScalerPrefix string  `json:"scalerPrefix,omitempty"`
	SettleTimeMs int     `json:"settleTimeMs"`
}

// SettleTime is the pause before a batch readout
func (d *DeviceConfig) SettleTime() time.Duration {
	return time.Duration(d.SettleTimeMs) * time.Millisecond
}

// ChannelConfig selects how registers are reached.
// local: registers live in the bbolt database at DBPath.
// link: registers are served by a gateway at Address:Port.
type ChannelConfig struct {
	Type      string `json:"type"`
	Address   string `json:"address,omitempty"`
	Port      int    `json:"port,omitempty"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
	DBPath    string `json:"dbPath,omitempty"`
}

func (c *ChannelConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type ApiConfig struct {
	Address   string `json:"address"`
	Port      int    `json:"port"`
	ExportDir string `json:"exportDir"`
}

type Config struct {
	*DeviceConfig  `json:"device,omitempty"`
	*ChannelConfig `json:"channel,omitempty"`
	Api            *ApiConfig `json:"api,omitempty"`
	LogLevel       string     `json:"logLevel,omitempty"`
	filepath       string
}

// Path returns the path the config is loaded from and persisted to
func (c *Config) Path() string {
	return c.filepath
}

// SetPath ...
func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file over the current values.
// A missing file is not an error, defaults stay in place.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return ErrConfigParse{Path: c.filepath, Err: err}
	}
	return nil
}

// Validate checks the values the controller can not work without
func (c *Config) Validate() error {
	if c.DeviceConfig == nil || c.DeviceConfig.Prefix == "" {
		return ErrInvalidValue{Field: "device.prefix", What: "must not be empty"}
	}
	if c.DeviceConfig.NChannels <= 0 {
		return ErrInvalidValue{Field: "device.nchan", What: "must be positive"}
	}
	if c.DeviceConfig.ClockRate <= 0 {
		return ErrInvalidValue{Field: "device.clockRate", What: "must be positive"}
	}
	if c.DeviceConfig.SettleTimeMs < 0 {
		return ErrInvalidValue{Field: "device.settleTimeMs", What: "must not be negative"}
	}
	if c.ChannelConfig == nil {
		return ErrInvalidValue{Field: "channel", What: "must be set"}
	}
	switch c.ChannelConfig.Type {
	case ChannelTypeLocal:
		if c.ChannelConfig.DBPath == "" {
			return ErrInvalidValue{Field: "channel.dbPath", What: "must not be empty for local channel"}
		}
	case ChannelTypeLink:
		if c.ChannelConfig.Address == "" || c.ChannelConfig.Port <= 0 {
			return ErrInvalidValue{Field: "channel.address", What: "address and port must be set for link channel"}
		}
	default:
		return ErrInvalidValue{Field: "channel.type", What: "must be one of local, link"}
	}
	return nil
}

func DefaultConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return filepath.Join(homeDir(), ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	return filepath.Join(homeDir(), ConfigDir, DBFile)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return home
}

func NewDefaultConfig() *Config {
	return &Config{
		DeviceConfig: &DeviceConfig{
			Prefix:       DefaultDevicePrefix,
			NChannels:    DefaultNChannels,
			ClockRate:    DefaultClockRate,
			ScalerPrefix: DefaultScalerPrefix,
			SettleTimeMs: DefaultSettleTimeMs,
		},
		ChannelConfig: &ChannelConfig{
			Type:      DefaultChannelType,
			Address:   DefaultGatewayAddress,
			Port:      DefaultGatewayPort,
			TimeoutMs: DefaultChannelTimeoutMs,
			DBPath:    DefaultDBPath(),
		},
		Api: &ApiConfig{
			Address:   DefaultApiAddress,
			Port:      DefaultApiPort,
			ExportDir: DefaultExportDir,
		},
		LogLevel: DefaultLogLevel,
		filepath: DefaultConfigPath(),
	}
}

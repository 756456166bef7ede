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

package gateway

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	"jinr.ru/greenlab/go-mcs/pkg/device"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/device/mcs"
	"jinr.ru/greenlab/go-mcs/pkg/device/scaler"
	"jinr.ru/greenlab/go-mcs/pkg/layers"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const testPrefix = "13IDE:SIS1:"

func testConfig(t *testing.T) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.DeviceConfig.Prefix = testPrefix
	cfg.DeviceConfig.NChannels = 4
	cfg.DeviceConfig.ScalerPrefix = "13IDE:scaler1:"
	cfg.ChannelConfig.Type = config.ChannelTypeLink
	cfg.ChannelConfig.Address = "127.0.0.1"
	cfg.ChannelConfig.Port = 0
	cfg.ChannelConfig.DBPath = filepath.Join(t.TempDir(), "registers.db")
	return cfg
}

// startGateway runs a seeded gateway and returns a link connected to it
func startGateway(t *testing.T) (*channel.RegState, *channel.Link) {
	cfg := testConfig(t)
	state, err := channel.NewRegState(cfg.ChannelConfig.DBPath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	g, err := NewGateway(ctx, cfg, state)
	require.NoError(t, err)
	require.NoError(t, g.Instrument().Seed())
	require.NoError(t, g.Listen())

	done := make(chan error, 1)
	go func() {
		done <- g.Run()
	}()

	link, err := channel.NewLink("127.0.0.1", g.LocalAddr().Port, time.Second)
	require.NoError(t, err)

	t.Cleanup(func() {
		link.Close()
		cancel()
		<-done
		state.Close()
	})
	return state, link
}

func TestGatewayGetPut(t *testing.T) {
	_, link := startGateway(t)

	value, err := link.Get(testPrefix+"Model", 0)
	require.NoError(t, err)
	assert.Equal(t, SimModel, value.AsString())

	require.NoError(t, link.Put(testPrefix+"Prescale", reg.Int(17), true))
	value, err = link.Get(testPrefix+"Prescale", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(17), value.AsInt())

	require.NoError(t, link.Put(testPrefix+"mca1", reg.Array([]int64{1, 2, 3, 4}), false))
	value, err = link.Get(testPrefix+"mca1", 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, value.AsArray())
}

func TestGatewayNotFound(t *testing.T) {
	_, link := startGateway(t)

	_, err := link.Get(testPrefix+"NoSuchRegister", 0)
	require.Error(t, err)
	var ioErr channel.ErrChannelIO
	assert.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.As(err, &channel.ErrRegisterNotFound{}))
}

func TestGatewayLargeRecord(t *testing.T) {
	state, link := startGateway(t)

	const length = 3*layers.RegPageSize + 17
	record := make([]int64, length)
	for i := range record {
		record[i] = int64(i) * 3
	}
	require.NoError(t, state.SetReg(testPrefix+"mca1", reg.Array(record)))

	value, err := link.Get(testPrefix+"mca1", 0)
	require.NoError(t, err)
	assert.Equal(t, record, value.AsArray())

	value, err = link.Get(testPrefix+"mca1", layers.RegPageSize+5)
	require.NoError(t, err)
	assert.Equal(t, record[:layers.RegPageSize+5], value.AsArray())

	require.NoError(t, state.SetReg(testPrefix+"mca2", reg.Array(make([]int64, layers.RegPageSize))))
	value, err = link.Get(testPrefix+"mca2", 0)
	require.NoError(t, err)
	assert.Len(t, value.AsArray(), layers.RegPageSize)
}

func TestGatewayOversizedResponse(t *testing.T) {
	state, link := startGateway(t)
	require.NoError(t, state.SetReg(testPrefix+"Comment", reg.String(strings.Repeat("x", layers.RegLinkMaxFrameSize))))

	start := time.Now()
	_, err := link.Get(testPrefix+"Comment", 0)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	var netErr net.Error
	assert.False(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "too long")

	value, err := link.Get(testPrefix+"Model", 0)
	require.NoError(t, err)
	assert.Equal(t, SimModel, value.AsString())
}

func TestInstrumentReactions(t *testing.T) {
	state, link := startGateway(t)

	require.NoError(t, link.Put(testPrefix+"mca2", reg.Array([]int64{5, 6}), false))
	require.NoError(t, link.Put(testPrefix+"EraseStart", reg.Int(1), false))

	acquiring, err := state.GetReg(testPrefix + "Acquiring")
	require.NoError(t, err)
	assert.Equal(t, int64(1), acquiring.AsInt())
	record, err := state.GetReg(testPrefix + "mca2")
	require.NoError(t, err)
	assert.Empty(t, record.AsArray())

	require.NoError(t, link.Put(testPrefix+"SoftwareChannelAdvance", reg.Int(1), false))
	require.NoError(t, link.Put(testPrefix+"SoftwareChannelAdvance", reg.Int(1), false))
	current, err := state.GetReg(testPrefix + "CurrentChannel")
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.AsInt())

	require.NoError(t, link.Put(testPrefix+"StopAll", reg.Int(1), false))
	acquiring, err = state.GetReg(testPrefix + "Acquiring")
	require.NoError(t, err)
	assert.Equal(t, int64(0), acquiring.AsInt())
}

func TestControllerOverGateway(t *testing.T) {
	state, link := startGateway(t)

	s := scaler.NewDevice("13IDE:scaler1:", link)
	d, err := mcs.NewDevice(testPrefix, 4, 50, link, mcs.WithScaler(s), mcs.WithSettleTime(0))
	require.NoError(t, err)

	require.NoError(t, d.SetExternalMode(deviceifc.NewExternalMode()))
	mode, err := d.Mode()
	require.NoError(t, err)
	assert.Equal(t, deviceifc.ModeExternal, mode)

	countMode, err := state.GetReg("13IDE:scaler1:" + scaler.RegCountMode)
	require.NoError(t, err)
	assert.Equal(t, scaler.CountModeOneShot, countMode.AsInt())

	require.NoError(t, d.Start())
	status, err := d.Status()
	require.NoError(t, err)
	assert.True(t, status.Acquiring)
	assert.Equal(t, SimModel, status.Model)

	for n := 1; n <= 4; n++ {
		require.NoError(t, state.SetReg(testPrefix+device.McaSuffix(n), reg.Array([]int64{50, 100, 150})))
	}
	result, err := d.Export(filepath.Join(t.TempDir(), "mcs.dat"), deviceifc.ExportOptions{})
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, []string{"Clock", "Channel_2", "Channel_3", "Channel_4"}, result.Labels)
	assert.Equal(t, "13IDE:scaler1:S1", result.Addresses[0])
}

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

package mcs

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"jinr.ru/greenlab/go-mcs/pkg/channel"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const testPrefix = "13IDE:SIS1:"

var _ = Describe("Device", func() {
	var (
		mockCtrl *gomock.Controller
		ch       *MockControlChannel
		scaler   *MockScaler
		d        *Device
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ch = NewMockControlChannel(mockCtrl)
		scaler = NewMockScaler(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("construction", func() {
		It("should reject a non positive clock rate", func() {
			_, err := NewDevice(testPrefix, 8, 0, ch)
			Expect(err).To(Equal(ErrInvalidClockRate{ClockRate: 0}))
		})

		It("should reject a non positive number of channels", func() {
			_, err := NewDevice(testPrefix, 0, 50, ch)
			Expect(err).To(Equal(ErrInvalidChannelCount{NChannels: 0}))
		})

		It("should add the colon to the prefix", func() {
			d, err := NewDevice("13IDE:SIS1", 8, 50, ch)
			Expect(err).ToNot(HaveOccurred())
			Expect(d.GetPrefix()).To(Equal(testPrefix))
			Expect(d.NChannels()).To(Equal(8))
		})
	})

	Context("with a scaler", func() {
		BeforeEach(func() {
			var err error
			d, err = NewDevice(testPrefix, 8, 50, ch, WithScaler(scaler), WithSettleTime(0))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should set external mode in order", func() {
			gomock.InOrder(
				ch.EXPECT().Put(testPrefix+"ChannelAdvance", reg.Int(1), false),
				scaler.EXPECT().OneShotMode(),
				ch.EXPECT().Put(testPrefix+"PresetReal", reg.Float(0), false),
				ch.EXPECT().Put(testPrefix+"Prescale", reg.Int(1), false),
				ch.EXPECT().Put(testPrefix+"InitialChannelAdvancel", reg.Int(0), false),
			)

			Expect(d.SetExternalMode(deviceifc.NewExternalMode())).To(Succeed())
		})

		It("should set internal mode in order", func() {
			gomock.InOrder(
				ch.EXPECT().Put(testPrefix+"ChannelAdvance", reg.Int(0), false),
				scaler.EXPECT().OneShotMode(),
				ch.EXPECT().Put(testPrefix+"Prescale", reg.Int(10), false),
			)

			Expect(d.SetInternalMode(deviceifc.IntPtr(10))).To(Succeed())
		})

		It("should put the scaler to one-shot before start", func() {
			gomock.InOrder(
				scaler.EXPECT().OneShotMode().Times(1),
				ch.EXPECT().Put(testPrefix+"EraseStart", reg.Int(1), false).Times(1),
			)

			Expect(d.Start()).To(Succeed())
		})

		It("should switch the scaler to auto count", func() {
			scaler.EXPECT().AutoCountMode()

			Expect(d.SetAutoCountMode()).To(Succeed())
		})

		It("should not start when the scaler fails", func() {
			scalerErr := errors.New("scaler is gone")
			scaler.EXPECT().OneShotMode().Return(scalerErr)

			Expect(d.Start()).To(MatchError(scalerErr))
		})
	})

	Context("without a scaler", func() {
		BeforeEach(func() {
			var err error
			d, err = NewDevice(testPrefix, 8, 50, ch, WithSettleTime(0))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should only write channel advance when no options are given", func() {
			ch.EXPECT().Put(testPrefix+"ChannelAdvance", reg.Int(1), false)

			Expect(d.SetExternalMode(deviceifc.ExternalMode{})).To(Succeed())
		})

		It("should not write prescale when it is not given", func() {
			ch.EXPECT().Put(testPrefix+"ChannelAdvance", reg.Int(0), false)

			Expect(d.SetInternalMode(nil)).To(Succeed())
		})

		It("should start with a single write", func() {
			ch.EXPECT().Put(testPrefix+"EraseStart", reg.Int(1), false).Times(1)

			Expect(d.Start()).To(Succeed())
		})

		It("should erase with a single write", func() {
			ch.EXPECT().Put(testPrefix+"EraseAll", reg.Int(1), false).Times(1)

			Expect(d.Erase()).To(Succeed())
		})

		It("should stop", func() {
			ch.EXPECT().Put(testPrefix+"StopAll", reg.Int(1), false).Times(1)

			Expect(d.Stop()).To(Succeed())
		})

		It("should advance the channel by software", func() {
			ch.EXPECT().Put(testPrefix+"SoftwareChannelAdvance", reg.Int(1), false)

			Expect(d.SoftwareAdvance()).To(Succeed())
		})

		It("should do nothing on auto count", func() {
			Expect(d.SetAutoCountMode()).To(Succeed())
		})

		It("should write preset real time and dwell time", func() {
			ch.EXPECT().Put(testPrefix+"PresetReal", reg.Float(2.5), false)
			ch.EXPECT().Put(testPrefix+"Dwell", reg.Float(0.001), false)

			Expect(d.SetPresetRealTime(2.5)).To(Succeed())
			Expect(d.SetDwellTime(0.001)).To(Succeed())
		})

		It("should stop after a failed channel advance write", func() {
			ioErr := channel.ErrChannelIO{Op: channel.OpPut, Name: testPrefix + "ChannelAdvance", Err: errors.New("timeout")}
			ch.EXPECT().Put(testPrefix+"ChannelAdvance", reg.Int(1), false).Return(ioErr)

			err := d.SetExternalMode(deviceifc.NewExternalMode())
			Expect(err).To(Equal(ioErr))
		})

		It("should read the mode back", func() {
			ch.EXPECT().Get(testPrefix+"ChannelAdvance", 0).Return(reg.Int(1), nil)
			mode, err := d.Mode()
			Expect(err).ToNot(HaveOccurred())
			Expect(mode).To(Equal(deviceifc.ModeExternal))

			ch.EXPECT().Get(testPrefix+"ChannelAdvance", 0).Return(reg.Int(7), nil)
			_, err = d.Mode()
			Expect(err).To(Equal(ErrUnknownMode{Value: 7}))
		})

		It("should read the status", func() {
			ch.EXPECT().Get(testPrefix+"Acquiring", 0).Return(reg.Int(1), nil)
			ch.EXPECT().Get(testPrefix+"ElapsedReal", 0).Return(reg.Float(1.5), nil)
			ch.EXPECT().Get(testPrefix+"CurrentChannel", 0).Return(reg.Int(42), nil)
			ch.EXPECT().Get(testPrefix+"Model", 0).Return(reg.String("SIS3820"), nil)
			ch.EXPECT().Get(testPrefix+"Firmware", 0).Return(reg.String("0x1"), nil)

			status, err := d.Status()
			Expect(err).ToNot(HaveOccurred())
			Expect(status).To(Equal(&deviceifc.Status{
				Acquiring:      true,
				ElapsedReal:    1.5,
				CurrentChannel: 42,
				Model:          "SIS3820",
				Firmware:       "0x1",
			}))
		})

		It("should read the point count and the record of a channel", func() {
			ch.EXPECT().Get(testPrefix+"mca3.NORD", 0).Return(reg.Int(3), nil)
			ch.EXPECT().Get(testPrefix+"mca3", 2).Return(reg.Array([]int64{4, 5, 6}), nil)

			count, err := d.ChannelPointCount(3)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(3))

			record, err := d.ReadChannel(3, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(record).To(Equal([]int64{4, 5}))
		})

		It("should reject channels out of range", func() {
			_, err := d.ReadChannel(9, 0)
			Expect(err).To(Equal(ErrChannelOutOfRange{Channel: 9, NChannels: 8}))
			_, err = d.ChannelPointCount(0)
			Expect(err).To(Equal(ErrChannelOutOfRange{Channel: 0, NChannels: 8}))
		})
	})

	Context("over a register store", func() {
		var (
			state *channel.RegState
		)

		BeforeEach(func() {
			var err error
			state, err = channel.NewRegState(filepath.Join(GinkgoT().TempDir(), "registers.db"))
			Expect(err).ToNot(HaveOccurred())
			d, err = NewDevice(testPrefix, 8, 50, state, WithSettleTime(0))
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			Expect(state.Close()).To(Succeed())
		})

		It("should keep the prescale written in internal mode", func() {
			for _, prescale := range []int{1, 2, 7, 100, 65535} {
				Expect(d.SetInternalMode(deviceifc.IntPtr(prescale))).To(Succeed())
				value, err := state.Get(testPrefix+"Prescale", 0)
				Expect(err).ToNot(HaveOccurred())
				Expect(value.AsInt()).To(Equal(int64(prescale)))
			}
		})

		It("should leave channel advance at the selected mode", func() {
			for i := 0; i < 2; i++ {
				Expect(d.SetInternalMode(nil)).To(Succeed())
				Expect(d.SetExternalMode(deviceifc.NewExternalMode())).To(Succeed())
				Expect(d.SetExternalMode(deviceifc.NewExternalMode())).To(Succeed())
				Expect(d.Mode()).To(Equal(deviceifc.ModeExternal))

				Expect(d.SetInternalMode(deviceifc.IntPtr(1))).To(Succeed())
				Expect(d.SetInternalMode(deviceifc.IntPtr(1))).To(Succeed())
				Expect(d.Mode()).To(Equal(deviceifc.ModeInternal))
			}
		})

		It("should fail on registers that were never written", func() {
			_, err := d.Mode()
			var ioErr channel.ErrChannelIO
			Expect(errors.As(err, &ioErr)).To(BeTrue())
			Expect(errors.As(err, &channel.ErrRegisterNotFound{})).To(BeTrue())
		})
	})
})

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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
)

func readExport(filename string) (header []string, rows []string) {
	content, err := os.ReadFile(filename)
	Expect(err).ToNot(HaveOccurred())
	Expect(strings.HasSuffix(string(content), "\n")).To(BeTrue())
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	Expect(len(lines)).To(BeNumerically(">=", 6))
	return lines[:6], lines[6:]
}

func headerList(line string) []string {
	return strings.Split(strings.TrimPrefix(line, "# "), " | ")
}

func ramp(length int, step int64) []int64 {
	record := make([]int64, length)
	for i := range record {
		record[i] = int64(i) * step
	}
	return record
}

var _ = Describe("Export", func() {
	var (
		mockCtrl  *gomock.Controller
		ch        *MockControlChannel
		scaler    *MockScaler
		analyzers []*MockAnalyzer
		filename  string
	)

	newDevice := func(opts ...Option) *Device {
		mcas := make([]deviceifc.Analyzer, len(analyzers))
		for i, a := range analyzers {
			mcas[i] = a
		}
		opts = append(opts, WithAnalyzers(mcas), WithSettleTime(0))
		d, err := NewDevice(testPrefix, len(analyzers), 50, ch, opts...)
		Expect(err).ToNot(HaveOccurred())
		return d
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ch = NewMockControlChannel(mockCtrl)
		scaler = NewMockScaler(mockCtrl)
		analyzers = make([]*MockAnalyzer, 4)
		for i := range analyzers {
			analyzers[i] = NewMockAnalyzer(mockCtrl)
		}
		filename = filepath.Join(GinkgoT().TempDir(), "mcs.dat")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should export all rows with the time column in microseconds", func() {
		const length = 100
		// 50 MHz clock ticks, the extra 49 ticks are truncated away
		ticks := ramp(length, 50)
		for i := range ticks {
			ticks[i] += 49
		}
		analyzers[0].EXPECT().Read(0).Return(ticks, nil)
		for i, a := range analyzers[1:] {
			a.EXPECT().Read(0).Return(ramp(length, int64(i+1)), nil)
		}
		d := newDevice()

		result, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Rows).To(Equal(length))
		Expect(result.Columns).To(Equal(4))
		Expect(result.Degraded).To(BeFalse())
		Expect(result.Labels).To(Equal([]string{"MCA1", "MCA2", "MCA3", "MCA4"}))
		Expect(result.Addresses).To(BeEmpty())

		header, rows := readExport(filename)
		Expect(header[0]).To(Equal("# MCS data: " + testPrefix))
		Expect(header[1]).To(Equal("# Nchannels, Nmca = 100, 4"))
		Expect(header[2]).To(Equal("# Time in microseconds"))
		Expect(header[3]).To(Equal("#----------------------"))
		Expect(header[5]).To(Equal("# MCA1 | MCA2 | MCA3 | MCA4"))
		Expect(rows).To(HaveLen(length))
		for i, row := range rows {
			Expect(row).To(Equal(fmt.Sprintf("%9d %9d %9d %9d ", i, i, 2*i, 3*i)))
		}
	})

	It("should write placeholder data when records differ in length", func() {
		analyzers[0].EXPECT().Read(0).Return(ramp(10, 50), nil)
		analyzers[1].EXPECT().Read(0).Return(ramp(10, 1), nil)
		analyzers[2].EXPECT().Read(0).Return(ramp(9, 1), nil)
		analyzers[3].EXPECT().Read(0).Return(ramp(10, 1), nil)
		d := newDevice()

		result, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Degraded).To(BeTrue())
		Expect(result.Rows).To(Equal(PlaceholderRows))
		Expect(result.Columns).To(Equal(4))
		Expect(result.Labels).To(Equal([]string{"MCA1", "MCA2", "MCA3", "MCA4"}))

		header, rows := readExport(filename)
		Expect(header[1]).To(Equal("# Nchannels, Nmca = 2048, 4"))
		Expect(rows).To(HaveLen(PlaceholderRows))
		for _, row := range rows {
			Expect(strings.Fields(row)).To(Equal([]string{"0", "0", "0", "0"}))
		}
	})

	It("should skip unnamed and ignored channels", func() {
		labels := []string{"Clock", "I0 main", "_spare", ""}
		for i, label := range labels {
			scaler.EXPECT().Label(i + 1).Return(label, nil)
		}
		scaler.EXPECT().Address(1).Return("13IDE:scaler1.S1")
		scaler.EXPECT().Address(2).Return("13IDE:scaler1.S2")
		analyzers[0].EXPECT().Read(0).Return(ramp(5, 100), nil)
		analyzers[1].EXPECT().Read(0).Return(ramp(5, 3), nil)
		d := newDevice(WithScaler(scaler))

		result, err := d.Export(filename, deviceifc.ExportOptions{IgnorePrefix: "_"})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Columns).To(Equal(2))
		Expect(result.Labels).To(Equal([]string{"Clock", "I0_main"}))

		header, rows := readExport(filename)
		Expect(headerList(header[4])).To(Equal([]string{"13IDE:scaler1.S1", "13IDE:scaler1.S2"}))
		Expect(headerList(header[5])).To(Equal([]string{"Clock", "I0_main"}))
		Expect(rows).To(HaveLen(5))
		Expect(rows[4]).To(Equal("        8        12 "))
	})

	It("should keep as many labels as value columns", func() {
		for i := range analyzers {
			scaler.EXPECT().Label(i + 1).Return(fmt.Sprintf("ch %d", i+1), nil)
			scaler.EXPECT().Address(i + 1).Return(fmt.Sprintf("S%d", i+1))
		}
		analyzers[0].EXPECT().Read(0).Return(ramp(3, 50), nil)
		analyzers[1].EXPECT().Read(0).Return(ramp(3, 1), nil)
		analyzers[2].EXPECT().Read(0).Return(ramp(4, 1), nil)
		analyzers[3].EXPECT().Read(0).Return(ramp(3, 1), nil)
		d := newDevice(WithScaler(scaler))

		result, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Degraded).To(BeTrue())

		header, rows := readExport(filename)
		labels := headerList(header[5])
		for _, row := range rows {
			Expect(strings.Fields(row)).To(HaveLen(len(labels)))
		}
	})

	It("should limit the number of rows", func() {
		analyzers[1].EXPECT().Read(0).Return(ramp(20, 50), nil)
		analyzers[3].EXPECT().Read(0).Return(ramp(20, 1), nil)
		d := newDevice()

		result, err := d.Export(filename, deviceifc.ExportOptions{Channels: []int{2, 4}, MaxPoints: 7})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Rows).To(Equal(7))
		Expect(result.Labels).To(Equal([]string{"MCA2", "MCA4"}))

		_, rows := readExport(filename)
		Expect(rows).To(HaveLen(7))

		analyzers[1].EXPECT().Read(0).Return(ramp(20, 50), nil)
		analyzers[3].EXPECT().Read(0).Return(ramp(20, 1), nil)
		result, err = d.Export(filename, deviceifc.ExportOptions{Channels: []int{2, 4}, MaxPoints: 500})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Rows).To(Equal(20))
	})

	It("should keep the column count of empty records", func() {
		for _, a := range analyzers {
			a.EXPECT().Read(0).Return([]int64{}, nil)
		}
		d := newDevice()

		result, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Rows).To(Equal(0))
		Expect(result.Columns).To(Equal(4))
		Expect(result.Degraded).To(BeFalse())
		Expect(result.Labels).To(HaveLen(result.Columns))

		header, rows := readExport(filename)
		Expect(header[1]).To(Equal("# Nchannels, Nmca = 0, 4"))
		Expect(headerList(header[5])).To(Equal([]string{"MCA1", "MCA2", "MCA3", "MCA4"}))
		Expect(rows).To(BeEmpty())
	})

	It("should fail when every channel is skipped", func() {
		for i := range analyzers {
			scaler.EXPECT().Label(i + 1).Return("", nil)
		}
		d := newDevice(WithScaler(scaler))

		_, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).To(Equal(ErrNoChannels{}))
		_, statErr := os.Stat(filename)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})

	It("should pass channel errors through", func() {
		readErr := errors.New("read failed")
		analyzers[0].EXPECT().Read(0).Return(nil, readErr)
		d := newDevice()

		_, err := d.Export(filename, deviceifc.ExportOptions{})
		Expect(err).To(MatchError(readErr))
	})

	It("should wrap file errors with the file name", func() {
		for _, a := range analyzers {
			a.EXPECT().Read(0).Return(ramp(2, 1), nil)
		}
		d := newDevice()
		missing := filepath.Join(GinkgoT().TempDir(), "missing", "mcs.dat")

		_, err := d.Export(missing, deviceifc.ExportOptions{})
		var fileErr ErrExportFile
		Expect(errors.As(err, &fileErr)).To(BeTrue())
		Expect(fileErr.Path).To(Equal(missing))
	})
})

var _ = Describe("Table", func() {
	It("should hold a placeholder with a single time value", func() {
		t := Placeholder(3)
		Expect(t.NRows()).To(Equal(PlaceholderRows))
		Expect(t.NColumns()).To(Equal(3))
		Expect(t.Degraded).To(BeTrue())
		Expect(t.Rows[0][0]).To(Equal(1.0))
		sum := 0.0
		for _, row := range t.Rows {
			for _, v := range row {
				sum += v
			}
		}
		Expect(sum).To(Equal(1.0))
	})

	It("should report record lengths on mismatch", func() {
		_, err := Assemble([][]int64{{1, 2}, {1}})
		Expect(err).To(Equal(ErrInconsistentRecords{Lengths: []int{2, 1}}))
	})

	It("should count columns of records without bins", func() {
		t, err := Assemble([][]int64{{}, {}, {}})
		Expect(err).ToNot(HaveOccurred())
		Expect(t.NRows()).To(Equal(0))
		Expect(t.NColumns()).To(Equal(3))
	})

	It("should write values truncated toward zero", func() {
		t := &Table{Rows: [][]float64{{99.9, -2.7}}}
		var buf bytes.Buffer
		Expect(WriteTable(&buf, Header{Prefix: "P:"}, t, 1)).To(Succeed())
		Expect(buf.String()).To(HaveSuffix("\n       99        -2 \n"))
	})
})

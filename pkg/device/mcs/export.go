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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/log"
)

// Header is the annotation written above the data rows
type Header struct {
	Prefix    string
	Addresses []string
	Labels    []string
}

// WriteTable writes the header and the first nrows rows of the table.
// Values are truncated to integers.
func WriteTable(w io.Writer, h Header, t *Table, nrows int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# MCS data: %s\n", h.Prefix)
	fmt.Fprintf(bw, "# Nchannels, Nmca = %d, %d\n", nrows, t.NColumns())
	fmt.Fprintf(bw, "# Time in microseconds\n")
	fmt.Fprintf(bw, "#----------------------\n")
	fmt.Fprintf(bw, "# %s\n", strings.Join(h.Addresses, " | "))
	fmt.Fprintf(bw, "# %s\n", strings.Join(h.Labels, " | "))
	for _, row := range t.Rows[:nrows] {
		for _, v := range row {
			fmt.Fprintf(bw, "%9d ", int64(v))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Export reads the selected channels and writes them to filename as annotated text.
// Records of different lengths are replaced with placeholder data and the result
// is marked as degraded.
func (d *Device) Export(filename string, opts deviceifc.ExportOptions) (*deviceifc.ExportResult, error) {
	channels := opts.Channels
	if len(channels) == 0 {
		channels = make([]int, d.nchan)
		for i := range channels {
			channels[i] = i + 1
		}
	}

	if d.settleTime > 0 {
		time.Sleep(d.settleTime)
	}

	columns, err := d.collect(channels, opts.IgnorePrefix)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(columns))
	addresses := []string{}
	records := make([][]int64, len(columns))
	for i, c := range columns {
		labels[i] = c.label
		if c.address != "" {
			addresses = append(addresses, c.address)
		}
		records[i] = c.record
	}

	table, err := Assemble(records)
	if err != nil {
		var inconsistent ErrInconsistentRecords
		if !errors.As(err, &inconsistent) {
			return nil, err
		}
		log.Warning("MCS %s: %s. Writing placeholder data to %s", d.prefix, err, filename)
		table = Placeholder(d.nchan)
		labels = make([]string, d.nchan)
		for i := range labels {
			labels[i] = GenericLabel(i + 1)
		}
		addresses = []string{}
	}
	table.Normalize(d.clockRate)

	nrows := table.NRows()
	if opts.MaxPoints > 0 && opts.MaxPoints < nrows {
		nrows = opts.MaxPoints
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, ErrExportFile{Path: filename, Err: err}
	}
	header := Header{Prefix: d.prefix, Addresses: addresses, Labels: labels}
	if err := WriteTable(f, header, table, nrows); err != nil {
		f.Close()
		return nil, ErrExportFile{Path: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, ErrExportFile{Path: filename, Err: err}
	}
	log.Info("MCS %s: exported %d rows of %d channels to %s", d.prefix, nrows, table.NColumns(), filename)

	return &deviceifc.ExportResult{
		File:      filename,
		Rows:      nrows,
		Columns:   table.NColumns(),
		Labels:    labels,
		Addresses: addresses,
		Degraded:  table.Degraded,
	}, nil
}

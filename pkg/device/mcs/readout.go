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
	"fmt"
	"strings"

	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
)

const (
	PlaceholderRows = 2048
)

// Table is the export data by rows. Column 0 is the time column.
type Table struct {
	Rows [][]float64
	// Columns is the number of value columns, known even when there are no rows
	Columns  int
	Degraded bool
}

func (t *Table) NRows() int {
	return len(t.Rows)
}

func (t *Table) NColumns() int {
	if t.Columns > 0 || len(t.Rows) == 0 {
		return t.Columns
	}
	return len(t.Rows[0])
}

// Normalize converts the time column from clock ticks to microseconds
func (t *Table) Normalize(clockRate float64) {
	for _, row := range t.Rows {
		if len(row) > 0 {
			row[0] = row[0] / clockRate
		}
	}
}

// Assemble turns per channel records into rows. All records must be of the same length.
func Assemble(records [][]int64) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoChannels{}
	}
	nrows := len(records[0])
	for _, record := range records[1:] {
		if len(record) != nrows {
			lengths := make([]int, len(records))
			for i, r := range records {
				lengths[i] = len(r)
			}
			return nil, ErrInconsistentRecords{Lengths: lengths}
		}
	}
	rows := make([][]float64, nrows)
	for i := range rows {
		row := make([]float64, len(records))
		for j, record := range records {
			row[j] = float64(record[i])
		}
		rows[i] = row
	}
	return &Table{Rows: rows, Columns: len(records)}, nil
}

// Placeholder is written instead of records that could not be assembled.
// It holds PlaceholderRows rows of nchan zeros except for the first time value of 1.
func Placeholder(nchan int) *Table {
	rows := make([][]float64, PlaceholderRows)
	for i := range rows {
		rows[i] = make([]float64, nchan)
	}
	rows[0][0] = 1.0
	return &Table{
		Rows:     rows,
		Columns:  nchan,
		Degraded: true,
	}
}

// GenericLabel is the label of channel n when no scaler names it
func GenericLabel(n int) string {
	return fmt.Sprintf("MCA%d", n)
}

func (d *Device) analyzer(n int) (deviceifc.Analyzer, error) {
	if n < 1 || n > d.nchan {
		return nil, ErrChannelOutOfRange{Channel: n, NChannels: d.nchan}
	}
	return d.mcas[n-1], nil
}

// ChannelPointCount returns the number of valid bins of channel n
func (d *Device) ChannelPointCount(n int) (int, error) {
	a, err := d.analyzer(n)
	if err != nil {
		return 0, err
	}
	return a.PointCount()
}

// ReadChannel returns up to count bins of channel n, count <= 0 means all bins
func (d *Device) ReadChannel(n, count int) ([]int64, error) {
	a, err := d.analyzer(n)
	if err != nil {
		return nil, err
	}
	return a.Read(count)
}

// column is one channel selected for export
type column struct {
	label   string
	address string
	record  []int64
}

// collect reads the records of the selected channels.
// With a scaler, channels without a label or with a label
// starting with ignorePrefix are left out.
func (d *Device) collect(channels []int, ignorePrefix string) ([]column, error) {
	var columns []column
	for _, n := range channels {
		if d.scaler == nil {
			record, err := d.ReadChannel(n, 0)
			if err != nil {
				return nil, err
			}
			columns = append(columns, column{label: GenericLabel(n), record: record})
			continue
		}
		label, err := d.scaler.Label(n)
		if err != nil {
			return nil, err
		}
		if label == "" {
			continue
		}
		if ignorePrefix != "" && strings.HasPrefix(label, ignorePrefix) {
			continue
		}
		record, err := d.ReadChannel(n, 0)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column{
			label:   strings.ReplaceAll(label, " ", "_"),
			address: d.scaler.Address(n),
			record:  record,
		})
	}
	return columns, nil
}

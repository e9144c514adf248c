// Package table holds ordered, named-column numeric results and exports
// them as CSV or JSON.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Table is a row-ordered numeric table. An optional label column carries a
// string identity per row (e.g. the probed parameter name).
type Table struct {
	labelName string
	labels    []string
	columns   []string
	index     map[string]int
	rows      [][]float64
}

func New(columns []string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Table{columns: columns, index: idx}
}

// NewLabeled is New with a leading string column.
func NewLabeled(labelName string, columns []string) *Table {
	t := New(columns)
	t.labelName = labelName
	return t
}

func (t *Table) Columns() []string { return t.columns }
func (t *Table) Len() int          { return len(t.rows) }
func (t *Table) Labeled() bool     { return t.labelName != "" }

func (t *Table) AppendRow(values []float64) error {
	return t.AppendLabeledRow("", values)
}

func (t *Table) AppendLabeledRow(label string, values []float64) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("table: row has %d values, want %d", len(values), len(t.columns))
	}
	row := make([]float64, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	if t.labelName != "" {
		t.labels = append(t.labels, label)
	}
	return nil
}

func (t *Table) Row(i int) []float64 { return t.rows[i] }

func (t *Table) Label(i int) string {
	if t.labelName == "" {
		return ""
	}
	return t.labels[i]
}

func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	col := make([]float64, len(t.rows))
	for i, row := range t.rows {
		col[i] = row[j]
	}
	return col, nil
}

func (t *Table) Value(i int, name string) (float64, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("table: no column %q", name)
	}
	return t.rows[i][j], nil
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := t.columns
	if t.labelName != "" {
		header = append([]string{t.labelName}, t.columns...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for i, row := range t.rows {
		record = record[:0]
		if t.labelName != "" {
			record = append(record, t.labels[i])
		}
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t *Table) ExportCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return t.WriteCSV(file)
}

// jsonValue renders non-finite values as null: encoding/json rejects NaN
// and Inf, and sentinel rows carry NaN.
type jsonValue float64

func (v jsonValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

type exportData struct {
	LabelName string        `json:"label_name,omitempty"`
	Labels    []string      `json:"labels,omitempty"`
	Columns   []string      `json:"columns"`
	Rows      [][]jsonValue `json:"rows"`
}

func (t *Table) WriteJSON(w io.Writer) error {
	rows := make([][]jsonValue, len(t.rows))
	for i, row := range t.rows {
		rows[i] = make([]jsonValue, len(row))
		for j, v := range row {
			rows[i][j] = jsonValue(v)
		}
	}
	data := exportData{
		LabelName: t.labelName,
		Labels:    t.labels,
		Columns:   t.columns,
		Rows:      rows,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (t *Table) ExportJSON(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return t.WriteJSON(file)
}

package table

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestAppendAndColumn(t *testing.T) {
	tbl := New([]string{"a", "b"})
	if err := tbl.AppendRow([]float64{1, 2}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := tbl.AppendRow([]float64{3, 4}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if tbl.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", tbl.Len())
	}
	col, err := tbl.Column("b")
	if err != nil {
		t.Fatalf("column failed: %v", err)
	}
	if col[0] != 2 || col[1] != 4 {
		t.Errorf("unexpected column values: %v", col)
	}

	if _, err := tbl.Column("missing"); err == nil {
		t.Error("expected error for missing column")
	}
	if err := tbl.AppendRow([]float64{1}); err == nil {
		t.Error("expected error for short row")
	}
}

func TestColumnIsCopy(t *testing.T) {
	tbl := New([]string{"a"})
	tbl.AppendRow([]float64{1})
	col, _ := tbl.Column("a")
	col[0] = 99
	v, _ := tbl.Value(0, "a")
	if v != 1 {
		t.Error("Column should return a copy, underlying row changed")
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := NewLabeled("probing", []string{"x", "y"})
	tbl.AppendLabeledRow("mass", []float64{1, 2.5})

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("csv failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "probing,x,y" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "mass,1,2.5" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestWriteJSONWithNaN(t *testing.T) {
	tbl := New([]string{"x"})
	tbl.AppendRow([]float64{math.NaN()})

	var buf bytes.Buffer
	if err := tbl.WriteJSON(&buf); err != nil {
		t.Fatalf("json export with NaN failed: %v", err)
	}
	if !strings.Contains(buf.String(), "null") {
		t.Errorf("NaN should export as null, got %s", buf.String())
	}
}

package sheet

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/sheettranslate/internal/testutil"
)

func TestLoad(t *testing.T) {
	path := testutil.CreateTestWorkbook(t, filepath.Join(t.TempDir(), "input.xlsx"), "Phrases", [][]string{
		{"ID", "Text"},
		{"1", "Hello"},
		{"2", "World"},
		{"3", "Good morning"},
	})

	table, err := Load(path, "Phrases")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(table.Header, []string{"ID", "Text"}) {
		t.Errorf("Unexpected header %q", table.Header)
	}
	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}

	texts, _ := table.Column("Text")
	if !reflect.DeepEqual(texts, []string{"Hello", "World", "Good morning"}) {
		t.Errorf("Unexpected column values %q", texts)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateTestWorkbook(t, filepath.Join(dir, "input.xlsx"), "Phrases", [][]string{
		{"Text"},
		{"Hello"},
	})
	empty := testutil.CreateTestWorkbook(t, filepath.Join(dir, "empty.xlsx"), "Empty", nil)

	tests := []struct {
		name    string
		path    string
		sheet   string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), "Phrases", "failed to open workbook"},
		{"missing sheet", path, "Other", "not found"},
		{"empty sheet", empty, "Empty", "no header row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.sheet)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "translated.xlsx")

	table := &Table{
		Header: []string{"Text", "Translation"},
		Rows: [][]string{
			{"Hello", "Hola"},
			{"World"},
		},
	}

	if err := Save(table, out, "Phrases"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rows := testutil.ReadWorkbook(t, out, "Phrases")
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows including header, got %d", len(rows))
	}
	if testutil.Cell(rows, 0, 1) != "Translation" {
		t.Errorf("Header not written: %q", rows[0])
	}
	if testutil.Cell(rows, 1, 1) != "Hola" {
		t.Errorf("Translation not written: %q", rows[1])
	}
	if testutil.Cell(rows, 2, 0) != "World" || testutil.Cell(rows, 2, 1) != "" {
		t.Errorf("Unexpected short row: %q", rows[2])
	}

	// no temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the output file, found %d entries", len(entries))
	}
}

func TestSave_Overwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "translated.xlsx")

	first := &Table{Header: []string{"Text"}, Rows: [][]string{{"a"}, {"b"}}}
	second := &Table{Header: []string{"Text", "Translation"}, Rows: [][]string{{"a", "x"}}}

	if err := Save(first, out, "Sheet"); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := Save(second, out, "Sheet"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	rows := testutil.ReadWorkbook(t, out, "Sheet")
	if len(rows) != 2 || testutil.Cell(rows, 1, 1) != "x" {
		t.Errorf("Output not replaced wholesale: %q", rows)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "roundtrip.xlsx")
	table := &Table{
		Header: []string{"Text", "Translation"},
		Rows:   [][]string{{"Hello", "Hola"}, {"Good morning", "Buenos días"}},
	}

	if err := Save(table, out, "Phrases"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(out, "Phrases")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Header, table.Header) || !reflect.DeepEqual(loaded.Rows, table.Rows) {
		t.Errorf("Round trip mismatch: got %+v, want %+v", loaded, table)
	}
}

func TestSave_KeepsCellTypes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "typed.xlsx")

	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	cells := map[string]interface{}{
		"A1": "Text", "B1": "Count", "C1": "Date", "D1": "Double", "E1": "Done",
		"A2": "Hello",
		"B2": 42,
		"C2": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		"E2": true,
	}
	for name, value := range cells {
		if err := f.SetCellValue(sheetName, name, value); err != nil {
			t.Fatalf("SetCellValue %s failed: %v", name, err)
		}
	}
	if err := f.SetCellFormula(sheetName, "D2", "B2*2"); err != nil {
		t.Fatalf("SetCellFormula failed: %v", err)
	}
	if err := f.SaveAs(src); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	table, err := Load(src, sheetName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col := table.EnsureColumn("Translation")
	table.Set(0, col, "Hola")

	out := filepath.Join(dir, "out.xlsx")
	if err := Save(table, out, sheetName); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	in, err := excelize.OpenFile(src)
	if err != nil {
		t.Fatalf("OpenFile source failed: %v", err)
	}
	defer in.Close()
	res, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("OpenFile output failed: %v", err)
	}
	defer res.Close()

	raw := excelize.Options{RawCellValue: true}
	for _, name := range []string{"B2", "C2", "E2"} {
		wantType, _ := in.GetCellType(sheetName, name)
		gotType, _ := res.GetCellType(sheetName, name)
		if gotType != wantType {
			t.Errorf("%s changed type: %v -> %v", name, wantType, gotType)
		}
		wantRaw, _ := in.GetCellValue(sheetName, name, raw)
		gotRaw, _ := res.GetCellValue(sheetName, name, raw)
		if gotRaw != wantRaw {
			t.Errorf("%s changed value: %q -> %q", name, wantRaw, gotRaw)
		}
	}

	// the date keeps its number format, so it still displays as a date
	wantDate, _ := in.GetCellValue(sheetName, "C2")
	gotDate, _ := res.GetCellValue(sheetName, "C2")
	if gotDate != wantDate {
		t.Errorf("Date displays as %q, want %q", gotDate, wantDate)
	}

	formula, err := res.GetCellFormula(sheetName, "D2")
	if err != nil || formula != "B2*2" {
		t.Errorf("Formula lost: got %q, err %v", formula, err)
	}

	if got, _ := res.GetCellValue(sheetName, "F2"); got != "Hola" {
		t.Errorf("Translation not written: %q", got)
	}
}

func TestSet_DropsStoredValue(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "typed.xlsx")

	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	f.SetCellValue(sheetName, "A1", "Text")
	f.SetCellValue(sheetName, "A2", 7)
	if err := f.SaveAs(src); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	table, err := Load(src, sheetName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	table.Set(0, 0, "seven")

	out := filepath.Join(dir, "out.xlsx")
	if err := Save(table, out, sheetName); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rows := testutil.ReadWorkbook(t, out, sheetName)
	if testutil.Cell(rows, 1, 0) != "seven" {
		t.Errorf("Overwritten cell kept its old value: %q", rows[1])
	}
}

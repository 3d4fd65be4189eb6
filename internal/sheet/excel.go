package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// cellMeta is what a source cell stores beyond its display text
type cellMeta struct {
	value   interface{} // float64 or bool; nil keeps the display text
	formula string
	style   *excelize.Style
}

// Load reads sheetName of the workbook at path. The first row is the header.
func Load(path, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	t := &Table{
		Header: rows[0],
		Rows:   make([][]string, 0, len(rows)-1),
		cells:  make(map[cellKey]cellMeta),
	}
	styles := make(map[int]*excelize.Style)

	for i, row := range rows[1:] {
		t.Rows = append(t.Rows, append([]string(nil), row...))
		for j := range row {
			meta, ok, err := readCell(f, sheetName, i+2, j+1, styles)
			if err != nil {
				return nil, err
			}
			if ok {
				t.cells[cellKey{i, j}] = meta
			}
		}
	}
	return t, nil
}

// readCell reports the stored value, formula and style of a cell that is
// more than plain unstyled text
func readCell(f *excelize.File, sheetName string, rowNum, colNum int, styles map[int]*excelize.Style) (cellMeta, bool, error) {
	var meta cellMeta

	name, err := excelize.CoordinatesToCellName(colNum, rowNum)
	if err != nil {
		return meta, false, err
	}

	formula, err := f.GetCellFormula(sheetName, name)
	if err != nil {
		return meta, false, fmt.Errorf("failed to read formula of %s: %w", name, err)
	}
	meta.formula = formula

	if formula == "" {
		typ, err := f.GetCellType(sheetName, name)
		if err != nil {
			return meta, false, fmt.Errorf("failed to read type of %s: %w", name, err)
		}
		raw, err := f.GetCellValue(sheetName, name, excelize.Options{RawCellValue: true})
		if err != nil {
			return meta, false, fmt.Errorf("failed to read %s: %w", name, err)
		}

		switch typ {
		case excelize.CellTypeUnset, excelize.CellTypeNumber:
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				meta.value = v
			}
		case excelize.CellTypeBool:
			meta.value = raw == "1"
		}
	}

	styleID, err := f.GetCellStyle(sheetName, name)
	if err != nil {
		return meta, false, fmt.Errorf("failed to read style of %s: %w", name, err)
	}
	if styleID != 0 {
		style, ok := styles[styleID]
		if !ok {
			if style, err = f.GetStyle(styleID); err != nil {
				return meta, false, fmt.Errorf("failed to read style %d: %w", styleID, err)
			}
			styles[styleID] = style
		}
		meta.style = style
	}

	return meta, meta.value != nil || meta.formula != "" || meta.style != nil, nil
}

// Save writes t as the only sheet of a new workbook at path. The workbook is
// written to a temporary file in the same directory and renamed over path,
// so an interrupted save leaves the previous file intact.
func Save(t *Table, path, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
	}

	if err := writeRow(f, sheetName, 1, t.Header, nil); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheetName, i+2, row, rowMeta(t, i, len(row))); err != nil {
			return err
		}
	}
	if err := writeMeta(f, sheetName, t); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sheettranslate-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func rowMeta(t *Table, row, width int) []cellMeta {
	if len(t.cells) == 0 {
		return nil
	}
	metas := make([]cellMeta, width)
	for col := range metas {
		metas[col] = t.cells[cellKey{row, col}]
	}
	return metas
}

func writeRow(f *excelize.File, sheetName string, rowNum int, row []string, metas []cellMeta) error {
	if len(row) == 0 {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
		if i < len(metas) && metas[i].value != nil {
			values[i] = metas[i].value
		}
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// writeMeta restores formulas and styles of loaded cells
func writeMeta(f *excelize.File, sheetName string, t *Table) error {
	styleIDs := make(map[*excelize.Style]int)

	for key, meta := range t.cells {
		name, err := excelize.CoordinatesToCellName(key.col+1, key.row+2)
		if err != nil {
			return err
		}

		if meta.formula != "" {
			if err := f.SetCellFormula(sheetName, name, meta.formula); err != nil {
				return fmt.Errorf("failed to write formula of %s: %w", name, err)
			}
		}

		if meta.style == nil {
			continue
		}
		id, ok := styleIDs[meta.style]
		if !ok {
			if id, err = f.NewStyle(meta.style); err != nil {
				return fmt.Errorf("failed to copy style of %s: %w", name, err)
			}
			styleIDs[meta.style] = id
		}
		if err := f.SetCellStyle(sheetName, name, name, id); err != nil {
			return fmt.Errorf("failed to style %s: %w", name, err)
		}
	}
	return nil
}

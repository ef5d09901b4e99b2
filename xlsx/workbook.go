// Package xlsx exposes an Excel workbook as a read-only cell store.
// Tables are the workbook's sheets in order. Workbook implements
// gridcell.AttributeStore, gridcell.ValueSource and viewport.Sizes.
package xlsx

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/gogpu/gridcell"
)

// ErrUnknownTable is returned for table indices without a sheet.
var ErrUnknownTable = errors.New("xlsx: unknown table")

// Excel's default sizes, in points and character units.
const (
	defaultRowHeight = 15.0
	defaultColWidth  = 9.140625
)

// Pixel conversions for Excel's size units at 96 DPI.
const (
	pixelsPerPoint    = 96.0 / 72.0
	pixelsPerCharUnit = 7.0
	columnPadding     = 5.0
)

type sheetMerges struct {
	areas []gridcell.MergeArea
}

// Workbook adapts an excelize file. Merge areas are read once on Open;
// values and styles are read on demand.
type Workbook struct {
	f      *excelize.File
	sheets []string
	merges []sheetMerges

	mu     sync.Mutex
	styles map[int]gridcell.Attributes
}

// Open reads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	wb, err := New(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return wb, nil
}

// New wraps an already opened file.
func New(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{
		f:      f,
		sheets: f.GetSheetList(),
		styles: make(map[int]gridcell.Attributes),
	}
	wb.merges = make([]sheetMerges, len(wb.sheets))
	for i, name := range wb.sheets {
		cells, err := f.GetMergeCells(name)
		if err != nil {
			return nil, fmt.Errorf("xlsx: merge cells of %s: %w", name, err)
		}
		for _, mc := range cells {
			area, err := parseArea(mc.GetStartAxis(), mc.GetEndAxis())
			if err != nil {
				return nil, fmt.Errorf("xlsx: merge cells of %s: %w", name, err)
			}
			wb.merges[i].areas = append(wb.merges[i].areas, area)
		}
	}
	return wb, nil
}

// Close closes the underlying file.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// Sheets returns the sheet names; the index of a name is its table.
func (wb *Workbook) Sheets() []string {
	return wb.sheets
}

// Table returns the table index of the sheet called name.
func (wb *Workbook) Table(name string) (int, error) {
	for i, s := range wb.sheets {
		if s == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

func parseArea(start, end string) (gridcell.MergeArea, error) {
	c0, r0, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return gridcell.MergeArea{}, err
	}
	c1, r1, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return gridcell.MergeArea{}, err
	}
	return gridcell.MergeArea{Top: r0 - 1, Left: c0 - 1, Bottom: r1 - 1, Right: c1 - 1}, nil
}

// cell returns the sheet name and A1 reference of key.
func (wb *Workbook) cell(key gridcell.CellKey) (string, string, bool) {
	if key.Table < 0 || key.Table >= len(wb.sheets) || key.Row < 0 || key.Col < 0 {
		return "", "", false
	}
	ref, err := excelize.CoordinatesToCellName(key.Col+1, key.Row+1)
	if err != nil {
		return "", "", false
	}
	return wb.sheets[key.Table], ref, true
}

func (wb *Workbook) findMerge(key gridcell.CellKey) (gridcell.MergeArea, bool) {
	if key.Table < 0 || key.Table >= len(wb.merges) {
		return gridcell.MergeArea{}, false
	}
	for _, a := range wb.merges[key.Table].areas {
		if a.Contains(key.Row, key.Col) {
			return a, true
		}
	}
	return gridcell.MergeArea{}, false
}

// MergingCell implements gridcell.AttributeStore.
func (wb *Workbook) MergingCell(key gridcell.CellKey) (gridcell.CellKey, bool) {
	area, ok := wb.findMerge(key)
	if !ok {
		return gridcell.CellKey{}, false
	}
	return area.Anchor(key.Table), true
}

// Attributes implements gridcell.AttributeStore. Cell styles are mapped to
// background, text color, font size and alignment attributes.
func (wb *Workbook) Attributes(key gridcell.CellKey) gridcell.Attributes {
	attrs := gridcell.Attributes{}
	sheet, ref, ok := wb.cell(key)
	if !ok {
		return attrs
	}

	if id, err := wb.f.GetCellStyle(sheet, ref); err == nil && id != 0 {
		for name, v := range wb.style(id) {
			attrs[name] = v
		}
	}
	if area, ok := wb.findMerge(key); ok && area.IsAnchor(key.Row, key.Col) {
		attrs[gridcell.AttrMergeArea] = area
	}
	return attrs
}

// style converts and memoizes an excelize style.
func (wb *Workbook) style(id int) gridcell.Attributes {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if a, ok := wb.styles[id]; ok {
		return a
	}

	a := gridcell.Attributes{}
	if st, err := wb.f.GetStyle(id); err == nil && st != nil {
		if len(st.Fill.Color) > 0 && st.Fill.Color[0] != "" {
			a[gridcell.AttrBackground] = hexColor(st.Fill.Color[0])
		}
		if st.Font != nil {
			if st.Font.Color != "" {
				a[gridcell.AttrTextColor] = hexColor(st.Font.Color)
			}
			if st.Font.Size > 0 {
				a[gridcell.AttrFontSize] = st.Font.Size
			}
		}
		if st.Alignment != nil {
			switch st.Alignment.Horizontal {
			case "center", "centerContinuous":
				a[gridcell.AttrJustification] = "center"
			case "right":
				a[gridcell.AttrJustification] = "right"
			}
			switch st.Alignment.Vertical {
			case "center":
				a[gridcell.AttrVerticalAlign] = "middle"
			case "bottom":
				a[gridcell.AttrVerticalAlign] = "bottom"
			}
		}
	}
	wb.styles[id] = a
	return a
}

// hexColor normalizes excelize colors ("FF0000", "FFFF0000") to "#rrggbb".
func hexColor(c string) string {
	c = strings.TrimPrefix(c, "#")
	if len(c) == 8 {
		c = c[2:] // drop ARGB alpha
	}
	return "#" + strings.ToLower(c)
}

// Value implements gridcell.ValueSource. It returns the cached result
// stored in the workbook; nothing is recalculated.
func (wb *Workbook) Value(key gridcell.CellKey) any {
	sheet, ref, ok := wb.cell(key)
	if !ok {
		return nil
	}
	v, err := wb.f.GetCellValue(sheet, ref)
	if err != nil {
		return err
	}
	if v == "" {
		return nil
	}
	return v
}

// Definition implements gridcell.ValueSource: the formula when the cell has
// one, otherwise the raw stored value.
func (wb *Workbook) Definition(key gridcell.CellKey) any {
	sheet, ref, ok := wb.cell(key)
	if !ok {
		return nil
	}
	if formula, err := wb.f.GetCellFormula(sheet, ref); err == nil && formula != "" {
		return "=" + formula
	}
	v, err := wb.f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil || v == "" {
		return nil
	}
	return v
}

// RowHeight returns the height of row in logical pixels.
func (wb *Workbook) RowHeight(table, row int) float64 {
	h := defaultRowHeight
	if table >= 0 && table < len(wb.sheets) {
		if v, err := wb.f.GetRowHeight(wb.sheets[table], row+1); err == nil && v > 0 {
			h = v
		}
	}
	return h * pixelsPerPoint
}

// ColumnWidth returns the width of col in logical pixels.
func (wb *Workbook) ColumnWidth(table, col int) float64 {
	w := defaultColWidth
	if table >= 0 && table < len(wb.sheets) {
		if name, err := excelize.ColumnNumberToName(col + 1); err == nil {
			if v, err := wb.f.GetColWidth(wb.sheets[table], name); err == nil && v > 0 {
				w = v
			}
		}
	}
	return w*pixelsPerCharUnit + columnPadding
}

var (
	_ gridcell.AttributeStore = (*Workbook)(nil)
	_ gridcell.ValueSource    = (*Workbook)(nil)
)

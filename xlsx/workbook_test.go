package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gogpu/gridcell"
)

func newWorkbook(t *testing.T) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "title"))
	require.NoError(t, f.MergeCell("Sheet1", "B2", "C3"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "merged"))
	require.NoError(t, f.SetCellValue("Sheet1", "D1", 2))
	require.NoError(t, f.SetCellFormula("Sheet1", "D2", "D1*2"))
	require.NoError(t, f.SetColWidth("Sheet1", "E", "E", 20))
	require.NoError(t, f.SetRowHeight("Sheet1", 5, 30))

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
		Font:      &excelize.Font{Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", style))

	_, err = f.NewSheet("Second")
	require.NoError(t, err)

	wb, err := New(f)
	require.NoError(t, err)
	return wb
}

func TestTables(t *testing.T) {
	wb := newWorkbook(t)
	assert.Equal(t, []string{"Sheet1", "Second"}, wb.Sheets())

	table, err := wb.Table("Second")
	require.NoError(t, err)
	assert.Equal(t, 1, table)

	_, err = wb.Table("missing")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestMerges(t *testing.T) {
	wb := newWorkbook(t)
	area := gridcell.MergeArea{Top: 1, Left: 1, Bottom: 2, Right: 2}

	anchor := gridcell.CellKey{Row: 1, Col: 1}
	got, ok := wb.Attributes(anchor).MergeArea()
	require.True(t, ok)
	assert.Equal(t, area, got)

	member := gridcell.CellKey{Row: 2, Col: 2}
	_, ok = wb.Attributes(member).MergeArea()
	assert.False(t, ok, "only the anchor carries the merge area")

	owner, ok := wb.MergingCell(member)
	require.True(t, ok)
	assert.Equal(t, anchor, owner)

	_, ok = wb.MergingCell(gridcell.CellKey{Row: 1, Col: 1, Table: 1})
	assert.False(t, ok, "merges are per sheet")
}

func TestValues(t *testing.T) {
	wb := newWorkbook(t)

	assert.Equal(t, "title", wb.Value(gridcell.CellKey{}))
	assert.Nil(t, wb.Value(gridcell.CellKey{Row: 10, Col: 10}))
	assert.Nil(t, wb.Value(gridcell.CellKey{Table: 5}))

	assert.Equal(t, "=D1*2", wb.Definition(gridcell.CellKey{Row: 1, Col: 3}))
	assert.Equal(t, "2", wb.Definition(gridcell.CellKey{Row: 0, Col: 3}))
	assert.Nil(t, wb.Definition(gridcell.CellKey{Row: 10, Col: 10}))
}

func TestStyleAttributes(t *testing.T) {
	wb := newWorkbook(t)
	attrs := wb.Attributes(gridcell.CellKey{})

	assert.Equal(t, "#ff0000", attrs[gridcell.AttrBackground])
	assert.InDelta(t, 14.0, attrs.Float(gridcell.AttrFontSize, 0), 1e-9)
	assert.Equal(t, "center", attrs[gridcell.AttrJustification])
	assert.Equal(t, "middle", attrs[gridcell.AttrVerticalAlign])

	assert.Empty(t, wb.Attributes(gridcell.CellKey{Row: 3, Col: 3}))
}

func TestSizes(t *testing.T) {
	wb := newWorkbook(t)

	assert.InDelta(t, defaultRowHeight*pixelsPerPoint, wb.RowHeight(0, 0), 1e-9, "unset rows use the default height")
	assert.InDelta(t, 40.0, wb.RowHeight(0, 4), 1e-9)
	assert.InDelta(t, 145.0, wb.ColumnWidth(0, 4), 1e-9)
	assert.InDelta(t, defaultColWidth*pixelsPerCharUnit+columnPadding, wb.ColumnWidth(0, 0), 1e-9)
	assert.InDelta(t, defaultRowHeight*pixelsPerPoint, wb.RowHeight(9, 0), 1e-9)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 42))
	require.NoError(t, f.MergeCell("Sheet1", "A2", "B2"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "42", wb.Value(gridcell.CellKey{}))
	owner, ok := wb.MergingCell(gridcell.CellKey{Row: 1, Col: 1})
	require.True(t, ok)
	assert.Equal(t, gridcell.CellKey{Row: 1}, owner)

	_, err = Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

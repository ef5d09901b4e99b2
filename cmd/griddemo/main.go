// Command griddemo renders the visible part of a spreadsheet to a PNG file.
//
// Without --xlsx a built-in sample sheet is drawn.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/gogpu/gridcell"
	"github.com/gogpu/gridcell/config"
	"github.com/gogpu/gridcell/content"
	"github.com/gogpu/gridcell/sheet"
	"github.com/gogpu/gridcell/viewport"
	"github.com/gogpu/gridcell/xlsx"
)

type demoFlags struct {
	xlsxPath   string
	sheetName  string
	configPath string
	output     string
	width      int
	height     int
	zoom       float64
	scrollRow  int
	scrollCol  int
	cursorRow  int
	cursorCol  int
	selection  string
	verbose    bool
}

func main() {
	var f demoFlags

	rootCmd := &cobra.Command{
		Use:   "griddemo",
		Short: "Render spreadsheet cells to a PNG",
		Long: `griddemo draws the visible cells of a sheet through the gridcell
renderer, including merged cells, selection and the cursor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.verbose {
				gridcell.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			dc, err := render(f)
			if err != nil {
				return err
			}
			if err := dc.SavePNG(f.output); err != nil {
				return fmt.Errorf("save %s: %w", f.output, err)
			}
			cmd.Printf("Grid saved to %s (%dx%d)\n", f.output, f.width, f.height)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&f.xlsxPath, "xlsx", "", "Excel workbook to render (default: sample sheet)")
	flags.StringVar(&f.sheetName, "sheet", "", "Sheet name within the workbook (default: first)")
	flags.StringVarP(&f.configPath, "config", "c", "", "TOML renderer configuration")
	flags.StringVarP(&f.output, "output", "o", "grid.png", "Output file")
	flags.IntVar(&f.width, "width", 800, "Image width")
	flags.IntVar(&f.height, "height", 400, "Image height")
	flags.Float64Var(&f.zoom, "zoom", 0, "Zoom factor (overrides the configuration)")
	flags.IntVar(&f.scrollRow, "scroll-row", 0, "First visible row")
	flags.IntVar(&f.scrollCol, "scroll-col", 0, "First visible column")
	flags.IntVar(&f.cursorRow, "cursor-row", 0, "Cursor row")
	flags.IntVar(&f.cursorCol, "cursor-col", 0, "Cursor column")
	flags.StringVar(&f.selection, "select", "", "Selected range, e.g. B2:C4")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log renderer activity to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// store is what the demo needs from a cell source.
type store interface {
	gridcell.AttributeStore
	gridcell.ValueSource
}

func render(f demoFlags) (*gg.Context, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	if f.zoom > 0 {
		cfg.Zoom = f.zoom
	}

	sel, err := parseSelection(f.selection)
	if err != nil {
		return nil, err
	}

	var (
		src   store
		table int
		sizes viewport.Sizes
	)
	if f.xlsxPath != "" {
		wb, err := xlsx.Open(f.xlsxPath)
		if err != nil {
			return nil, err
		}
		defer wb.Close()
		if f.sheetName != "" {
			if table, err = wb.Table(f.sheetName); err != nil {
				return nil, err
			}
		}
		src, sizes = wb, wb
	} else {
		src = sampleSheet()
	}

	vp := viewport.New(src, f.width, f.height)
	if sizes != nil {
		vp.SetSizes(sizes)
	}
	vp.SetTable(table)
	if err := vp.SetZoom(cfg.Zoom); err != nil {
		return nil, err
	}
	vp.ScrollTo(f.scrollRow, f.scrollCol)
	vp.SetCursor(f.cursorRow, f.cursorCol)

	text, err := content.NewTextRenderer(src, src)
	if err != nil {
		return nil, err
	}
	r := gridcell.New(src, src, text, cfg.Options()...)
	defer r.Close()

	dc := gg.NewContext(f.width, f.height)
	dc.ClearWithColor(gg.White)
	top, left, bottom, right := vp.VisibleRange()
	if err := r.DrawRange(dc, vp, top, left, bottom, right, sel); err != nil {
		return nil, err
	}
	return dc, nil
}

// parseSelection parses an A1 range such as "B2:C4" or a single cell.
func parseSelection(s string) (func(row, col int) bool, error) {
	if s == "" {
		return nil, nil
	}
	from, to, _ := strings.Cut(s, ":")
	if to == "" {
		to = from
	}
	c0, r0, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return nil, fmt.Errorf("invalid selection %q: %w", s, err)
	}
	c1, r1, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return nil, fmt.Errorf("invalid selection %q: %w", s, err)
	}
	top, bottom := min(r0, r1)-1, max(r0, r1)-1
	left, right := min(c0, c1)-1, max(c0, c1)-1
	return func(row, col int) bool {
		return row >= top && row <= bottom && col >= left && col <= right
	}, nil
}

// sampleSheet builds a small sheet with a header, a merged block and a
// button.
func sampleSheet() *sheet.Store {
	s := sheet.New(nil)
	for col, title := range []string{"Item", "Qty", "Price", "Total"} {
		k := gridcell.CellKey{Col: col}
		s.SetCode(k, title)
		s.SetAttr(k, gridcell.AttrBackground, "#dde4ee")
		s.SetAttr(k, gridcell.AttrJustification, content.AlignCenter)
	}
	for row, item := range []string{"Apples", "Pears", "Plums"} {
		s.SetCode(gridcell.CellKey{Row: row + 1}, item)
		s.SetCode(gridcell.CellKey{Row: row + 1, Col: 1}, fmt.Sprint(row+2))
		s.SetAttr(gridcell.CellKey{Row: row + 1, Col: 1}, gridcell.AttrJustification, content.AlignRight)
	}

	merged := gridcell.CellKey{Row: 5, Col: 1}
	s.SetCode(merged, "X")
	s.SetAttr(merged, gridcell.AttrJustification, content.AlignCenter)
	s.SetAttr(merged, gridcell.AttrVerticalAlign, content.AlignMiddle)
	s.SetAttr(merged, gridcell.AttrBackground, "#fff2cc")
	_ = s.Merge(0, gridcell.MergeArea{Top: 5, Left: 1, Bottom: 6, Right: 2})

	button := gridcell.CellKey{Row: 5, Col: 4}
	s.SetCode(button, "recalc()")
	s.SetButton(button, "Recalculate")
	return s
}

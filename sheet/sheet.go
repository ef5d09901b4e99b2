// Package sheet is an in-memory cell store. It implements
// gridcell.AttributeStore and gridcell.ValueSource and keeps each cell's
// code separate from its evaluated value.
package sheet

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/gogpu/gridcell"
)

var (
	// ErrOverlappingMerge is returned when a merge would intersect another.
	ErrOverlappingMerge = errors.New("sheet: overlapping merge area")

	// ErrInvalidMerge is returned for inverted or single-cell areas.
	ErrInvalidMerge = errors.New("sheet: invalid merge area")
)

// Evaluator turns a cell's code into its value. It is called by Value and
// never by Definition.
type Evaluator func(key gridcell.CellKey, code string) (any, error)

// Identity is the default Evaluator: a cell's value is its code.
func Identity(_ gridcell.CellKey, code string) (any, error) {
	return code, nil
}

type mergeEntry struct {
	table int
	area  gridcell.MergeArea
}

// Store holds cell code, attributes and merge areas. Safe for concurrent
// use.
type Store struct {
	mu     sync.RWMutex
	code   map[gridcell.CellKey]string
	attrs  map[gridcell.CellKey]gridcell.Attributes
	merges []mergeEntry
	eval   Evaluator
}

// New creates an empty store. A nil eval means Identity.
func New(eval Evaluator) *Store {
	if eval == nil {
		eval = Identity
	}
	return &Store{
		code:  make(map[gridcell.CellKey]string),
		attrs: make(map[gridcell.CellKey]gridcell.Attributes),
		eval:  eval,
	}
}

// SetCode sets the code of key. An empty code clears the cell.
func (s *Store) SetCode(key gridcell.CellKey, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == "" {
		delete(s.code, key)
		return
	}
	s.code[key] = code
}

// SetAttr sets one attribute of key. Merge areas are managed with Merge.
func (s *Store) SetAttr(key gridcell.CellKey, name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attrs[key]
	if !ok {
		a = make(gridcell.Attributes)
		s.attrs[key] = a
	}
	a[name] = value
}

// SetButton marks key as a button cell with the given label.
func (s *Store) SetButton(key gridcell.CellKey, label string) {
	s.SetAttr(key, gridcell.AttrButtonCell, label)
}

// Merge joins the cells of area in table. Areas may not overlap.
func (s *Store) Merge(table int, area gridcell.MergeArea) error {
	if area.Bottom < area.Top || area.Right < area.Left ||
		(area.Bottom == area.Top && area.Right == area.Left) {
		return fmt.Errorf("%w: %+v", ErrInvalidMerge, area)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.merges {
		if m.table == table && overlaps(m.area, area) {
			return fmt.Errorf("%w: %+v intersects %+v", ErrOverlappingMerge, area, m.area)
		}
	}
	s.merges = append(s.merges, mergeEntry{table: table, area: area})
	return nil
}

// Unmerge removes the merge anchored at anchor. Reports whether one existed.
func (s *Store) Unmerge(anchor gridcell.CellKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.merges {
		if m.table == anchor.Table && m.area.IsAnchor(anchor.Row, anchor.Col) {
			s.merges = append(s.merges[:i], s.merges[i+1:]...)
			return true
		}
	}
	return false
}

func overlaps(a, b gridcell.MergeArea) bool {
	return a.Left <= b.Right && b.Left <= a.Right && a.Top <= b.Bottom && b.Top <= a.Bottom
}

// findMerge returns the merge containing key. Caller holds s.mu.
func (s *Store) findMerge(key gridcell.CellKey) (gridcell.MergeArea, bool) {
	for _, m := range s.merges {
		if m.table == key.Table && m.area.Contains(key.Row, key.Col) {
			return m.area, true
		}
	}
	return gridcell.MergeArea{}, false
}

// Attributes returns a copy of key's attributes. Merge anchors also carry
// their area under gridcell.AttrMergeArea; other members do not.
func (s *Store) Attributes(key gridcell.CellKey) gridcell.Attributes {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := maps.Clone(s.attrs[key])
	if area, ok := s.findMerge(key); ok && area.IsAnchor(key.Row, key.Col) {
		if a == nil {
			a = make(gridcell.Attributes, 1)
		}
		a[gridcell.AttrMergeArea] = area
	}
	if a == nil {
		a = gridcell.Attributes{}
	}
	return a
}

// MergingCell returns the anchor of the merge containing key.
func (s *Store) MergingCell(key gridcell.CellKey) (gridcell.CellKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	area, ok := s.findMerge(key)
	if !ok {
		return gridcell.CellKey{}, false
	}
	return area.Anchor(key.Table), true
}

// Definition returns key's code, or nil for empty cells.
func (s *Store) Definition(key gridcell.CellKey) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.code[key]
	if !ok {
		return nil
	}
	return code
}

// Value evaluates key's code. Evaluation failures are returned as the
// value, the way a spreadsheet shows an error in the cell.
func (s *Store) Value(key gridcell.CellKey) any {
	s.mu.RLock()
	code, ok := s.code[key]
	eval := s.eval
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	v, err := eval(key, code)
	if err != nil {
		return err
	}
	return v
}

var (
	_ gridcell.AttributeStore = (*Store)(nil)
	_ gridcell.ValueSource    = (*Store)(nil)
)

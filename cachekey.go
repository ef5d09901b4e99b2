package gridcell

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxPreviewRunes bounds the content preview stored in a DrawCacheKey.
const MaxPreviewRunes = 100

// DrawCacheKey identifies the pixels of a rendered cell. Two cells with
// equal keys render identically and share a cached Surface. The struct is
// comparable; equality is structural.
type DrawCacheKey struct {
	// Width and Height are the device size divided by Zoom.
	Width, Height float64

	// Zoom is the zoom factor the surface was painted at. The painted
	// surface is zoom dependent even though Width and Height are not.
	Zoom float64

	Selected bool

	// Preview is a bounded representation of the cell content.
	Preview string

	// Attributes is the canonical encoding of AttributePairs.
	Attributes string
}

// hash feeds every field of k into FNV-1a for shard selection.
func (k DrawCacheKey) hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, f := range [...]float64{k.Width, k.Height, k.Zoom} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	if k.Selected {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte(k.Preview))
	_, _ = h.Write([]byte(k.Attributes))
	return h.Sum64()
}

// AttributePair is one (name, value) entry of an attribute set.
type AttributePair struct {
	Name  string
	Value any
}

// AttributePairs returns the entries of attrs sorted by name.
func AttributePairs(attrs Attributes) []AttributePair {
	pairs := make([]AttributePair, 0, len(attrs))
	for name, value := range attrs {
		pairs = append(pairs, AttributePair{Name: name, Value: value})
	}
	slices.SortFunc(pairs, func(a, b AttributePair) int {
		return strings.Compare(a.Name, b.Name)
	})
	return pairs
}

// encodeAttributes renders sorted pairs into a comparable string. Names are
// quoted so that separators inside names cannot make two sets collide.
func encodeAttributes(pairs []AttributePair) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(strconv.Quote(p.Name))
		sb.WriteByte('=')
		fmt.Fprintf(&sb, "%#v", p.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Preview returns the cache-key representation of a cell value: its Go
// syntax form, NFC normalized, cut to MaxPreviewRunes runes.
func Preview(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case error:
		s = "error(" + strconv.Quote(x.Error()) + ")"
	default:
		s = fmt.Sprintf("%#v", x)
	}
	s = norm.NFC.String(s)
	if utf8.RuneCountInString(s) <= MaxPreviewRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxPreviewRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// CacheKeyBuilder derives DrawCacheKeys from cell state.
type CacheKeyBuilder struct {
	attrs  AttributeStore
	values ValueSource
}

// NewCacheKeyBuilder creates a builder over the given collaborators.
func NewCacheKeyBuilder(attrs AttributeStore, values ValueSource) *CacheKeyBuilder {
	return &CacheKeyBuilder{attrs: attrs, values: values}
}

// Build returns the cache key of key drawn into drawn at zoom.
//
// Button cells are previewed through their definition: evaluating a button
// cell may run its action, so Build never asks for its value.
func (b *CacheKeyBuilder) Build(key CellKey, drawn Rect, zoom float64, selected bool) DrawCacheKey {
	attrs := b.attrs.Attributes(key)

	var content any
	if attrs.IsButton() {
		content = b.values.Definition(key)
	} else {
		content = b.values.Value(key)
	}

	return DrawCacheKey{
		Width:      float64(drawn.Width) / zoom,
		Height:     float64(drawn.Height) / zoom,
		Zoom:       zoom,
		Selected:   selected,
		Preview:    Preview(content),
		Attributes: encodeAttributes(AttributePairs(attrs)),
	}
}

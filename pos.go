package schemelet

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// FilePos is a 1-based line/column position within a source buffer.
// The reader records one of these for every value it produces, kept
// in a side-table (not inline on Value) so plain in-memory
// construction of values — by macros, by native procedures, by the
// quasiquote lowerer — never has to fabricate a position.
type FilePos struct {
	File   *Symbol
	Line   int
	Column int
	Cursor int
}

func (p FilePos) String() string {
	if p.Line == 0 {
		return "?"
	}
	if p.File != nil {
		return fmt.Sprintf("%s:%d:%d", p.File.Name, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsSet reports whether p carries a real position, as opposed to
// being the zero value returned by PosOf for a value the reader never
// produced.
func (p FilePos) IsSet() bool { return p.Line != 0 }

// LineIndex converts byte cursor offsets into FilePos values. It
// records the start byte offset of each line and binary searches on
// lookup.
type LineIndex struct {
	input     []byte
	lineStart []int
}

// NewLineIndex builds a LineIndex over input. Construction is O(n);
// callers should build one per source buffer and reuse it for every
// position lookup against that buffer.
func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

// PosOf returns the recorded position for v, or the zero FilePos if
// none was recorded — true for anything not produced directly by the
// reader (host-constructed values, compiler artifacts), except macro
// output that kept its position annotations, which unannotate records.
func (ctx *Context) PosOf(v Value) FilePos {
	return ctx.positions[v]
}

func (ctx *Context) setPos(v Value, pos FilePos) {
	ctx.positions[v] = pos
}

// At converts a byte cursor offset into a FilePos.
func (li *LineIndex) At(cursor int) FilePos {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := utf8.RuneCount(li.input[lineStart:cursor]) + 1

	return FilePos{Line: lineIdx + 1, Column: col, Cursor: cursor}
}

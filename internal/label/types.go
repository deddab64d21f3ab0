package label

import "sort"

// Position locates a byte offset within a document. Line and Column are
// 1-based and computed from the same snapshot the offset came from.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Label is a named anchor discovered in a document. Context is a short
// text window around the declaration for disambiguation display; it is
// advisory only and nothing depends on its exact shape.
type Label struct {
	Name     string   `json:"name"`
	Location Position `json:"location"`
	Context  string   `json:"context"`
}

// Index is the ordered result of one document scan. It is rebuilt on
// demand and never cached across calls, so it is always consistent with
// the text it was built from.
type Index []Label

// Names returns the label names in index order.
func (ix Index) Names() []string {
	names := make([]string, len(ix))
	for i, l := range ix {
		names[i] = l.Name
	}
	return names
}

// Contains reports whether name is declared in the index.
func (ix Index) Contains(name string) bool {
	for _, l := range ix {
		if l.Name == name {
			return true
		}
	}
	return false
}

// lineStarts returns the byte offset of the first character of each line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineIndexAt returns the 0-based line index containing offset.
func lineIndexAt(starts []int, offset int) int {
	// First line whose start is past the offset, minus one.
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	return i - 1
}

// positionAt converts a byte offset to a Position using precomputed line
// starts for the same text.
func positionAt(starts []int, offset int) Position {
	li := lineIndexAt(starts, offset)
	return Position{
		Offset: offset,
		Line:   li + 1,
		Column: offset - starts[li] + 1,
	}
}

package diagfmt

import "liberty/internal/source"

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк вокруг основной
	PathMode  source.PathMode
	Width     uint8 // обрезка строк исходника, 0 - без обрезки
	ShowNotes bool
	ShowFixes bool
	Max       int
}

// JSONOpts configures JSON. Max trims the output only; the Bag keeps
// everything.
type JSONOpts struct {
	IncludePositions bool
	PathMode         source.PathMode
	Max              int
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool // строки до и после каждой правки
}

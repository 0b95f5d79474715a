package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // то же для входов фаззера
)

// inlineSeeds cover the corners of the grammar the testdata files do not.
var inlineSeeds = []string{
	"",
	"library (x) { }",
	"library(x){a:1;b:2.5e-3;c:-4;}",
	"library (x) { pin (0A) { t : 1ns ; } }",
	"library (x) { f : \"(A+B)'^C & !D | 1\" ; }",
	"library (x) { vil : 0.3 * (VDD - 0.1) / 2 ; }",
	"library (x) { values (\"1, 2\", \"3, 4\") ; }",
	"library (x) { ff (IQ, IQN) { } ff_bank (a, b, 4) { } }",
	"library (x) { a : 1 }\ntrailing",
	"library (x) { /* unterminated",
	"library (x) { s : \"unterminated\n } ",
	"library (x) { a : 1. ; b : 1e ; }",
	"library (x) { \\\n a : 1 ; }",
	"library (x) { a ( ( ( ( ) ) ) ) ; }",
	"library (x) {{{{{{{{",
	"\x00\xff\r\n\r",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lib файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".lib" && ext != ".liberty" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

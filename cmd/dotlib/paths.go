package main

import (
	"fmt"
	"os"
)

func isDir(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return st.IsDir(), nil
}

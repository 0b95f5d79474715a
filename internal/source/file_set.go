package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file of a run. Adding is not safe for concurrent use;
// once filled, a FileSet may be read from any number of goroutines.
type FileSet struct {
	files   []*File
	latest  map[string]FileID // нормализованный путь -> последняя версия
	baseDir string
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase creates a FileSet whose relative paths are rendered
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the base directory, falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Len counts every version ever added.
func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content under path. Adding the same path again creates a
// new version with a new id; older ids stay valid.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f := &File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	fs.latest[f.Path] = f.ID
	return f.ID
}

// Load reads path, drops a UTF-8 BOM and folds CRLF and CR into LF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт пользователь CLI
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	content, folded := normalizeNewlines(content)
	if folded {
		flags |= FileNormalizedNewlines
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file as is; the lexer copes with stray \r.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file with id, nil if there is none.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) < len(fs.files) {
		return fs.files[id]
	}
	return nil
}

// GetLatest returns the newest version registered under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts both ends of span. It panics on a foreign FileID.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return f.LineCol(span.Start), f.LineCol(span.End)
}

package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"liberty/internal/diag"
	"liberty/internal/source"
	"liberty/internal/token"
	"liberty/internal/trace"
)

// LibExtensions are the file suffixes picked up by directory walks.
var LibExtensions = []string{".lib", ".liberty"}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

func isLibFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range LibExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListLibFiles возвращает отсортированный список всех .lib файлов в директории
func ListLibFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isLibFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loadAll registers every file in one FileSet before the workers start, so
// that workers only read it. A file that cannot be read is registered empty,
// so that its diagnostic still names it, and its error is in loadErrors.
func loadAll(dir string, files []string) (*source.FileSet, map[string]source.FileID, map[string]error) {
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}
	return fileSet, fileIDs, loadErrors
}

func loadErrorBag(path string, file source.FileID, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file},
		fmt.Sprintf("failed to load file %s: %v", path, err)))
	return bag
}

func workers(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, files), 1)
}

// TokenizeDir токенизирует все .lib файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int, symbol bool) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListLibFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	fileSet, fileIDs, loadErrors := loadAll(dir, files)

	ctx, dirSpan := trace.BeginCtx(ctx, trace.ScopeDriver, "tokenize_dir")
	defer dirSpan.End(dir)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, bad := loadErrors[path]; bad {
				results[i] = TokenizeDirResult{Path: path, FileID: fileIDs[path], Bag: loadErrorBag(path, fileIDs[path], loadErr, maxDiagnostics)}
				return nil
			}
			fileID := fileIDs[path]
			bag := diag.NewBag(maxDiagnostics)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokenizeFile(fileSet.Get(fileID), bag, symbol),
				Bag:    bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir парсит все .lib файлы в директории параллельно. Каждый файл
// получает свой ast.Mgr и свой Bag; общий только FileSet, который к
// началу работы уже заполнен. Результаты идут в порядке ListLibFiles.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*ParseResult, error) {
	files, err := ListLibFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}
	fileSet, fileIDs, loadErrors := loadAll(dir, files)

	ctx, dirSpan := trace.BeginCtx(ctx, trace.ScopeDriver, "parse_dir")
	defer func() { dirSpan.WithExtra("files", fmt.Sprint(len(files))).End(dir) }()

	results := make([]*ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, bad := loadErrors[path]; bad {
				results[i] = &ParseResult{
					Path:    path,
					FileSet: fileSet,
					FileID:  fileIDs[path],
					Bag:     loadErrorBag(path, fileIDs[path], loadErr, opts.MaxDiagnostics),
				}
				opts.Observer.emit(PhaseEvent{Name: "load", Path: path, Status: PhaseEnd})
				return nil
			}
			started := time.Now()
			fctx, span := trace.BeginCtx(gctx, trace.ScopeFile, "file")
			res := parseLoaded(fctx, fileSet, fileIDs[path], opts, newTimer(opts.EnableTimings))
			span.WithExtra("ok", fmt.Sprint(res.OK)).End(path)
			results[i] = res
			opts.Observer.emit(PhaseEvent{Name: "file", Path: path, Status: PhaseEnd, Elapsed: time.Since(started), OK: res.OK})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// Failed reports whether any result did not parse.
func Failed(results []*ParseResult) bool {
	for _, r := range results {
		if r == nil || !r.OK {
			return true
		}
	}
	return false
}

package driver

import (
	"context"
	"fmt"
	"time"

	"liberty/internal/ast"
	"liberty/internal/diag"
	"liberty/internal/observ"
	"liberty/internal/parser"
	"liberty/internal/source"
	"liberty/internal/trace"
)

// Options configures Parse and ParseDir.
type Options struct {
	Parser         parser.Options // Reporter игнорируется: диагностики идут в Bag результата
	MaxDiagnostics int
	Jobs           int        // только ParseDir; <= 0 — GOMAXPROCS
	Cache          *DiskCache // nil — без кэша
	NeedTree       bool       // из кэша дерево не восстановить, поэтому читаем кэш только без NeedTree
	EnableTimings  bool
	Observer       PhaseObserver
}

type ParseResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	FileID  source.FileID
	Mgr     *ast.Mgr // nil, если результат взят из кэша
	Root    ast.NodeID
	Bag     *diag.Bag
	OK      bool
	Stats   map[string]uint32
	Cached  bool
	Timing  *observ.Report
}

// Parse loads and parses a single file. The error is non-nil only when
// the file cannot be read; parse problems are in the result's Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := newTimer(opts.EnableTimings)

	opts.Observer.emit(PhaseEvent{Name: "load", Path: path, Status: PhaseStart})
	started := time.Now()
	loadIdx := timer.begin("load_file")
	_, span := trace.BeginCtx(ctx, trace.ScopePass, "load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	span.WithExtra("file", path).End(errText(err))
	timer.end(loadIdx, "")
	opts.Observer.emit(PhaseEvent{Name: "load", Path: path, Status: PhaseEnd, Elapsed: time.Since(started), OK: err == nil})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diag.ErrIO, err)
	}
	return parseLoaded(ctx, fs, fileID, opts, timer), nil
}

// parseLoaded parses a file already registered in fs. fs is only read, so
// several goroutines may share it.
func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *phaseTimer) *ParseResult {
	file := fs.Get(fileID)
	res := &ParseResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		FileID:  fileID,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	defer func() {
		if timer.enabled() {
			report := timer.report()
			res.Timing = &report
			appendTimings(res.Bag, res.FileID, res.Path, report)
		}
	}()

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Content, opts.Parser)
		if !opts.NeedTree && loadCached(ctx, opts, key, res, timer) {
			return res
		}
	}

	popts := opts.Parser
	popts.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	opts.Observer.emit(PhaseEvent{Name: "parse", Path: res.Path, Status: PhaseStart})
	started := time.Now()
	parseIdx := timer.begin("parse")
	m := ast.NewMgr(popts.Hints, nil)
	pr := parser.ParseFile(ctx, fs, fileID, m, popts)
	res.Mgr, res.Root, res.OK = m, pr.Root, pr.OK
	res.Stats = m.Stats().Map()
	timer.end(parseIdx, fmt.Sprintf("nodes=%d", m.Stats().Total()))
	opts.Observer.emit(PhaseEvent{Name: "parse", Path: res.Path, Status: PhaseEnd, Elapsed: time.Since(started), OK: res.OK})

	if opts.Cache != nil {
		storeIdx := timer.begin("cache_store")
		payload := newPayload(res.Path, file.Content, key, res.OK, res.Bag, res.Stats)
		if err := opts.Cache.Put(key, payload); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: res.FileID},
				fmt.Sprintf("cannot write cache entry for %s: %v", res.Path, err)))
		}
		timer.end(storeIdx, "")
	}
	return res
}

func loadCached(ctx context.Context, opts Options, key Digest, res *ParseResult, timer *phaseTimer) bool {
	opts.Observer.emit(PhaseEvent{Name: "cache", Path: res.Path, Status: PhaseStart})
	started := time.Now()
	idx := timer.begin("cache_lookup")
	_, span := trace.BeginCtx(ctx, trace.ScopePass, "cache")

	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		// битая запись — парсим заново и перезаписываем
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: res.FileID},
			fmt.Sprintf("cannot read cache entry for %s: %v", res.Path, err)))
		hit = false
	}
	if hit {
		payload.restore(res.FileID, res.Bag)
		res.OK = payload.OK
		res.Stats = payload.Stats
		res.Cached = true
	}
	note := "miss"
	if hit {
		note = "hit"
	}
	timer.end(idx, note)
	span.WithExtra("key", key.String()).End(note)
	opts.Observer.emit(PhaseEvent{Name: "cache", Path: res.Path, Status: PhaseEnd, Elapsed: time.Since(started), OK: hit})
	return hit
}

func errText(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

// phaseTimer is an observ.Timer that may be switched off.
type phaseTimer struct{ t *observ.Timer }

func newTimer(enabled bool) *phaseTimer {
	if !enabled {
		return &phaseTimer{}
	}
	return &phaseTimer{t: observ.NewTimer()}
}

func (p *phaseTimer) enabled() bool { return p != nil && p.t != nil }

func (p *phaseTimer) begin(name string) int {
	if !p.enabled() {
		return -1
	}
	return p.t.Begin(name)
}

func (p *phaseTimer) end(idx int, note string) {
	if !p.enabled() || idx < 0 {
		return
	}
	p.t.End(idx, note)
}

func (p *phaseTimer) report() observ.Report {
	if !p.enabled() {
		return observ.Report{}
	}
	return p.t.Report()
}

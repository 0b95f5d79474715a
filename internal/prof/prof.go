package prof

import (
	"errors"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session starts CPU profiling and the runtime tracer for the non-empty
// paths. The returned stop ends both, closes their files and, when memPath
// is set, writes a heap profile. Only one session may run at a time.
func Session(cpuPath, memPath, tracePath string) (stop func() error, err error) {
	var stops []func() error
	stopAll := func() error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i]())
		}
		return errors.Join(errs...)
	}

	if cpuPath != "" {
		s, err := start(cpuPath, pprof.StartCPUProfile, pprof.StopCPUProfile)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	if tracePath != "" {
		s, err := start(tracePath, trace.Start, trace.Stop)
		if err != nil {
			return nil, errors.Join(err, stopAll())
		}
		stops = append(stops, s)
	}
	return func() error {
		err := stopAll()
		if memPath != "" {
			err = errors.Join(err, WriteMem(memPath))
		}
		return err
	}, nil
}

// start opens path and hands it to begin; the returned func calls end and
// closes the file.
func start(path string, begin func(io.Writer) error, end func()) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := begin(f); err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return func() error {
		end()
		return f.Close()
	}, nil
}

// WriteMem writes a heap profile after forcing a GC.
func WriteMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

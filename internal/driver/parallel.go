package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CheckStage labels the progress of one file through a batch check.
type CheckStage uint8

const (
	StageQueued CheckStage = iota
	StageChecking
	StageDone
	StageFailed
)

func (s CheckStage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageChecking:
		return "checking"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// CheckEvent reports one file moving between stages. Consumed by the
// progress UI.
type CheckEvent struct {
	Path  string
	Stage CheckStage
}

// DirResult is the outcome of checking one file of a directory batch.
// Signatures is populated both for fresh checks and cache hits; Result
// is nil when the cache short-circuited the pipeline.
type DirResult struct {
	Path       string
	Result     *CheckResult
	Signatures []string
	Err        error
	Cached     bool
}

// ListSourceFiles returns the sorted list of *.tc files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".tc") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Deterministic order regardless of walk details.
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.tc file under dir in parallel. Result order
// matches the sorted file list. A non-nil cache short-circuits files
// whose content hash already has a clean cached result. Events, when
// non-nil, receives stage transitions and is closed before return.
func CheckDir(ctx context.Context, dir string, opts CheckOptions, jobs int, cache *DiskCache, events chan<- CheckEvent) ([]DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if events != nil {
		defer close(events)
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// One slot per file; no mutex needed.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	emit := func(ev CheckEvent) {
		if events != nil {
			events <- ev
		}
	}

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(CheckEvent{Path: path, Stage: StageChecking})
			res := checkWithCache(path, opts, cache)
			results[i] = res

			stage := StageDone
			if res.Err != nil || (res.Result != nil && res.Result.Bag.HasErrors()) {
				stage = StageFailed
			}
			emit(CheckEvent{Path: path, Stage: stage})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkWithCache consults the disk cache before doing real work. Only
// clean results are ever cached, so a hit can skip the pipeline.
func checkWithCache(path string, opts CheckOptions, cache *DiskCache) DirResult {
	out := DirResult{Path: path}
	if cache == nil {
		out.Result, out.Err = Check(path, opts)
		if out.Result != nil {
			out.Signatures = out.Result.RenderedSignatures()
		}
		return out
	}

	key, err := HashFile(path)
	if err != nil {
		out.Err = err
		return out
	}
	var payload CheckPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		out.Cached = true
		out.Signatures = payload.Signatures
		return out
	}

	out.Result, out.Err = Check(path, opts)
	if out.Err != nil {
		return out
	}
	out.Signatures = out.Result.RenderedSignatures()
	if !out.Result.Bag.HasErrors() && !out.Result.Bag.HasWarnings() {
		_ = cache.Put(key, &CheckPayload{
			Schema:     checkCacheSchemaVersion,
			Path:       path,
			Signatures: out.Signatures,
		})
	}
	return out
}

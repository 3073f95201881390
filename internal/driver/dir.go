package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"decaf/internal/diag"
	"decaf/internal/observ"
	"decaf/internal/source"
	"decaf/internal/trace"
)

// SourceExt is the extension CheckDir picks up.
const SourceExt = ".decaf"

// ListSources возвращает отсортированный список всех *.decaf файлов в директории
func ListSources(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
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

// CheckDir checks every *.decaf file under dir in parallel. Results come
// back in path order. A file that fails to load yields an IOLoadFileError
// diagnostic instead of aborting the run.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check_dir", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", strconv.Itoa(len(files)))
	ctx = trace.WithSpan(ctx, span)

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	loadMS := make(map[string]observ.Report, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		var timer *observ.Timer
		if opts.Timings {
			timer = observ.NewTimer()
		}
		stop := timer.Track(string(StageLoad))
		fileID, loadErr := fileSet.Load(path)
		stop("")
		if loadErr != nil {
			// пустая запись, чтобы диагностика указывала на свой путь
			loadErrors[path] = loadErr
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
		loadMS[path] = timer.Report()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(&diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: fileIDs[path]},
				})
				results[i] = FileResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Errors: 1})
				return nil
			}

			var timer *observ.Timer
			if opts.Timings {
				timer = observ.NewTimer()
			}
			res, checkErr := checkLoaded(gctx, fileSet.Get(fileIDs[path]), opts, timer)
			if checkErr != nil {
				return checkErr
			}
			if res.Timing != nil {
				merged := loadMS[path].Merge(*res.Timing)
				res.Timing = &merged
			}
			results[i] = res
			return nil
		})
	}

	err = g.Wait()
	span.End("")
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

// MergeTimings sums per-file timing reports.
func MergeTimings(results []FileResult) observ.Report {
	var total observ.Report
	for i := range results {
		if results[i].Timing != nil {
			total = total.Merge(*results[i].Timing)
		}
	}
	return total
}

// MergeBags collects every file bag into one sorted bag.
func MergeBags(results []FileResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for i := range results {
		if results[i].Bag != nil {
			out.Merge(results[i].Bag)
		}
	}
	out.Sort()
	return out
}

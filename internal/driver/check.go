package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/lexer"
	"decaf/internal/observ"
	"decaf/internal/parser"
	"decaf/internal/sema"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/trace"
	"decaf/internal/types"
)

// Options configure a check run.
type Options struct {
	MaxDiagnostics int
	// Jobs limits parallel files in CheckDir; <= 0 means GOMAXPROCS.
	Jobs        int
	RequireMain bool
	Timings     bool
	Progress    ProgressSink
	// CrashOut receives the trace ring when checking a file panics; nil is stderr.
	CrashOut io.Writer
}

// FileResult holds everything produced for one source file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Builder *ast.Builder
	ASTFile ast.FileID
	Bound   *symbols.Result
	Sema    *sema.Result
	Timing  *observ.Report
}

// Errors counts error-severity diagnostics.
func (r *FileResult) Errors() int {
	if r == nil || r.Bag == nil {
		return 0
	}
	n := 0
	for _, d := range r.Bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// CheckFile loads path and runs lex, parse, bind and check over it.
// Only I/O failures are returned as errors; everything else is a diagnostic.
func CheckFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	stop := timer.Track(string(StageLoad))
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	stop("")
	if err != nil {
		return fs, nil, err
	}

	res, err := checkLoaded(ctx, fs.Get(fileID), opts, timer)
	if err != nil {
		return fs, nil, err
	}
	return fs, &res, nil
}

// checkLoaded runs the frontend over an already loaded file and recovers a
// panic into an error after dumping the trace ring.
func checkLoaded(ctx context.Context, file *source.File, opts Options, timer *observ.Timer) (res FileResult, err error) {
	tracer := trace.FromContext(ctx)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ring := trace.RingOf(tracer); ring != nil {
			out := opts.CrashOut
			if out == nil {
				out = os.Stderr
			}
			// best effort: the panic is what gets reported
			_ = ring.Dump(out, trace.FormatText)
		}
		err = fmt.Errorf("internal error while checking %s: %v", file.Path, r)
	}()

	span := trace.Begin(tracer, trace.ScopeDriver, "file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path)
	ctx = trace.WithSpan(ctx, span)

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	res = FileResult{Path: file.Path, FileID: file.ID, Bag: bag}
	notify := func(stage Stage, status Status) {
		emit(opts.Progress, Event{File: file.Path, Stage: stage, Status: status, Errors: res.Errors()})
	}

	notify(StageParse, StatusWorking)
	stop := timer.Track(string(StageParse))
	strs := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{}, strs)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: rep})
	classes := 0
	if f := builder.Files.Get(parsed.File); f != nil {
		classes = len(f.Classes)
	}
	stop(fmt.Sprintf("classes=%d", classes))
	trace.Point(tracer, trace.ScopePass, "parse", fmt.Sprintf("errors=%d", parsed.Errors), span.ID())
	res.Builder, res.ASTFile = builder, parsed.File

	// на сломанном дереве binder и checker дают только шум
	if bag.HasErrors() {
		finish(&res, timer, span, "syntax errors")
		notify(StageParse, StatusError)
		return res, nil
	}

	notify(StageBind, StatusWorking)
	stop = timer.Track(string(StageBind))
	table := symbols.NewTable(symbols.Hints{}, strs, types.NewInterner(strs))
	bound := symbols.ResolveFile(builder, parsed.File, symbols.ResolveOptions{
		Table:       table,
		Reporter:    rep,
		RequireMain: opts.RequireMain,
	})
	stop(fmt.Sprintf("symbols=%d", table.Symbols.Len()))
	trace.Point(tracer, trace.ScopePass, "bind", "", span.ID())
	res.Bound = &bound

	notify(StageCheck, StatusWorking)
	stop = timer.Track(string(StageCheck))
	checked := sema.Check(ctx, builder, &bound, sema.Options{Reporter: rep})
	stop(fmt.Sprintf("exprs=%d", checked.Stats.Exprs))
	res.Sema = &checked

	finish(&res, timer, span, "")
	if res.Errors() > 0 {
		notify(StageCheck, StatusError)
	} else {
		notify(StageCheck, StatusDone)
	}
	return res, nil
}

func finish(res *FileResult, timer *observ.Timer, span *trace.Span, detail string) {
	res.Bag.Sort()
	res.Bag.Dedup()
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	span.WithExtra("diags", fmt.Sprint(res.Bag.Len())).End(detail)
}

package sema

import (
	"context"
	"fmt"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/symbols"
	"decaf/internal/trace"
	"decaf/internal/types"
)

// Options configure a semantic pass over a bound file.
type Options struct {
	Reporter diag.Reporter
	// Tracer overrides the tracer carried by the context.
	Tracer trace.Tracer
}

// Result stores semantic artefacts produced by the checker. Every map is
// keyed by the node the annotation belongs to.
type Result struct {
	TypeInterner *types.Interner
	ExprTypes    map[ast.ExprID]types.TypeID
	ExprSymbols  map[ast.ExprID]symbols.SymbolID
	LValues      map[ast.ExprID]LValueKind
	// ClassRefs marks bare class names used as a call or field receiver.
	ClassRefs map[ast.ExprID]bool
	// ArrayLength marks `a.length()` calls on arrays.
	ArrayLength map[ast.ExprID]bool
	// StmtSymbols holds foreach iteration variables declared by the checker.
	StmtSymbols map[ast.StmtID]symbols.SymbolID
	Stats       Stats
}

// Stats counts scope stack traffic; Opens == Closes after every run.
type Stats struct {
	Opens  int
	Closes int
	Exprs  int
}

// Check types every expression and statement of the bound file. It never
// stops early: violations are reported and typed as Error.
func Check(ctx context.Context, builder *ast.Builder, bound *symbols.Result, opts Options) Result {
	res := Result{
		ExprTypes:   make(map[ast.ExprID]types.TypeID),
		ExprSymbols: make(map[ast.ExprID]symbols.SymbolID),
		LValues:     make(map[ast.ExprID]LValueKind),
		ClassRefs:   make(map[ast.ExprID]bool),
		ArrayLength: make(map[ast.ExprID]bool),
		StmtSymbols: make(map[ast.StmtID]symbols.SymbolID),
	}
	if builder == nil || bound == nil || bound.Table == nil {
		return res
	}
	res.TypeInterner = bound.Table.Types

	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	tc := typeChecker{
		b:        builder,
		bound:    bound,
		table:    bound.Table,
		types:    bound.Table.Types,
		builtins: bound.Table.Types.Builtins(),
		reporter: reporter,
		tracer:   tracer,
		result:   &res,
	}
	tc.scopes = newScopeStack(bound.Table)

	span := trace.Begin(tracer, trace.ScopePass, "check", trace.CurrentSpan(ctx).SpanID)
	tc.passSpan = span.ID()
	tc.run()
	span.WithExtra("exprs", fmt.Sprint(res.Stats.Exprs)).End("")

	res.Stats.Opens, res.Stats.Closes = tc.scopes.opens, tc.scopes.closes
	return res
}

type typeChecker struct {
	b        *ast.Builder
	bound    *symbols.Result
	table    *symbols.Table
	types    *types.Interner
	builtins types.Builtins
	reporter diag.Reporter
	tracer   trace.Tracer
	result   *Result

	passSpan  uint64
	classSpan uint64

	scopes *scopeStack
	loops  []ast.StmtID
	// текущий класс и метод; методы не вкладываются, стек не нужен
	class  symbols.SymbolID
	method symbols.SymbolID
}

func (tc *typeChecker) run() {
	tc.scopes.open(tc.table.Global())
	defer tc.scopes.close()

	for _, classSym := range tc.bound.Classes {
		tc.checkClass(classSym)
	}
}

func (tc *typeChecker) checkClass(classSym symbols.SymbolID) {
	class := tc.table.Symbols.Get(classSym)
	if class == nil {
		return
	}
	span := trace.Begin(tc.tracer, trace.ScopeClass, "class:"+tc.table.NameOf(classSym), tc.passSpan)
	defer span.End("")
	tc.classSpan = span.ID()

	tc.class = classSym
	tc.scopes.open(class.Members)
	defer tc.scopes.close()

	cls, ok := tc.b.Items.Class(class.Item)
	if !ok {
		return
	}
	for _, member := range cls.Members {
		method, ok := tc.b.Items.Method(member)
		if !ok {
			continue
		}
		fnSym := tc.bound.ItemSymbols[member]
		if !fnSym.IsValid() {
			continue
		}
		tc.checkMethod(fnSym, method)
	}
}

func (tc *typeChecker) checkMethod(fnSym symbols.SymbolID, method *ast.MethodItem) {
	span := trace.Begin(tc.tracer, trace.ScopeMethod, "method:"+tc.table.NameOf(fnSym), tc.classSpan)
	defer span.End("")

	tc.method = fnSym
	fn := tc.table.Symbols.Get(fnSym)
	tc.scopes.open(fn.Formals)
	defer tc.scopes.close()
	tc.checkStmt(method.Body)
}

// static reports whether the current method is static.
func (tc *typeChecker) static() bool {
	fn := tc.table.Symbols.Get(tc.method)
	return fn != nil && fn.Static
}

func (tc *typeChecker) classType() types.TypeID {
	if cls := tc.table.Symbols.Get(tc.class); cls != nil {
		return cls.Type
	}
	return tc.builtins.Error
}

// absorbs reports the sentinel types that suppress further diagnostics.
func (tc *typeChecker) absorbs(t types.TypeID) bool {
	return tc.types.IsSentinel(t)
}

func (tc *typeChecker) label(t types.TypeID) string {
	return types.Label(tc.types, t)
}

func (tc *typeChecker) name(id symbols.SymbolID) string {
	return tc.table.NameOf(id)
}

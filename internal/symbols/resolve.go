package symbols

import (
	"fmt"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/types"
)

// ResolveOptions controls a binding pass over one AST file.
type ResolveOptions struct {
	Table    *Table
	Hints    Hints
	Reporter diag.Reporter
	// RequireMain reports a program without `class Main { static void main() }`.
	RequireMain bool
	Validate    bool
}

// Result links AST nodes to the scopes and symbols built for them.
// Class and method items map to their member and formals scopes; block
// and foreach statements map to their block scopes.
type Result struct {
	Table       *Table
	File        ast.FileID
	Classes     []SymbolID
	ItemScopes  map[ast.ItemID]ScopeID
	StmtScopes  map[ast.StmtID]ScopeID
	ItemSymbols map[ast.ItemID]SymbolID
	StmtSymbols map[ast.StmtID]SymbolID
}

// ResolveFile declares every class, member, parameter and local of the
// file, links superclasses and resolves declared types.
func ResolveFile(builder *ast.Builder, fileID ast.FileID, opts ResolveOptions) Result {
	table := opts.Table
	if table == nil {
		table = NewTable(opts.Hints, builder.Strings, nil)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	res := Result{
		Table:       table,
		File:        fileID,
		ItemScopes:  make(map[ast.ItemID]ScopeID),
		StmtScopes:  make(map[ast.StmtID]ScopeID),
		ItemSymbols: make(map[ast.ItemID]SymbolID),
		StmtSymbols: make(map[ast.StmtID]SymbolID),
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return res
	}

	bd := binder{b: builder, t: table, res: &res, reporter: reporter}
	bd.declareClasses(file.Classes)
	bd.linkParents(file.Classes)
	for _, id := range file.Classes {
		bd.declareMembers(id)
	}
	for _, cls := range res.Classes {
		bd.checkOverrides(cls)
	}
	if opts.RequireMain {
		bd.checkMain(file.Span)
	}
	for _, id := range file.Classes {
		bd.walkBodies(id)
	}

	if opts.Validate {
		if err := table.Validate(); err != nil {
			panic(fmt.Errorf("symbol table invariant violation: %w", err))
		}
	}
	return res
}

type binder struct {
	b        *ast.Builder
	t        *Table
	res      *Result
	reporter diag.Reporter
}

func (bd *binder) report(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(bd.reporter, code, sp, fmt.Sprintf(format, args...))
}

// declare inserts sym or reports a conflict. A conflicting symbol is still
// allocated, unbound, so its body can be walked.
func (bd *binder) declare(scope ScopeID, sym Symbol) SymbolID {
	id, prev := bd.t.Declare(scope, sym)
	if id.IsValid() {
		return id
	}
	bd.conflict(sym.Name, sym.Span, prev)
	sym.Scope = scope
	return bd.t.Symbols.New(&sym)
}

func (bd *binder) conflict(name source.StringID, sp source.Span, prev SymbolID) {
	earlier := bd.t.Symbols.Get(prev).Span
	bd.report(diag.SemaDuplicateDecl, sp,
		"declaration of '%s' here conflicts with earlier declaration", bd.b.Name(name)).
		WithNote(earlier, "earlier declaration").
		Emit()
}

func (bd *binder) declareClasses(classes []ast.ItemID) {
	for _, id := range classes {
		cls, ok := bd.b.Items.Class(id)
		if !ok {
			continue
		}
		typ := bd.t.Types.RegisterClass(cls.Name, cls.NameSpan)
		members := bd.t.Scopes.New(ScopeClass, bd.t.Global(), bd.b.Items.Get(id).Span)
		symID := bd.declare(bd.t.Global(), Symbol{
			Name:    cls.Name,
			Kind:    SymbolClass,
			Span:    cls.NameSpan,
			Type:    typ,
			Members: members,
			Item:    id,
		})
		sc := bd.t.Scopes.Get(members)
		sc.Owner = symID
		sc.Item = id
		bd.res.Classes = append(bd.res.Classes, symID)
		bd.res.ItemScopes[id] = members
		bd.res.ItemSymbols[id] = symID
	}
}

func (bd *binder) linkParents(classes []ast.ItemID) {
	for _, id := range classes {
		cls, ok := bd.b.Items.Class(id)
		if !ok || cls.Parent == source.NoStringID {
			continue
		}
		parent := bd.t.LookupClass(cls.Parent)
		if !parent.IsValid() {
			bd.report(diag.SemaClassNotFound, cls.ParentSpan, "class '%s' not found", bd.b.Name(cls.Parent)).Emit()
			continue
		}
		sym := bd.t.Symbols.Get(bd.res.ItemSymbols[id])
		sym.Super = parent
		bd.t.Types.SetClassSuper(sym.Type, bd.t.Symbols.Get(parent).Type)
	}

	// разрываем циклы, по одной диагностике на цикл
	for _, id := range classes {
		symID := bd.res.ItemSymbols[id]
		sym := bd.t.Symbols.Get(symID)
		if sym == nil {
			continue
		}
		for cur, steps := sym.Super, 0; cur.IsValid() && steps <= len(classes); steps++ {
			if cur == symID {
				cls, _ := bd.b.Items.Class(id)
				bd.report(diag.SemaBadInheritance, cls.NameSpan, "illegal class inheritance: '%s' inherits from itself", bd.b.Name(cls.Name)).Emit()
				sym.Super = NoSymbolID
				bd.t.Types.SetClassSuper(sym.Type, 0)
				break
			}
			cur = bd.t.Symbols.Get(cur).Super
		}
	}
}

func (bd *binder) declareMembers(classItem ast.ItemID) {
	cls, ok := bd.b.Items.Class(classItem)
	if !ok {
		return
	}
	classSym := bd.res.ItemSymbols[classItem]
	classType := bd.t.Symbols.Get(classSym).Type
	members := bd.res.ItemScopes[classItem]
	builtins := bd.t.Types.Builtins()

	for _, member := range cls.Members {
		switch bd.b.Items.Get(member).Kind {
		case ast.ItemField:
			field, _ := bd.b.Items.Field(member)
			typ := bd.variableType(field.Name, field.NameSpan, field.Type)
			bd.res.ItemSymbols[member] = bd.declare(members, Symbol{
				Name:    field.Name,
				Kind:    SymbolVariable,
				VarKind: VarField,
				Span:    field.NameSpan,
				Type:    typ,
				Item:    member,
			})

		case ast.ItemMethod:
			method, _ := bd.b.Items.Method(member)
			formals := bd.t.Scopes.New(ScopeFormals, members, bd.b.Items.Get(member).Span)
			bd.t.Scopes.Get(formals).Item = member

			sig := make([]types.TypeID, 0, len(method.Params)+1)
			if !method.Static {
				sig = append(sig, classType)
			}
			for _, p := range method.Params {
				typ := bd.variableType(p.Name, p.Span, p.Type)
				sig = append(sig, typ)
				bd.declare(formals, Symbol{
					Name:    p.Name,
					Kind:    SymbolVariable,
					VarKind: VarParam,
					Span:    p.Span,
					Type:    typ,
					Item:    member,
				})
			}
			result := bd.t.ResolveTypeExpr(bd.b, method.Result, bd.reporter)
			if !method.Result.IsValid() {
				result = builtins.Void
			}
			fnSym := bd.declare(members, Symbol{
				Name:    method.Name,
				Kind:    SymbolFunction,
				Span:    method.NameSpan,
				Type:    bd.t.Types.RegisterFn(sig, result),
				Static:  method.Static,
				Formals: formals,
				Item:    member,
			})
			bd.t.Scopes.Get(formals).Owner = fnSym
			bd.res.ItemScopes[member] = formals
			bd.res.ItemSymbols[member] = fnSym
		}
	}
}

// variableType resolves the declared type of a field, parameter or local;
// void is rejected.
func (bd *binder) variableType(name source.StringID, sp source.Span, te ast.TypeID) types.TypeID {
	builtins := bd.t.Types.Builtins()
	typ := bd.t.ResolveTypeExpr(bd.b, te, bd.reporter)
	if typ == builtins.Void {
		bd.report(diag.SemaVoidVariable, sp, "cannot declare identifier '%s' as void type", bd.b.Name(name)).Emit()
		return builtins.Error
	}
	return typ
}

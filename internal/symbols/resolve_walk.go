package symbols

import (
	"slices"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
)

// checkOverrides validates members that shadow an inherited name.
func (bd *binder) checkOverrides(classID SymbolID) {
	class := bd.t.Symbols.Get(classID)
	if class == nil || !class.Super.IsValid() {
		return
	}
	className := bd.t.NameOf(classID)
	for _, memberID := range bd.t.Scopes.Get(class.Members).Symbols {
		member := bd.t.Symbols.Get(memberID)
		inherited := bd.t.LookupMember(class.Super, member.Name)
		if !inherited.IsValid() {
			continue
		}
		parent := bd.t.Symbols.Get(inherited)
		if member.IsVariable() || parent.IsVariable() {
			bd.report(diag.SemaOverrideVariable, member.Span, "overriding variable is not allowed for var '%s'", bd.b.Name(member.Name)).
				WithNote(parent.Span, "inherited declaration").
				Emit()
			continue
		}
		if member.Static || parent.Static || !bd.overrides(memberID, inherited) {
			bd.report(diag.SemaBadOverride, member.Span,
				"overriding method '%s' doesn't match the type signature in class '%s'", bd.b.Name(member.Name), className).
				WithNote(parent.Span, "overridden method").
				Emit()
		}
	}
}

// overrides: same parameters after the receiver, covariant result.
func (bd *binder) overrides(sub, super SymbolID) bool {
	subSig, ok1 := bd.t.Signature(sub)
	superSig, ok2 := bd.t.Signature(super)
	if !ok1 || !ok2 || len(subSig.Params) != len(superSig.Params) || len(subSig.Params) == 0 {
		return false
	}
	if !slices.Equal(subSig.Params[1:], superSig.Params[1:]) {
		return false
	}
	return bd.t.Types.Compatible(subSig.Result, superSig.Result)
}

func (bd *binder) checkMain(fileSpan source.Span) {
	mainClass := bd.t.LookupClass(bd.t.Strings.Intern("Main"))
	if mainClass.IsValid() {
		fn := bd.t.LookupLocal(bd.t.Symbols.Get(mainClass).Members, bd.t.Strings.Intern("main"))
		if sym := bd.t.Symbols.Get(fn); sym != nil && sym.IsFunction() && sym.Static {
			sig, _ := bd.t.Signature(fn)
			if len(sig.Params) == 0 && sig.Result == bd.t.Types.Builtins().Void {
				return
			}
		}
	}
	bd.report(diag.SemaNoMainClass, fileSpan.Head(), "no legal Main class named 'Main' was found").Emit()
}

func (bd *binder) walkBodies(classItem ast.ItemID) {
	cls, ok := bd.b.Items.Class(classItem)
	if !ok {
		return
	}
	for _, member := range cls.Members {
		method, ok := bd.b.Items.Method(member)
		if !ok || !method.Body.IsValid() {
			continue
		}
		bd.walkStmt(method.Body, bd.res.ItemScopes[member])
	}
}

func (bd *binder) walkStmt(id ast.StmtID, scope ScopeID) {
	st := bd.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtBlock:
		inner := bd.openBlock(id, scope, st.Span)
		blk, _ := bd.b.Stmts.Block(id)
		for _, child := range blk.Stmts {
			bd.walkStmt(child, inner)
		}
	case ast.StmtVarDef:
		bd.declareLocal(id, scope)
	case ast.StmtIf:
		s, _ := bd.b.Stmts.If(id)
		bd.walkStmt(s.Then, scope)
		bd.walkStmt(s.Else, scope)
	case ast.StmtWhile:
		s, _ := bd.b.Stmts.While(id)
		bd.walkStmt(s.Body, scope)
	case ast.StmtFor:
		s, _ := bd.b.Stmts.For(id)
		bd.walkStmt(s.Init, scope)
		bd.walkStmt(s.Update, scope)
		bd.walkStmt(s.Body, scope)
	case ast.StmtForeach:
		// переменная цикла объявляется проверкой типов, когда известен тип массива
		inner := bd.openBlock(id, scope, st.Span)
		s, _ := bd.b.Stmts.Foreach(id)
		bd.walkStmt(s.Body, inner)
	case ast.StmtGuarded:
		s, _ := bd.b.Stmts.Guarded(id)
		for _, arm := range s.Arms {
			bd.walkStmt(arm.Body, scope)
		}
	}
}

func (bd *binder) openBlock(owner ast.StmtID, parent ScopeID, sp source.Span) ScopeID {
	id := bd.t.Scopes.New(ScopeBlock, parent, sp)
	bd.t.Scopes.Get(id).Stmt = owner
	bd.res.StmtScopes[owner] = id
	return id
}

// declareLocal rejects redeclaration in the same scope and shadowing of
// any local or parameter of the enclosing method.
func (bd *binder) declareLocal(id ast.StmtID, scope ScopeID) {
	def, _ := bd.b.Stmts.VarDef(id)
	typ := bd.t.Types.Builtins().Unknown
	if def.Type.IsValid() {
		typ = bd.variableType(def.Name, def.NameSpan, def.Type)
	}
	sym := Symbol{
		Name:    def.Name,
		Kind:    SymbolVariable,
		VarKind: VarLocal,
		Span:    def.NameSpan,
		Type:    typ,
		Stmt:    id,
	}
	for cur := bd.t.Scopes.Get(scope).Parent; ; {
		sc := bd.t.Scopes.Get(cur)
		if sc == nil || (sc.Kind != ScopeBlock && sc.Kind != ScopeFormals) {
			break
		}
		if prev := sc.NameIndex[def.Name]; prev.IsValid() {
			bd.conflict(def.Name, def.NameSpan, prev)
			sym.Scope = scope
			bd.res.StmtSymbols[id] = bd.t.Symbols.New(&sym)
			return
		}
		cur = sc.Parent
	}
	bd.res.StmtSymbols[id] = bd.declare(scope, sym)
}

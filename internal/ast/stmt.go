package ast

import "decaf/internal/source"

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtVarDef
	StmtAssign
	StmtExpr
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtBreak
	StmtPrint
	StmtForeach
	StmtGuarded
	StmtSCopy
	StmtEmpty
)

var stmtKindNames = [...]string{
	StmtInvalid: "invalid",
	StmtBlock:   "block",
	StmtVarDef:  "var",
	StmtAssign:  "assign",
	StmtExpr:    "expr",
	StmtIf:      "if",
	StmtWhile:   "while",
	StmtFor:     "for",
	StmtReturn:  "return",
	StmtBreak:   "break",
	StmtPrint:   "Print",
	StmtForeach: "foreach",
	StmtGuarded: "guarded-if",
	StmtSCopy:   "scopy",
	StmtEmpty:   "empty",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

// VarDefStmt declares a local. Type is NoTypeID for `var x`.
type VarDefStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Init     ExprID
}

type AssignStmt struct {
	Target ExprID
	Value  ExprID
}

type ExprStmt struct {
	Expr ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// ForStmt: Init and Update are simple statements (assign, expr, var).
type ForStmt struct {
	Init   StmtID
	Cond   ExprID
	Update StmtID
	Body   StmtID
}

type ReturnStmt struct {
	Value ExprID
}

type PrintStmt struct {
	Args []ExprID
}

// ForeachStmt is `foreach (T x in array while filter) body`.
// VarType is NoTypeID for `var x`; Filter is optional.
type ForeachStmt struct {
	VarName source.StringID
	VarSpan source.Span
	VarType TypeID
	Array   ExprID
	Filter  ExprID
	Body    StmtID
}

type GuardArm struct {
	Cond ExprID
	Body StmtID
	Span source.Span
}

// GuardedStmt is `if { c1 : s1 ||| c2 : s2 }`.
type GuardedStmt struct {
	Arms []GuardArm
}

// SCopyStmt is `scopy(dst, src)`.
type SCopyStmt struct {
	Dst     source.StringID
	DstSpan source.Span
	Src     ExprID
}

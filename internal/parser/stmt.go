package parser

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/token"
)

// parseBlock parses `{ stmt* }`; the current token must be '{'.
func (p *Parser) parseBlock() ast.StmtID {
	start := p.advance().Span
	var stmts []ast.StmtID
	for !p.atAny(token.RBrace, token.EOF) {
		if id := p.parseStmt(); id.IsValid() {
			stmts = append(stmts, id)
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter)
	return p.arenas.Stmts.NewBlock(p.spanFrom(start), stmts)
}

// parseStmt returns NoStmtID after a syntax error; the broken statement
// has been skipped by then.
func (p *Parser) parseStmt() ast.StmtID {
	id, ok := p.parseStmtInner()
	if !ok {
		p.resyncStmt()
		return ast.NoStmtID
	}
	return id
}

func (p *Parser) parseStmtInner() (ast.StmtID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBrace:
		return p.parseBlock(), true
	case tok.IsTypeStart(), tok.Kind == token.KwVar:
		return p.parseTerminated(p.parseVarDef)
	case tok.Kind == token.KwIf:
		if p.peekAt(1).Kind == token.LBrace {
			return p.parseGuarded()
		}
		return p.parseIf()
	case tok.Kind == token.KwWhile:
		return p.parseWhile()
	case tok.Kind == token.KwFor:
		return p.parseFor()
	case tok.Kind == token.KwForeach:
		return p.parseForeach()
	case tok.Kind == token.KwReturn:
		return p.parseTerminated(p.parseReturn)
	case tok.Kind == token.KwBreak:
		return p.parseTerminated(func() (ast.StmtID, bool) {
			return p.arenas.Stmts.NewBreak(p.advance().Span), true
		})
	case tok.Kind == token.KwPrint:
		return p.parseTerminated(p.parsePrint)
	case tok.Kind == token.KwScopy:
		return p.parseTerminated(p.parseSCopy)
	default:
		return p.parseTerminated(p.parseSimple)
	}
}

// parseTerminated runs parse and then requires ';'.
func (p *Parser) parseTerminated(parse func() (ast.StmtID, bool)) (ast.StmtID, bool) {
	id, ok := parse()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	return id, true
}

// T x [= e]  |  var x [= e]
func (p *Parser) parseVarDef() (ast.StmtID, bool) {
	start := p.peek().Span
	typ := ast.NoTypeID
	if !p.eat(token.KwVar) {
		var ok bool
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	init := ast.NoExprID
	if p.eat(token.Assign) {
		if init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewVarDef(p.spanFrom(start), ast.VarDefStmt{
		Name:     p.intern(name),
		NameSpan: name.Span,
		Type:     typ,
		Init:     init,
	}), true
}

// parseSimple: lvalue = expr | call | var-def | empty.
func (p *Parser) parseSimple() (ast.StmtID, bool) {
	start := p.peek().Span
	if p.atAny(token.Semicolon, token.RParen) {
		return p.arenas.Stmts.NewEmpty(source.Span{File: start.File, Start: start.Start, End: start.Start}), true
	}
	if p.peek().IsTypeStart() || p.at(token.KwVar) {
		return p.parseVarDef()
	}
	target, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.eat(token.Assign) {
		if k := p.arenas.Exprs.Get(target).Kind; k != ast.ExprIdent && k != ast.ExprIndex {
			p.errAt(p.arenas.Exprs.Get(target).Span, diag.SynBadAssignTarget, "left side of assignment must be a variable or an array element")
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(p.spanFrom(start), target, value), true
	}
	if p.arenas.Exprs.Get(target).Kind != ast.ExprCall {
		p.errAt(p.arenas.Exprs.Get(target).Span, diag.SynUnexpectedToken, "only calls may be used as statements")
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), target), true
}

// parseParenCond parses `( expr )`.
func (p *Parser) parseParenCond() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	then := p.parseStmt()
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		els = p.parseStmt()
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), cond, then, els), true
}

// if { c1 : s1 ||| c2 : s2 }
func (p *Parser) parseGuarded() (ast.StmtID, bool) {
	start := p.advance().Span
	p.advance() // {
	var arms []ast.GuardArm
	for !p.atAny(token.RBrace, token.EOF) {
		armStart := p.peek().Span
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			return ast.NoStmtID, false
		}
		body := p.parseStmt()
		arms = append(arms, ast.GuardArm{Cond: cond, Body: body, Span: p.spanFrom(armStart)})
		if !p.eat(token.TriplePipe) {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewGuarded(p.spanFrom(start), arms), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	start := p.advance().Span
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	body := p.parseStmt()
	return p.arenas.Stmts.NewWhile(p.spanFrom(start), cond, body), true
}

// for ( simple ; cond ; simple ) body
func (p *Parser) parseFor() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	var data ast.ForStmt
	var ok bool
	if data.Init, ok = p.parseTerminated(p.parseSimple); !ok {
		return ast.NoStmtID, false
	}
	if data.Cond, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return ast.NoStmtID, false
	}
	if data.Update, ok = p.parseSimple(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoStmtID, false
	}
	data.Body = p.parseStmt()
	return p.arenas.Stmts.NewFor(p.spanFrom(start), data), true
}

// foreach ( T x in arr [while filter] ) body
func (p *Parser) parseForeach() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	data := ast.ForeachStmt{VarType: ast.NoTypeID}
	if !p.eat(token.KwVar) {
		typ, ok := p.parseType()
		if !ok {
			return ast.NoStmtID, false
		}
		data.VarType = typ
	}
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.VarName, data.VarSpan = p.intern(name), name.Span
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	if data.Array, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if p.eat(token.KwWhile) {
		if data.Filter, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoStmtID, false
	}
	data.Body = p.parseStmt()
	return p.arenas.Stmts.NewForeach(p.spanFrom(start), data), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	start := p.advance().Span
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(start), value), true
}

func (p *Parser) parsePrint() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.RParen) {
		p.err(diag.SynExpectExpression, "Print expects at least one argument")
		return ast.NoStmtID, false
	}
	args, ok := p.parseArgs()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewPrint(p.spanFrom(start), args), true
}

// scopy ( dst , src )
func (p *Parser) parseSCopy() (ast.StmtID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	dst, ok := p.expectIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	src, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSCopy(p.spanFrom(start), ast.SCopyStmt{
		Dst:     p.intern(dst),
		DstSpan: dst.Span,
		Src:     src,
	}), true
}

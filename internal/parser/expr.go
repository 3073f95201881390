package parser

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinary(precSameArr)
}

// parseBinary: precedence climbing; все операторы левоассоциативны
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	start := p.peek().Span
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		kind := p.peek().Kind
		prec := getBinaryOperatorPrec(kind)
		if prec == precNone || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		if kind == token.PercentPercent {
			left = p.arenas.Exprs.NewNewSameArray(p.spanFrom(start), left, right)
			continue
		}
		left = p.arenas.Exprs.NewBinary(p.spanFrom(start), binaryOps[kind].op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	start := p.peek().Span
	var op ast.UnaryOp
	switch p.peek().Kind {
	case token.Minus:
		op = ast.OpNeg
	case token.Bang:
		op = ast.OpNot
	default:
		return p.parsePostfix()
	}
	p.advance()
	operand, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(start), op, operand), true
}

// parsePostfix handles `.name`, `.name(args)`, `[i]` and `[i] default d`.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	start := p.peek().Span
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch {
		case p.eat(token.Dot):
			name, ok := p.expectIdent()
			if !ok {
				return ast.NoExprID, false
			}
			if p.eat(token.LParen) {
				if expr, ok = p.finishCall(start, expr, name); !ok {
					return ast.NoExprID, false
				}
				continue
			}
			expr = p.arenas.Exprs.NewIdent(p.spanFrom(start), expr, p.intern(name))
		case p.eat(token.LBracket):
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter); !ok {
				return ast.NoExprID, false
			}
			if p.eat(token.KwDefault) {
				def, ok := p.parseUnary()
				if !ok {
					return ast.NoExprID, false
				}
				expr = p.arenas.Exprs.NewDefaultArray(p.spanFrom(start), expr, index, def)
				continue
			}
			expr = p.arenas.Exprs.NewIndex(p.spanFrom(start), expr, index)
		default:
			return expr, true
		}
	}
}

// finishCall is entered after '('.
func (p *Parser) finishCall(start source.Span, receiver ast.ExprID, name token.Token) (ast.ExprID, bool) {
	var args []ast.ExprID
	if !p.eat(token.RParen) {
		var ok bool
		if args, ok = p.parseArgs(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(start), ast.CallData{
		Receiver: receiver,
		Name:     p.intern(name),
		NameSpan: name.Span,
		Args:     args,
	}), true
}

// parseArgs parses `e1, e2, ... )`.
func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	var args []ast.ExprID
	for {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if p.eat(token.Comma) {
			continue
		}
		_, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter)
		return args, ok
	}
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitInt, p.intern(tok)), true
	case token.StringLit:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitString, p.intern(tok)), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return exprs.NewLit(tok.Span, ast.LitBool, p.intern(tok)), true
	case token.KwNull:
		p.advance()
		return exprs.NewNull(tok.Span), true
	case token.KwThis:
		p.advance()
		return exprs.NewThis(tok.Span), true
	case token.KwReadInteger, token.KwReadLine:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
			return ast.NoExprID, false
		}
		if tok.Kind == token.KwReadInteger {
			return exprs.NewReadInt(p.spanFrom(tok.Span)), true
		}
		return exprs.NewReadLine(p.spanFrom(tok.Span)), true
	case token.KwNew:
		return p.parseNew()
	case token.KwInstanceof:
		return p.parseInstanceOf()
	case token.LParen:
		if p.peekAt(1).Kind == token.KwClass {
			return p.parseCast()
		}
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
			return ast.NoExprID, false
		}
		return inner, true
	case token.Ident:
		p.advance()
		if p.eat(token.LParen) {
			return p.finishCall(tok.Span, ast.NoExprID, tok)
		}
		return exprs.NewIdent(tok.Span, ast.NoExprID, p.intern(tok)), true
	}
	p.err(diag.SynExpectExpression, "expected expression, found '%s'", p.describe(tok))
	return ast.NoExprID, false
}

// new Name()  |  new T[len]
func (p *Parser) parseNew() (ast.ExprID, bool) {
	start := p.advance().Span
	if p.at(token.Ident) && p.peekAt(1).Kind == token.LParen {
		name := p.advance()
		p.advance()
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewNewClass(p.spanFrom(start), p.intern(name)), true
	}
	elem, ok := p.parseType()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken); !ok {
		return ast.NoExprID, false
	}
	length, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewNewArray(p.spanFrom(start), elem, length), true
}

// instanceof ( e , Name )
func (p *Parser) parseInstanceOf() (ast.ExprID, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken); !ok {
		return ast.NoExprID, false
	}
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewInstanceOf(p.spanFrom(start), value, p.intern(name)), true
}

// ( class Name ) e
func (p *Parser) parseCast() (ast.ExprID, bool) {
	start := p.advance().Span
	p.advance() // class
	name, ok := p.expectIdent()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCast(p.spanFrom(start), p.intern(name), value), true
}

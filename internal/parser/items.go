package parser

import (
	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/source"
	"decaf/internal/token"
)

// class Name [extends Parent] { member* }
func (p *Parser) parseClass() (ast.ItemID, bool) {
	start := p.advance().Span // class
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil(token.KwClass)
		return ast.NoItemID, false
	}
	data := ast.ClassItem{Name: p.intern(name), NameSpan: name.Span}
	if p.eat(token.KwExtends) {
		parent, ok := p.expectIdent()
		if ok {
			data.Parent = p.intern(parent)
			data.ParentSpan = parent.Span
		}
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
		p.resyncUntil(token.KwClass)
		return ast.NoItemID, false
	}
	for !p.atAny(token.RBrace, token.EOF) {
		if member, ok := p.parseMember(); ok {
			data.Members = append(data.Members, member)
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter); !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewClass(p.spanFrom(start), data), true
}

// field:  Type Name ;
// method: [static] Type Name ( formals ) { ... }
func (p *Parser) parseMember() (ast.ItemID, bool) {
	start := p.peek().Span
	static := p.eat(token.KwStatic)
	typ, ok := p.parseType()
	if !ok {
		p.resyncMember()
		return ast.NoItemID, false
	}
	name, ok := p.expectIdent()
	if !ok {
		p.resyncMember()
		return ast.NoItemID, false
	}
	if !static && p.eat(token.Semicolon) {
		return p.arenas.Items.NewField(p.spanFrom(start), ast.FieldItem{
			Name:     p.intern(name),
			NameSpan: name.Span,
			Type:     typ,
		}), true
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectSemicolon); !ok {
		p.resyncMember()
		return ast.NoItemID, false
	}
	params, ok := p.parseFormals()
	if !ok {
		p.resyncMember()
		return ast.NoItemID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected method body, found '%s'", p.describe(p.peek()))
		p.resyncMember()
		return ast.NoItemID, false
	}
	body := p.parseBlock()
	return p.arenas.Items.NewMethod(p.spanFrom(start), ast.MethodItem{
		Name:     p.intern(name),
		NameSpan: name.Span,
		Static:   static,
		Result:   typ,
		Params:   params,
		Body:     body,
	}), true
}

func (p *Parser) resyncMember() {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.KwStatic:
			return
		case token.LBrace:
			p.skipBalanced()
			return
		}
		p.advance()
	}
}

// skipBalanced съедает блок { ... } целиком
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// parseFormals consumes `T a, T b )`; the '(' is already eaten.
func (p *Parser) parseFormals() ([]ast.Param, bool) {
	var params []ast.Param
	if p.eat(token.RParen) {
		return params, true
	}
	for {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: p.intern(name), Span: name.Span, Type: typ})
		if p.eat(token.Comma) {
			continue
		}
		_, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter)
		return params, ok
	}
}

// parseType: int | bool | string | void | class Name, followed by [] pairs.
func (p *Parser) parseType() (ast.TypeID, bool) {
	typ, ok := p.parseBaseType()
	if !ok {
		return ast.NoTypeID, false
	}
	for p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket {
		start := p.arenas.Types.Get(typ).Span
		p.advance()
		p.advance()
		typ = p.arenas.Types.NewArray(p.spanFrom(start), typ)
	}
	return typ, true
}

func (p *Parser) parseBaseType() (ast.TypeID, bool) {
	tok := p.peek()
	basic := map[token.Kind]ast.BasicType{
		token.KwInt:    ast.BasicInt,
		token.KwBool:   ast.BasicBool,
		token.KwString: ast.BasicString,
		token.KwVoid:   ast.BasicVoid,
	}
	if b, ok := basic[tok.Kind]; ok {
		p.advance()
		return p.arenas.Types.NewBasic(tok.Span, b), true
	}
	if tok.Kind == token.KwClass {
		p.advance()
		name, ok := p.expectIdent()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewClass(source.Span.Cover(tok.Span, name.Span), p.intern(name)), true
	}
	p.err(diag.SynExpectType, "expected type, found '%s'", p.describe(tok))
	return ast.NoTypeID, false
}

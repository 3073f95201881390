package parser

import (
	"fmt"
	"slices"

	"decaf/internal/ast"
	"decaf/internal/diag"
	"decaf/internal/lexer"
	"decaf/internal/source"
	"decaf/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	errors   uint
	lastSpan source.Span
}

// ParseFile drains lx and builds one ast.File. Syntax errors are reported
// and the parser resynchronises at the next ';' or '}'.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:   lx.All(),
		arenas: arenas,
		opts:   opts,
	}
	first := p.peek().Span
	p.file = arenas.NewFile(first)
	for !p.at(token.EOF) {
		if !p.at(token.KwClass) {
			p.err(diag.SynUnexpectedTopLevel, "expected class declaration, found '%s'", p.peek().Text)
			p.resyncUntil(token.KwClass)
			continue
		}
		if id, ok := p.parseClass(); ok {
			arenas.PushClass(p.file, id)
		}
	}
	arenas.Files.Get(p.file).Span = first.Cover(p.peek().Span)
	return Result{File: p.file, Errors: p.errors}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens past the current one; EOF sticks.
func (p *Parser) peekAt(n int) token.Token {
	return p.toks[min(p.pos+n, len(p.toks)-1)]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance съедает токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, "expected '%s', found '%s'", k, p.describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) expectIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, found '%s'", p.describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return tok.Text
}

// diagSpan points at the current token, or just past the last one at EOF.
func (p *Parser) diagSpan() source.Span {
	if p.at(token.EOF) && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.peek().Span
}

func (p *Parser) err(code diag.Code, format string, args ...any) {
	p.errAt(p.diagSpan(), code, format, args...)
}

// resyncUntil skips tokens until one of stop (or EOF) is current.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(stop...) {
		p.advance()
	}
}

// resyncStmt skips to the end of the broken statement.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	p.eat(token.Semicolon)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	if tok.Kind == token.Invalid {
		return source.NoStringID
	}
	return p.arenas.Strings.Intern(tok.Text)
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) errAt(sp source.Span, code diag.Code, format string, args ...any) {
	p.errors++
	if p.opts.Reporter == nil || (p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors) {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

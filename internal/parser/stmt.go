package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// parseBlock parses a `{ stmt* }` compound statement, entering and
// leaving a fresh scope for locals declared inside it.
func (p *Parser) parseBlock() (ir.InstrList, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectedToken, "expected '{' to start a block"); !ok {
		return nil, false
	}
	p.b.Scopes.Enter()
	var list ir.InstrList
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStatement()
		if !ok {
			p.resyncStatement()
			continue
		}
		list = list.Concat(stmt)
	}
	p.b.Scopes.Leave()
	_, ok := p.expect(token.RBrace, diag.SynUnclosedDelim, "expected '}' to close a block")
	return list, ok
}

func (p *Parser) resyncStatement() {
	for !p.at(token.EOF) && !p.at(token.RBrace) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}

// parseStatement dispatches on the leading token: control-flow keywords
// get their own production, a leading modifier/type starts a local
// declaration, and anything else is parsed as an expression statement.
func (p *Parser) parseStatement() (ir.InstrList, bool) {
	switch p.ts.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDo:
		return p.parseDoWhileStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwBreak:
		p.advance()
		loc := p.lastStmtLoc()
		if !p.b.InLoop() {
			p.b.Diags.Error(diag.SynUnexpectedToken, loc, "'break' outside of a loop")
		}
		p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after break")
		return p.b.LowerBreak(loc), true
	case token.KwContinue:
		p.advance()
		loc := p.lastStmtLoc()
		if !p.b.InLoop() {
			p.b.Diags.Error(diag.SynUnexpectedToken, loc, "'continue' outside of a loop")
		}
		p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after continue")
		return p.b.LowerContinue(loc), true
	case token.Semicolon:
		p.advance()
		return nil, true
	default:
		if isModifierStart(p.ts.peek().Kind) || p.isTypeStart() {
			return p.parseLocalDeclGroup()
		}
		return p.parseExprStatement()
	}
}

// lastStmtLoc reports the location of the token just consumed, used for
// statement forms whose builder call needs a location after advancing
// past the leading keyword.
func (p *Parser) lastStmtLoc() source.Location {
	return p.ts.lastTok.Loc()
}

func (p *Parser) parseIfStatement() (ir.InstrList, bool) {
	loc := p.loc()
	p.advance() // 'if'
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'if'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' after condition"); !ok {
		return nil, false
	}
	thenList, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	var elseList ir.InstrList
	if p.at(token.KwElse) {
		p.advance()
		elseList, ok = p.parseStatement()
		if !ok {
			return nil, false
		}
	}
	list, _ := p.b.LowerIf(loc, cond, thenList, elseList)
	return list, true
}

func (p *Parser) parseWhileStatement() (ir.InstrList, bool) {
	loc := p.loc()
	p.advance() // 'while'
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'while'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' after condition"); !ok {
		return nil, false
	}
	body, ok := p.parseLoopBody()
	if !ok {
		return nil, false
	}
	return p.b.LowerLoop(loc, nil, cond, false, body, nil), true
}

func (p *Parser) parseDoWhileStatement() (ir.InstrList, bool) {
	loc := p.loc()
	p.advance() // 'do'
	body, ok := p.parseLoopBody()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynExpectedToken, "expected 'while' after do-block"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'while'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' after condition"); !ok {
		return nil, false
	}
	p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after do-while")
	return p.b.LowerLoop(loc, nil, cond, true, body, nil), true
}

func (p *Parser) parseForStatement() (ir.InstrList, bool) {
	loc := p.loc()
	p.advance() // 'for'
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' after 'for'"); !ok {
		return nil, false
	}

	p.b.Scopes.Enter()
	defer p.b.Scopes.Leave()

	var init ir.InstrList
	if !p.at(token.Semicolon) {
		var ok bool
		init, ok = p.parseForInit()
		if !ok {
			return nil, false
		}
	} else {
		p.advance()
	}

	var cond irbuild.Lowered
	if !p.at(token.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after for-condition"); !ok {
		return nil, false
	}

	var iter ir.InstrList
	if !p.at(token.RParen) {
		lowered, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		iter = lowered.List
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' to close for-clauses"); !ok {
		return nil, false
	}

	body, ok := p.parseLoopBody()
	if !ok {
		return nil, false
	}
	return p.b.LowerLoop(loc, init, cond, false, body, iter), true
}

// parseForInit parses either a declaration (no trailing semicolon
// consumed by the declarator helper, so it's required here) or an
// expression statement as a for-loop's initializer clause.
func (p *Parser) parseForInit() (ir.InstrList, bool) {
	if isModifierStart(p.ts.peek().Kind) || p.isTypeStart() {
		stmt, ok := p.parseLocalDeclGroup()
		return stmt, ok
	}
	lowered, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after for-init"); !ok {
		return nil, false
	}
	return lowered.List, true
}

func (p *Parser) parseLoopBody() (ir.InstrList, bool) {
	p.b.EnterLoop()
	defer p.b.LeaveLoop()
	return p.parseStatement()
}

func (p *Parser) parseReturnStatement() (ir.InstrList, bool) {
	loc := p.loc()
	p.advance() // 'return'
	if p.at(token.Semicolon) {
		p.advance()
		return p.b.LowerReturn(loc, nil), true
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after return value")
	return p.b.LowerReturn(loc, &value), true
}

func (p *Parser) parseExprStatement() (ir.InstrList, bool) {
	lowered, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after expression statement")
	return lowered.List, true
}

// parseLocalDeclGroup is parseDeclGroup's local-scope counterpart: since
// a statement-position declaration can never be a function, it parses
// directly to a variable-declarator-list and stops.
func (p *Parser) parseLocalDeclGroup() (ir.InstrList, bool) {
	mods := p.parseModifiers()
	base, ok := p.parseTypeSpec()
	if !ok {
		return nil, false
	}
	var list ir.InstrList
	for {
		name, loc, ok := p.parseIdentLike()
		if !ok {
			return nil, false
		}
		stmt, ok := p.parseOneVariableDeclarator(mods, base, name, loc)
		if !ok {
			return nil, false
		}
		list = list.Concat(stmt)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok = p.expect(token.Semicolon, diag.SynExpectedToken, "expected ';' after declaration")
	return list, ok
}

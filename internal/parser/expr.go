package parser

import (
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/hlsltype"
	"github.com/hlslc/frontend/internal/ir"
	"github.com/hlslc/frontend/internal/irbuild"
	"github.com/hlslc/frontend/internal/source"
	"github.com/hlslc/frontend/internal/token"
)

// parseExpr is the top-level expression production, used wherever the
// grammar calls for "an expression" (if/while/for conditions, a
// constructor's call arguments): it's just assignment-expression.
func (p *Parser) parseExpr() (irbuild.Lowered, bool) {
	return p.parseAssignExpr()
}

// parseAssignExpr parses a right-associative `lvalue (= | op=) rhs`, or
// falls through to the ternary level when no assignment operator
// follows.
func (p *Parser) parseAssignExpr() (irbuild.Lowered, bool) {
	lhs, ok := p.parseTernary()
	if !ok {
		return irbuild.Lowered{}, false
	}
	if !p.ts.peek().Kind.IsAssignOp() {
		return lhs, true
	}
	op := p.advance()
	rhs, ok := p.parseAssignExpr()
	if !ok {
		return irbuild.Lowered{}, false
	}
	if op.Kind == token.Assign {
		return p.b.LowerAssign(op.Loc(), lhs, rhs)
	}
	binOp, ok := compoundOpFor(op.Kind)
	if !ok {
		p.err(diag.SynUnexpectedToken, "unsupported compound assignment operator")
		return irbuild.Lowered{}, false
	}
	return p.b.LowerCompoundAssign(op.Loc(), binOp, lhs, rhs)
}

func compoundOpFor(k token.Kind) (ir.Operator, bool) {
	switch k {
	case token.PlusAssign:
		return ir.OpAdd, true
	case token.MinusAssign:
		return ir.OpSub, true
	case token.StarAssign:
		return ir.OpMul, true
	case token.SlashAssign:
		return ir.OpDiv, true
	case token.PercentAssign:
		return ir.OpMod, true
	case token.AmpAssign:
		return ir.OpBitAnd, true
	case token.PipeAssign:
		return ir.OpBitOr, true
	case token.CaretAssign:
		return ir.OpBitXor, true
	case token.ShlAssign:
		return ir.OpShl, true
	case token.ShrAssign:
		return ir.OpShr, true
	default:
		return ir.OpInvalid, false
	}
}

func (p *Parser) parseTernary() (irbuild.Lowered, bool) {
	cond, ok := p.parseLogicalOr()
	if !ok {
		return irbuild.Lowered{}, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	loc := p.loc()
	p.advance()
	thenExpr, ok := p.parseAssignExpr()
	if !ok {
		return irbuild.Lowered{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectedToken, "expected ':' in ternary expression"); !ok {
		return irbuild.Lowered{}, false
	}
	elseExpr, ok := p.parseAssignExpr()
	if !ok {
		return irbuild.Lowered{}, false
	}
	return p.b.LowerTernary(loc, cond, thenExpr, elseExpr), true
}

// binaryLevel is one precedence tier: a next-tier parser and the set of
// operator tokens accepted at this tier, left-associative.
type binaryLevel struct {
	next func(*Parser) (irbuild.Lowered, bool)
	ops  map[token.Kind]ir.Operator
}

func (p *Parser) parseBinaryLevel(lvl binaryLevel) (irbuild.Lowered, bool) {
	lhs, ok := lvl.next(p)
	if !ok {
		return irbuild.Lowered{}, false
	}
	for {
		op, found := lvl.ops[p.ts.peek().Kind]
		if !found {
			return lhs, true
		}
		loc := p.loc()
		p.advance()
		rhs, ok := lvl.next(p)
		if !ok {
			return irbuild.Lowered{}, false
		}
		lhs = p.b.LowerBinary(loc, op, lhs, rhs)
	}
}

func (p *Parser) parseLogicalOr() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseLogicalAnd, ops: map[token.Kind]ir.Operator{token.PipePipe: ir.OpLogicalOr}})
}

func (p *Parser) parseLogicalAnd() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseBitOr, ops: map[token.Kind]ir.Operator{token.AmpAmp: ir.OpLogicalAnd}})
}

func (p *Parser) parseBitOr() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseBitXor, ops: map[token.Kind]ir.Operator{token.Pipe: ir.OpBitOr}})
}

func (p *Parser) parseBitXor() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseBitAnd, ops: map[token.Kind]ir.Operator{token.Caret: ir.OpBitXor}})
}

func (p *Parser) parseBitAnd() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseEquality, ops: map[token.Kind]ir.Operator{token.Amp: ir.OpBitAnd}})
}

func (p *Parser) parseEquality() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseRelational, ops: map[token.Kind]ir.Operator{
		token.EqEq: ir.OpEq, token.BangEq: ir.OpNe,
	}})
}

func (p *Parser) parseRelational() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseShift, ops: map[token.Kind]ir.Operator{
		token.Lt: ir.OpLt, token.Gt: ir.OpGt, token.LtEq: ir.OpLe, token.GtEq: ir.OpGe,
	}})
}

func (p *Parser) parseShift() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseAdditive, ops: map[token.Kind]ir.Operator{
		token.Shl: ir.OpShl, token.Shr: ir.OpShr,
	}})
}

func (p *Parser) parseAdditive() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseMultiplicative, ops: map[token.Kind]ir.Operator{
		token.Plus: ir.OpAdd, token.Minus: ir.OpSub,
	}})
}

func (p *Parser) parseMultiplicative() (irbuild.Lowered, bool) {
	return p.parseBinaryLevel(binaryLevel{next: (*Parser).parseUnary, ops: map[token.Kind]ir.Operator{
		token.Star: ir.OpMul, token.Slash: ir.OpDiv, token.Percent: ir.OpMod,
	}})
}

func (p *Parser) parseUnary() (irbuild.Lowered, bool) {
	switch p.ts.peek().Kind {
	case token.Bang:
		loc := p.loc()
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.b.LowerUnary(loc, ir.OpLogicalNot, operand), true
	case token.Tilde:
		loc := p.loc()
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.b.LowerUnary(loc, ir.OpBitNot, operand), true
	case token.Minus:
		loc := p.loc()
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.b.LowerUnary(loc, ir.OpNeg, operand), true
	case token.Plus:
		p.advance()
		return p.parseUnary()
	case token.PlusPlus:
		loc := p.loc()
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.b.LowerUnary(loc, ir.OpPreInc, operand), true
	case token.MinusMinus:
		loc := p.loc()
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.b.LowerUnary(loc, ir.OpPreDec, operand), true
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (irbuild.Lowered, bool) {
	base, ok := p.parsePrimary()
	if !ok {
		return irbuild.Lowered{}, false
	}
	for {
		switch p.ts.peek().Kind {
		case token.Dot:
			p.advance()
			tok := p.ts.peek()
			if !tok.IsIdentLike() {
				p.err(diag.SynUnexpectedToken, "expected a field name or swizzle after '.'")
				return irbuild.Lowered{}, false
			}
			p.advance()
			base, ok = p.lowerFieldOrSwizzle(tok.Loc(), base, tok.Text)
			if !ok {
				return irbuild.Lowered{}, false
			}
		case token.LBracket:
			p.advance()
			loc := p.loc()
			index, ok := p.parseExpr()
			if !ok {
				return irbuild.Lowered{}, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynExpectedToken, "expected ']' after index"); !ok {
				return irbuild.Lowered{}, false
			}
			base, ok = p.b.LowerIndex(loc, base, index)
			if !ok {
				return irbuild.Lowered{}, false
			}
		case token.PlusPlus:
			loc := p.loc()
			p.advance()
			base = p.b.LowerUnary(loc, ir.OpPostInc, base)
		case token.MinusMinus:
			loc := p.loc()
			p.advance()
			base = p.b.LowerUnary(loc, ir.OpPostDec, base)
		default:
			return base, true
		}
	}
}

// lowerFieldOrSwizzle disambiguates `.name` by the base operand's type
// class: a struct gets a field access, anything else a swizzle.
func (p *Parser) lowerFieldOrSwizzle(loc source.Location, base irbuild.Lowered, name string) (irbuild.Lowered, bool) {
	baseType, ok := p.b.Types.Lookup(base.Type(p.b))
	if !ok {
		return irbuild.Lowered{}, false
	}
	if baseType.Class == hlsltype.ClassStruct {
		return p.b.LowerRecordAccess(loc, base, p.b.Strings.Intern(name))
	}
	return p.b.LowerSwizzle(loc, base, name)
}

func (p *Parser) parsePrimary() (irbuild.Lowered, bool) {
	tok := p.ts.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.b.LowerConstant(tok.Loc(), p.pre.ByName["int"], ir.ConstantData{Base: hlsltype.BaseInt, IntVal: tok.IntValue}), true
	case token.FloatLit:
		p.advance()
		return p.b.LowerConstant(tok.Loc(), p.pre.ByName["float"], ir.ConstantData{Base: hlsltype.BaseFloat, FloatVal: tok.FloatValue}), true
	case token.BoolLit:
		p.advance()
		return p.b.LowerConstant(tok.Loc(), p.pre.ByName["bool"], ir.ConstantData{Base: hlsltype.BaseBool, BoolVal: tok.BoolValue}), true
	case token.StringLit:
		p.advance()
		return p.b.LowerConstant(tok.Loc(), p.pre.String, ir.ConstantData{}), true
	case token.LParen:
		p.advance()
		if p.isTypeStart() {
			target, ok := p.parseTypeSpec()
			if ok && p.at(token.RParen) {
				p.advance()
				operand, ok := p.parseUnary()
				if !ok {
					return irbuild.Lowered{}, false
				}
				return p.b.LowerCast(tok.Loc(), target, operand), true
			}
		}
		inner, ok := p.parseExpr()
		if !ok {
			return irbuild.Lowered{}, false
		}
		_, ok = p.expect(token.RParen, diag.SynExpectedToken, "expected ')'")
		return inner, ok
	case token.VarName:
		p.advance()
		if p.at(token.LParen) {
			return p.parseUnimplementedCall(tok.Loc())
		}
		name := p.b.Strings.Intern(tok.Text)
		v, ok := p.b.Scopes.Lookup(name)
		if !ok {
			p.err(diag.TypeUnknownName, "unknown variable")
			return irbuild.Lowered{}, false
		}
		return p.b.LowerVarRef(tok.Loc(), v), true
	case token.NewIdent:
		p.advance()
		if p.at(token.LParen) {
			return p.parseUnimplementedCall(tok.Loc())
		}
		p.err(diag.TypeUnknownName, "unknown identifier")
		return irbuild.Lowered{}, false
	case token.TypeName:
		target, ok := p.parseTypeSpec()
		if !ok {
			return irbuild.Lowered{}, false
		}
		return p.parseConstructorArgs(tok.Loc(), target)
	default:
		if p.isTypeStart() {
			target, ok := p.parseTypeSpec()
			if !ok {
				return irbuild.Lowered{}, false
			}
			return p.parseConstructorArgs(tok.Loc(), target)
		}
		p.err(diag.SynUnexpectedToken, "expected an expression")
		return irbuild.Lowered{}, false
	}
}

func (p *Parser) parseConstructorArgs(loc source.Location, target hlsltype.TypeID) (irbuild.Lowered, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectedToken, "expected '(' to start constructor arguments"); !ok {
		return irbuild.Lowered{}, false
	}
	var args []irbuild.Lowered
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseAssignExpr()
			if !ok {
				return irbuild.Lowered{}, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectedToken, "expected ')' to close constructor arguments"); !ok {
		return irbuild.Lowered{}, false
	}
	result, ok := p.b.LowerConstructor(loc, target, args)
	return result, ok
}

// parseUnimplementedCall consumes a call-expression's argument list
// (lowering each argument so its side effects and diagnostics still
// surface) without producing a call node - this front end's IR has no
// call-expression kind, so a function invocation is reported as
// unimplemented rather than lowered.
func (p *Parser) parseUnimplementedCall(loc source.Location) (irbuild.Lowered, bool) {
	p.advance() // '('
	var list ir.InstrList
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseAssignExpr()
			if !ok {
				return irbuild.Lowered{}, false
			}
			list = list.Concat(arg.List)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RParen, diag.SynExpectedToken, "expected ')' to close call arguments")
	p.b.Diags.Warning(diag.UnimplOperator, loc, "function-call expressions are not lowered")
	return irbuild.Lowered{List: list}, true
}

// parseBraceInitList parses `{ e1, e2, ... }`, lowering each element as a
// plain assignment-expression; a nested brace is reported as
// unimplemented rather than recursed into. The caller groups the flat
// element list into each target field's component width.
func (p *Parser) parseBraceInitList() []irbuild.Lowered {
	p.advance() // '{'
	var elems []irbuild.Lowered
	if !p.at(token.RBrace) {
		for {
			if p.at(token.LBrace) {
				loc := p.loc()
				p.b.Diags.Error(diag.UnimplNestedInit, loc, "nested initializer lists are not lowered")
				p.skipBalanced(token.LBrace, token.RBrace)
			} else {
				elem, ok := p.parseAssignExpr()
				if ok {
					elems = append(elems, elem)
				}
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			if p.at(token.RBrace) {
				break
			}
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelim, "expected '}' to close initializer list")
	return elems
}

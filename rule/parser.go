package rule

import (
	"fmt"
	"strings"
)

// Operator precedence levels for parsing expressions.
// Precedence order (lowest to highest): OR < XOR < AND < PREFIX
const (
	_ int = iota
	LOWEST
	OR
	XOR
	AND
	PREFIX
)

var precedences = map[TokenType]int{
	TokenOr:  OR,
	TokenXor: XOR,
	TokenAnd: AND,
}

// Parser parses tokens from a lexer into an abstract syntax tree.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	errors    []string
}

// NewParser creates a new parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses input into an expression tree.
func Parse(input string) (Expression, error) {
	return NewParser(NewLexer(input)).Parse()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// Errors returns the list of parsing errors encountered.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(pos int, format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("at %d: ", pos)+fmt.Sprintf(format, args...))
}

// Parse parses the input and returns an expression tree.
// Returns an error wrapping ErrSyntax if parsing fails or if there is trailing input.
func (p *Parser) Parse() (Expression, error) {
	if p.curToken.Type == TokenEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	expr := p.parseExpression(LOWEST)

	if len(p.errors) == 0 {
		switch p.peekToken.Type {
		case TokenEOF:
		case TokenError:
			p.lexerError(p.peekToken)
		default:
			p.addError(p.peekToken.Pos, "unexpected trailing token: %s", p.peekToken.Type)
		}
	}

	if len(p.errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(p.errors, "; "))
	}
	return expr, nil
}

func (p *Parser) lexerError(tok Token) {
	if msg, ok := tok.Value.(string); ok {
		p.addError(tok.Pos, "%s", msg)
		return
	}
	p.addError(tok.Pos, "invalid input: %s", tok.Literal)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) Expression {
	var left Expression

	switch p.curToken.Type {
	case TokenError:
		p.lexerError(p.curToken)
		return nil
	case TokenNot:
		left = p.parseUnaryExpression()
	case TokenLParen:
		left = p.parseGroupedExpression()
	case TokenIdent:
		left = p.parseIdentExpression()
	case TokenEOF:
		p.addError(p.curToken.Pos, "unexpected end of expression")
		return nil
	default:
		p.addError(p.curToken.Pos, "unexpected token: %s", p.curToken.Type)
		return nil
	}

	if left == nil {
		return nil
	}

	for p.peekToken.Type != TokenEOF && precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseBinaryExpression(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseUnaryExpression() Expression {
	operator := p.curToken.Type
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &UnaryExpr{
		Operator: operator,
		Operand:  operand,
	}
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekToken.Type != TokenRParen {
		p.addError(p.peekToken.Pos, "expected ), got %s", p.peekToken.Type)
		return nil
	}
	p.nextToken()
	return expr
}

func (p *Parser) parseIdentExpression() Expression {
	name := p.curToken.Literal
	if p.peekToken.Type == TokenLParen {
		return p.parseCallExpression(name)
	}
	return &IdentExpr{Name: name}
}

func (p *Parser) parseCallExpression(name string) Expression {
	p.nextToken() // consume '('
	p.nextToken() // move to first argument or ')'

	args := []any{}

	if p.curToken.Type == TokenRParen {
		return &CallExpr{Name: name, Arguments: args}
	}

	for {
		switch p.curToken.Type {
		case TokenInt, TokenString, TokenBool:
			args = append(args, p.curToken.Value)
		case TokenError:
			p.lexerError(p.curToken)
			return nil
		default:
			p.addError(p.curToken.Pos, "expected literal argument, got %s", p.curToken.Type)
			return nil
		}

		p.nextToken()
		switch p.curToken.Type {
		case TokenComma:
			p.nextToken()
		case TokenRParen:
			return &CallExpr{Name: name, Arguments: args}
		default:
			p.addError(p.curToken.Pos, "expected , or ), got %s", p.curToken.Type)
			return nil
		}
	}
}

func (p *Parser) parseBinaryExpression(left Expression) Expression {
	operator := p.curToken.Type
	precedence := precedences[operator]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

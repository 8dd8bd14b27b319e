package rule

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	node()
	String() string
}

// Expression represents an expression in the AST.
type Expression interface {
	Node
	expression()
}

// BinaryExpr represents a binary expression (e.g., left & right, left ^ right).
type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
}

func (b *BinaryExpr) node()       {}
func (b *BinaryExpr) expression() {}

// String renders the expression the way filter.Render renders the compiled tree.
func (b *BinaryExpr) String() string {
	switch b.Operator {
	case TokenAnd:
		return b.Left.String() + " & " + b.Right.String()
	case TokenXor:
		return "(" + b.Left.String() + " ^ " + b.Right.String() + ")"
	default:
		return "(" + b.Left.String() + " * " + b.Right.String() + ")"
	}
}

// UnaryExpr represents a negation (e.g., ~(expr), not expr).
type UnaryExpr struct {
	Operator TokenType
	Operand  Expression
}

func (u *UnaryExpr) node()       {}
func (u *UnaryExpr) expression() {}

func (u *UnaryExpr) String() string {
	return "~(" + u.Operand.String() + ")"
}

// IdentExpr references a registered predicate by name (e.g., nonzero).
type IdentExpr struct {
	Name string
}

func (i *IdentExpr) node()       {}
func (i *IdentExpr) expression() {}

func (i *IdentExpr) String() string {
	return i.Name
}

// CallExpr instantiates a registered factory with literal arguments
// (e.g., divisible_by(3)). Arguments are int64, string or bool.
type CallExpr struct {
	Name      string
	Arguments []any
}

func (c *CallExpr) node()       {}
func (c *CallExpr) expression() {}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Arguments))
	for i, arg := range c.Arguments {
		args[i] = formatLiteral(arg)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func formatLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

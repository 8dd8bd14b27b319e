package rule

// TokenType represents the type of a token in the rule language.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenString
	TokenInt
	TokenBool

	// Logical operators
	TokenAnd // &, &&, and
	TokenOr  // *, |, ||, or
	TokenXor // ^, ^^, xor
	TokenNot // ~, !, not

	// Delimiters
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,

	TokenError // lexer error
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "EOF",
	TokenIdent:  "IDENT",
	TokenString: "STRING",
	TokenInt:    "INT",
	TokenBool:   "BOOL",
	TokenAnd:    "&",
	TokenOr:     "*",
	TokenXor:    "^",
	TokenNot:    "~",
	TokenLParen: "(",
	TokenRParen: ")",
	TokenComma:  ",",
	TokenError:  "ERROR",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token in the rule language.
type Token struct {
	Type    TokenType
	Literal string
	Value   any
	Pos     int
}

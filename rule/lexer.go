package rule

import (
	"strconv"
	"strings"
)

// Lexer tokenizes rule expressions into tokens.
type Lexer struct {
	input string
	pos   int
	ch    byte
}

// NewLexer creates a new lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readOperatorToken handles single and doubled operator characters.
func (l *Lexer) readOperatorToken() (Token, bool) {
	doubled := func(tt TokenType) Token {
		if l.peekChar() == l.ch {
			lit := string([]byte{l.ch, l.ch})
			l.readChar()
			return Token{Type: tt, Literal: lit}
		}
		return Token{Type: tt, Literal: string(l.ch)}
	}

	switch l.ch {
	case '&':
		return doubled(TokenAnd), true
	case '|':
		return doubled(TokenOr), true
	case '^':
		return doubled(TokenXor), true
	case '*':
		return Token{Type: TokenOr, Literal: "*"}, true
	case '~', '!':
		return Token{Type: TokenNot, Literal: string(l.ch)}, true
	}
	return Token{}, false
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	pos := l.pos

	if tok, ok := l.readOperatorToken(); ok {
		l.readChar()
		tok.Pos = pos
		return tok
	}

	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF}
	case '(':
		tok = Token{Type: TokenLParen, Literal: "("}
	case ')':
		tok = Token{Type: TokenRParen, Literal: ")"}
	case ',':
		tok = Token{Type: TokenComma, Literal: ","}
	case '"':
		tok = l.readString()
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok = l.readIdentifierToken()
			tok.Pos = pos
			return tok
		case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
			tok = l.readNumberToken()
			tok.Pos = pos
			return tok
		default:
			tok = Token{Type: TokenError, Literal: string(l.ch), Value: "unexpected character: " + string(l.ch)}
		}
	}

	l.readChar()
	tok.Pos = pos
	return tok
}

// readString scans a double-quoted literal and decodes it with
// strconv.Unquote, the inverse of the strconv.Quote used for rendering.
func (l *Lexer) readString() Token {
	start := l.pos - 1

	l.readChar()
	for l.ch != '"' {
		if l.ch == '\\' {
			l.readChar()
		}
		if l.ch == 0 {
			return Token{Type: TokenError, Literal: l.input[start:], Value: "unterminated string"}
		}
		l.readChar()
	}

	quoted := l.input[start:l.pos]
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return Token{Type: TokenError, Literal: quoted, Value: "invalid string literal: " + quoted}
	}
	return Token{Type: TokenString, Literal: quoted, Value: value}
}

func (l *Lexer) readRawString() (string, bool) {
	l.readChar() // consume opening "
	start := l.pos - 1

	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}

	if l.ch == 0 {
		return l.input[start : l.pos-1], false
	}

	return l.input[start : l.pos-1], true
}

func (l *Lexer) readIdentifier() string {
	start := l.pos - 1
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

// isLetter checks if the byte is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit checks if the byte is an ASCII digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '.' || ch == ':' || ch == '-'
}

func (l *Lexer) readIdentifierToken() Token {
	// r"..." is a raw string without escapes
	if l.ch == 'r' && l.peekChar() == '"' {
		l.readChar() // consume 'r'
		literal, ok := l.readRawString()
		if !ok {
			return Token{Type: TokenError, Literal: literal, Value: "unterminated raw string"}
		}
		l.readChar() // consume closing "
		return Token{Type: TokenString, Literal: literal, Value: literal}
	}

	literal := l.readIdentifier()
	tok := Token{Literal: literal}

	switch strings.ToLower(literal) {
	case "and":
		tok.Type = TokenAnd
	case "or":
		tok.Type = TokenOr
	case "xor":
		tok.Type = TokenXor
	case "not":
		tok.Type = TokenNot
	case "true":
		tok.Type = TokenBool
		tok.Value = true
	case "false":
		tok.Type = TokenBool
		tok.Value = false
	default:
		tok.Type = TokenIdent
		tok.Value = literal
	}
	return tok
}

func (l *Lexer) readNumberToken() Token {
	start := l.pos - 1
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start : l.pos-1]

	val, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return Token{Type: TokenError, Literal: literal, Value: "integer overflow: " + literal}
	}
	return Token{Type: TokenInt, Literal: literal, Value: val}
}

package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	t.Run("operators", func(t *testing.T) {
		input := "& && and | || or * ^ ^^ xor ~ ! not AND Or"
		lexer := NewLexer(input)

		tests := []TokenType{
			TokenAnd, TokenAnd, TokenAnd,
			TokenOr, TokenOr, TokenOr, TokenOr,
			TokenXor, TokenXor, TokenXor,
			TokenNot, TokenNot, TokenNot,
			TokenAnd, TokenOr, TokenEOF,
		}

		for _, expected := range tests {
			tok := lexer.NextToken()
			assert.Equal(t, expected, tok.Type)
		}
	})

	t.Run("literals", func(t *testing.T) {
		input := `"a\"b\n" r"raw\n" 42 -7 true FALSE`
		lexer := NewLexer(input)

		tests := []struct {
			typ   TokenType
			value any
		}{
			{TokenString, "a\"b\n"},
			{TokenString, `raw\n`},
			{TokenInt, int64(42)},
			{TokenInt, int64(-7)},
			{TokenBool, true},
			{TokenBool, false},
			{TokenEOF, nil},
		}

		for _, tt := range tests {
			tok := lexer.NextToken()
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.value, tok.Value)
		}
	})

	t.Run("string escapes", func(t *testing.T) {
		tests := []struct {
			input string
			want  string
		}{
			{`"\a\b\f\v"`, "\a\b\f\v"},
			{`"\x41\u00e9\U0001F600"`, "A\u00e9\U0001F600"},
			{`"\xff"`, "\xff"},
			{`"tab\tquote\"slash\\"`, "tab\tquote\"slash\\"},
		}

		for _, tt := range tests {
			tok := NewLexer(tt.input).NextToken()
			assert.Equal(t, TokenString, tok.Type, tt.input)
			assert.Equal(t, tt.want, tok.Value, tt.input)
		}
	})

	t.Run("identifiers", func(t *testing.T) {
		input := "is_even _x name.sub:red a-b nonzero2"
		lexer := NewLexer(input)

		for _, expected := range []string{"is_even", "_x", "name.sub:red", "a-b", "nonzero2"} {
			tok := lexer.NextToken()
			assert.Equal(t, TokenIdent, tok.Type)
			assert.Equal(t, expected, tok.Literal)
		}
		assert.Equal(t, TokenEOF, lexer.NextToken().Type)
	})

	t.Run("delimiters", func(t *testing.T) {
		lexer := NewLexer("f(1, 2)")

		tests := []TokenType{TokenIdent, TokenLParen, TokenInt, TokenComma, TokenInt, TokenRParen, TokenEOF}
		for _, expected := range tests {
			assert.Equal(t, expected, lexer.NextToken().Type)
		}
	})

	t.Run("positions", func(t *testing.T) {
		lexer := NewLexer("a &&  b")

		assert.Equal(t, 1, lexer.NextToken().Pos)
		assert.Equal(t, 3, lexer.NextToken().Pos)
		assert.Equal(t, 7, lexer.NextToken().Pos)
	})

	t.Run("no whitespace", func(t *testing.T) {
		lexer := NewLexer("a&~b")

		tests := []TokenType{TokenIdent, TokenAnd, TokenNot, TokenIdent, TokenEOF}
		for _, expected := range tests {
			assert.Equal(t, expected, lexer.NextToken().Type)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"unterminated string", `"open`},
			{"unterminated raw string", `r"open`},
			{"unterminated string", `"open\"`},
			{"invalid string literal", `"bad \q"`},
			{"unexpected character", "@"},
			{"integer overflow", "99999999999999999999"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tok := NewLexer(tt.input).NextToken()
				assert.Equal(t, TokenError, tok.Type)
				assert.Contains(t, tok.Value, tt.name)
			})
		}
	})
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "&", TokenAnd.String())
	assert.Equal(t, "*", TokenOr.String())
	assert.Equal(t, "^", TokenXor.String())
	assert.Equal(t, "~", TokenNot.String())
	assert.Equal(t, "EOF", TokenEOF.String())
	assert.Equal(t, "UNKNOWN", TokenType(200).String())
}

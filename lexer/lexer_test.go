package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScan_Punctuation(t *testing.T) {
	l := New("(){},.-+;*?:")
	tokens := l.Scan()
	assert.Equal(t, []Kind{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, QUESTION, COLON, EOF,
	}, kinds(tokens))
}

func TestScan_TwoCharOperators(t *testing.T) {
	l := New("! != = == < <= > >=")
	tokens := l.Scan()
	assert.Equal(t, []Kind{
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL,
		GREATER, GREATER_EQUAL, EOF,
	}, kinds(tokens))
}

func TestScan_NumberLiteral(t *testing.T) {
	l := New("123 45.67 8.")
	tokens := l.Scan()
	require := assert.New(t)
	require.Equal(123.0, tokens[0].Literal)
	require.Equal(45.67, tokens[1].Literal)
	// "8." - the '.' is not followed by a digit, so it's not consumed.
	require.Equal(8.0, tokens[2].Literal)
	require.Equal(DOT, tokens[3].Kind)
}

func TestScan_StringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tokens := l.Scan()
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScan_StringLiteralSpansLines(t *testing.T) {
	l := New("\"line one\nline two\"\nvar")
	tokens := l.Scan()
	assert.Equal(t, "line one\nline two", tokens[0].Literal)
	assert.Equal(t, 3, tokens[1].Line)
}

func TestScan_UnterminatedString(t *testing.T) {
	l := New(`"oops`)
	tokens := l.Scan()
	assert.Equal(t, []Kind{EOF}, kinds(tokens))
	assert.Len(t, l.Diagnostics, 1)
	assert.Contains(t, l.Diagnostics[0].Message, "Unterminated string")
}

func TestScan_Keywords(t *testing.T) {
	l := New("and break class else false for fun if nil or return super this true var while")
	tokens := l.Scan()
	assert.Equal(t, []Kind{
		AND, BREAK, CLASS, ELSE, FALSE, FOR, FUN, IF, NIL, OR, RETURN,
		SUPER, THIS, TRUE, VAR, WHILE, EOF,
	}, kinds(tokens))
}

func TestScan_LineComment(t *testing.T) {
	l := New("1 // comment\n2")
	tokens := l.Scan()
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestScan_NestedBlockComment(t *testing.T) {
	l := New("1 /* outer /* inner */ still outer */ 2")
	tokens := l.Scan()
	assert.Equal(t, []Kind{NUMBER, NUMBER, EOF}, kinds(tokens))
	assert.Empty(t, l.Diagnostics)
}

func TestScan_UnterminatedBlockCommentReportsOpeningLine(t *testing.T) {
	l := New("1\n/* never closed\nstill open")
	l.Scan()
	require := assert.New(t)
	require.Len(l.Diagnostics, 1)
	require.Equal(2, l.Diagnostics[0].Line)
}

func TestScan_UnexpectedCharacterContinues(t *testing.T) {
	l := New("1 @ 2")
	tokens := l.Scan()
	assert.Equal(t, []Kind{NUMBER, NUMBER, EOF}, kinds(tokens))
	assert.Len(t, l.Diagnostics, 1)
}

package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/scanner"
	"github.com/mna/luci/lang/token"
)

func TestScannerTokens(t *testing.T) {
	src := `x = 3 + 4 * 2
if x < 10 then
  print(x)
end # trailing comment`
	fset := token.NewFileSet()
	f := fset.AddFile("t.luci", []byte(src))
	s := scanner.New(f, src)

	var got []token.Token
	for {
		_, tok, _ := s.Next()
		got = append(got, tok)
		if tok == token.EOF {
			break
		}
	}

	want := []token.Token{
		token.IDENT, token.EQ, token.INT, token.PLUS, token.INT, token.STAR, token.INT,
		token.IF, token.IDENT, token.LT, token.INT, token.THEN,
		token.IDENT, token.LPAREN, token.IDENT, token.RPAREN,
		token.END, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestScannerStringEscapes(t *testing.T) {
	src := `"a\nb"`
	fset := token.NewFileSet()
	f := fset.AddFile("t.luci", []byte(src))
	s := scanner.New(f, src)
	_, tok, lit := s.Next()
	require.Equal(t, token.STRING, tok)
	require.Equal(t, "a\nb", lit)
}

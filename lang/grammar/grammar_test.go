package grammar

import (
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(Source))
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Chunk"); err != nil {
		t.Fatal(err)
	}
}

package rt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/lang/rt"
)

// TestEndToEndScenarios encodes the six acceptance scenarios: compile and
// run the literal source text, assert the literal concatenated stdout.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  []string
		want string
	}{
		{
			name: "arithmetic precedence",
			src:  []string{`x = 3 + 4 * 2`, `print(x)`},
			want: "11",
		},
		{
			name: "string iteration and concatenation",
			src:  []string{`s = ""`, `for c in "abc" do s = s + c done`, `print(s)`},
			want: "abc",
		},
		{
			name: "while loop accumulation",
			src:  []string{`n = 0`, `i = 1`, `while i < 5 do n = n + i; i = i + 1 done`, `print(n)`},
			want: "10",
		},
		{
			name: "map get/put",
			src:  []string{`m = {"a": 1, "b": 2}`, `m["b"] = m["a"] + m["b"]`, `print(m["b"])`},
			want: "3",
		},
		{
			name: "recursive fibonacci",
			src:  []string{`f = func (n) if n < 2 then return n else return f(n-1) + f(n-2) end`, `print(f(10))`},
			want: "55",
		},
		{
			name: "list iteration with break",
			src:  []string{`l = [1,2,3]`, `for x in l do if x == 2 then break end end`, `print(l[0], l[2])`},
			want: "1 3",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			runtime := rt.New()
			runtime.Stdout = &stdout

			_, err := runtime.Run(tc.name, []byte(strings.Join(tc.src, "\n")))
			require.NoError(t, err)
			require.Equal(t, tc.want, stdout.String())
		})
	}
}

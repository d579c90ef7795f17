package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tagged fence",
			in:   "```python\ncode\n```",
			want: "code",
		},
		{
			name: "surrounding whitespace",
			in:   "\n\n  ```go\nfunc main() {\n\t// entry point\n\tprintln(1)\n}\n```\n ",
			want: "func main() {\n\t// entry point\n\tprintln(1)\n}",
		},
		{
			name: "keeps blank lines and indentation",
			in:   "```\n  a\n\n    b\n```",
			want: "  a\n\n    b",
		},
		{
			name: "drops last line even if not a fence",
			in:   "```js\nconst a = 1;\nconst b = 2;",
			want: "const a = 1;",
		},
		{
			name: "only the opening fence",
			in:   "```",
			want: "",
		},
		{
			name: "empty fenced block",
			in:   "```py\n```",
			want: "",
		},
		{
			name: "no fence is unchanged",
			in:   "  x = 1  # set x\n",
			want: "  x = 1  # set x\n",
		},
		{
			name: "fence later in text is unchanged",
			in:   "Here you go:\n```py\nx\n```",
			want: "Here you go:\n```py\nx\n```",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		match   []string
		reject  []string
	}{
		{
			name:    "literal",
			pattern: "package.json",
			match:   []string{"package.json"},
			reject:  []string{"packageXjson", "package.json.bak", "apackage.json"},
		},
		{
			name:    "suffix glob",
			pattern: "*.txt",
			match:   []string{"a.txt", ".txt", "b.c.txt"},
			reject:  []string{"a.txt.gz", "atxt"},
		},
		{
			name:    "bare star",
			pattern: "*",
			match:   []string{"anything", ""},
		},
		{
			name:    "metacharacters are literal",
			pattern: "a+(b)[c]{d}^$|\\.md",
			match:   []string{"a+(b)[c]{d}^$|\\.md"},
			reject:  []string{"aa(b)[c]{d}^$|\\.md"},
		},
		{
			name:    "question mark is literal",
			pattern: "why?.txt",
			match:   []string{"why?.txt"},
			reject:  []string{"whyy.txt"},
		},
		{
			name:    "regex literal is unanchored",
			pattern: "/v[0-9]+/",
			match:   []string{"v1", "api-v22-old"},
			reject:  []string{"vx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			require.NoError(t, err)
			for _, name := range tt.match {
				assert.True(t, m.Match(name), "%q should match %q", tt.pattern, name)
			}
			for _, name := range tt.reject {
				assert.False(t, m.Match(name), "%q should not match %q", tt.pattern, name)
			}
		})
	}
}

func TestCompile_InvalidRegex(t *testing.T) {
	_, err := Compile("/[unclosed/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/[unclosed/")
}

func TestKinds(t *testing.T) {
	assert.True(t, IsRegex("/a/"))
	assert.False(t, IsRegex("/"))
	assert.True(t, IsWildcard("*.go"))
	assert.False(t, IsWildcard("/.*/"))
	assert.True(t, IsLiteral("main.go"))
	assert.False(t, IsLiteral("/main/"))
}

func TestPrecedence(t *testing.T) {
	patterns := []string{"*.txt", "a.txt", "/b/", "c.txt", "*", "/.*x/"}
	assert.Equal(t, []int{1, 2, 3, 0, 4, 5}, Precedence(patterns))
}

func TestIgnore(t *testing.T) {
	ig, err := NewIgnore("/repo", []string{"node_modules", "**/*.log", "src/gen"})
	require.NoError(t, err)

	assert.True(t, ig.Match("node_modules", "/repo/node_modules"))
	assert.True(t, ig.Match("node_modules", "/repo/packages/a/node_modules"))
	assert.True(t, ig.Match("debug.log", "/repo/a/b/debug.log"))
	assert.True(t, ig.Match("gen", "/repo/src/gen"))
	assert.False(t, ig.Match("gen", "/repo/lib/gen"))
	assert.False(t, ig.Match("main.go", "/repo/main.go"))

	var none *Ignore
	assert.False(t, none.Match("x", "/x"))

	_, err = NewIgnore("/", []string{"[a-"})
	assert.Error(t, err)
}

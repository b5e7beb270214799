package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, r Rule, content string) (bool, error) {
	t.Helper()
	return r.Validate(context.Background(), []byte(content))
}

func TestSimpleRules(t *testing.T) {
	re, err := Matches(`^# `)
	require.NoError(t, err)

	tests := []struct {
		name    string
		rule    Rule
		content string
		want    bool
	}{
		{"not empty", NotEmpty(), "x", true},
		{"not empty blank", NotEmpty(), " \n\t", false},
		{"min length", MinLength(3), "abc", true},
		{"min length runes", MinLength(3), "日本", false},
		{"max length", MaxLength(2), "日本", true},
		{"max length over", MaxLength(2), "abc", false},
		{"contains all", Contains("react", "vite"), `{"react":1,"vite":2}`, true},
		{"contains missing", Contains("react", "vue"), `{"react":1}`, false},
		{"matches", re, "# Title\n", true},
		{"matches miss", re, "Title\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := validate(t, tt.rule, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestMatches_Invalid(t *testing.T) {
	_, err := Matches("(")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	r := All(NotEmpty(), MinLength(5))
	assert.Equal(t, "not empty and min length 5", r.String())

	ok, err := validate(t, r, "hello")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validate(t, r, "hi")
	assert.False(t, ok)
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "min length 5", f.Rule)
}

func TestJSONPath(t *testing.T) {
	r, err := JSONPath("$.dependencies.react")
	require.NoError(t, err)

	ok, err := validate(t, r, `{"dependencies":{"react":"^18"}}`)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validate(t, r, `{"dependencies":{}}`)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = validate(t, r, `{not json`)
	assert.False(t, ok)
	assert.Error(t, err)

	_, err = JSONPath("$[")
	assert.Error(t, err)
}

func TestCEL(t *testing.T) {
	r, err := CEL(`size > 0 && content.startsWith("#")`)
	require.NoError(t, err)

	ok, err := validate(t, r, "# readme")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validate(t, r, "readme")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CEL(`size + 1`)
	assert.Error(t, err, "non-bool expressions are rejected")

	_, err = CEL(`unknown == 1`)
	assert.Error(t, err)
}

func TestSyntax(t *testing.T) {
	r, err := Syntax("go")
	require.NoError(t, err)

	ok, err := validate(t, r, "package main\n\nfunc main() {}\n")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validate(t, r, "package main\n\nfunc main() {\n")
	assert.False(t, ok)
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "syntax go", f.Rule)

	_, err = Syntax("cobol")
	assert.Error(t, err)
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, "typescript", LanguageFor("*.ts"))
	assert.Equal(t, "tsx", LanguageFor("App.TSX"))
	assert.Equal(t, "go", LanguageFor("main.go"))
	assert.Equal(t, "", LanguageFor("README"))
}

func TestFormatted(t *testing.T) {
	r := Formatted()

	ok, err := validate(t, r, "package main\n\nfunc main() {}\n")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = validate(t, r, "package main\nfunc main()   {}\n")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoDiagnostics(t *testing.T) {
	src := []byte("package main\n\nvar names []string\n\nvar ids = []int{}\n")
	diags, err := GoDiagnostics(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(2), diags[0].Line)

	ok, err := GoLint().Validate(context.Background(), src)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "nil slice")

	ok, err = GoLint().Validate(context.Background(), []byte("package main\n\nvar ids = []int{}\n"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWellFormed(t *testing.T) {
	tests := []struct {
		format  string
		content string
		want    bool
	}{
		{FormatJSON, `{"a":[1,2]}`, true},
		{FormatJSON, `{"a":`, false},
		{FormatYAML, "a:\n  - 1\n", true},
		{FormatYAML, "a: [1\n", false},
		{FormatHCL, "name = \"x\"\n", true},
		{FormatHCL, "name = {\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := WellFormed(tt.format)
			require.NoError(t, err)
			ok, _ := validate(t, r, tt.content)
			assert.Equal(t, tt.want, ok)
		})
	}

	_, err := WellFormed("toml")
	assert.Error(t, err)
}

func TestRules_Build(t *testing.T) {
	r, err := Rules{}.Build("x")
	require.NoError(t, err)
	assert.Nil(t, r)

	n := 2
	r, err = Rules{NotEmpty: true, MinLength: &n, WellFormed: Auto}.Build("package.json")
	require.NoError(t, err)
	assert.Equal(t, "not empty and min length 2 and well formed json", r.String())

	r, err = Rules{Syntax: Auto}.Build("*.tsx")
	require.NoError(t, err)
	assert.Equal(t, "syntax tsx", r.String())

	_, err = Rules{Syntax: Auto}.Build("LICENSE")
	assert.Error(t, err)

	_, err = Rules{CEL: "size >"}.Build("x")
	assert.Error(t, err)
}

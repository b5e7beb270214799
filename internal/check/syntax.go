package check

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	sqllang "github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

var languages = map[string]func() *sitter.Language{
	"go":         golang.GetLanguage,
	"python":     python.GetLanguage,
	"javascript": javascript.GetLanguage,
	"typescript": typescript.GetLanguage,
	"tsx":        tsx.GetLanguage,
	"sql":        sqllang.GetLanguage,
	"css":        css.GetLanguage,
	"html":       html.GetLanguage,
}

var extensions = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".sql":  "sql",
	".css":  "css",
	".html": "html",
	".htm":  "html",
}

// LanguageFor maps a file name (or a pattern such as "*.ts") to a parser
// language name, or "" when none is known.
func LanguageFor(name string) string {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

type syntaxRule struct {
	lang string
	get  func() *sitter.Language
}

// Syntax requires the content to parse without ERROR or MISSING nodes in the
// given language.
func Syntax(lang string) (Rule, error) {
	get, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("syntax: unknown language %q", lang)
	}
	return &syntaxRule{lang: lang, get: get}, nil
}

func (r *syntaxRule) Validate(ctx context.Context, content []byte) (bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(r.get())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("tree-sitter parse: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		return false, fmt.Errorf("tree-sitter returned nil root")
	}
	if !root.HasError() {
		return true, nil
	}

	f := &Failure{Rule: r.String(), Detail: "syntax error"}
	if n := firstError(root); n != nil {
		f.Line = int(n.StartPoint().Row) + 1
		f.Column = int(n.StartPoint().Column) + 1
	}
	return false, f
}

func (r *syntaxRule) String() string { return "syntax " + r.lang }

// firstError does a depth-first search for the first ERROR or MISSING node.
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

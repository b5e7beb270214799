package check

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Diagnostic is one finding of GoDiagnostics.
type Diagnostic struct {
	Message string
	Line    uint32 // 0-indexed
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line+1, d.Message)
}

// Slice declarations; the ones without a value field are nil slices.
const sliceDeclQuery = `
	(var_declaration
		(var_spec
			name: (identifier)
			type: (slice_type)
		) @decl
	)
`

// GoDiagnostics reports static analysis findings for Go source. The only rule
// flags nil slice declarations, which encode as JSON null.
func GoDiagnostics(ctx context.Context, content []byte) ([]Diagnostic, error) {
	lang := golang.GetLanguage()
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}

	q, err := sitter.NewQuery([]byte(sliceDeclQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	qc := sitter.NewQueryCursor()
	qc.Exec(q, tree.RootNode())

	var diags []Diagnostic
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			hasValue := false
			for i := 0; i < int(c.Node.ChildCount()); i++ {
				if c.Node.FieldNameForChild(i) == "value" {
					hasValue = true
					break
				}
			}
			if !hasValue {
				diags = append(diags, Diagnostic{
					Message: "nil slice declaration, consider make([]T, 0) for JSON compatibility",
					Line:    c.Node.StartPoint().Row,
				})
			}
		}
	}
	return diags, nil
}

type goLint struct{}

// GoLint rejects Go source with any GoDiagnostics finding.
func GoLint() Rule { return goLint{} }

func (goLint) Validate(ctx context.Context, content []byte) (bool, error) {
	diags, err := GoDiagnostics(ctx, content)
	if err != nil {
		return false, err
	}
	if len(diags) == 0 {
		return true, nil
	}
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.String()
	}
	return false, &Failure{
		Rule:   "go lint",
		Line:   int(diags[0].Line) + 1,
		Detail: strings.Join(msgs, "; "),
	}
}

func (goLint) String() string { return "go lint" }

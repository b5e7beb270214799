package check

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

type jsonPath struct {
	src  string
	expr jp.Expr
}

// JSONPath requires the content to be JSON in which expr selects at least one value.
func JSONPath(expr string) (Rule, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	return &jsonPath{src: expr, expr: x}, nil
}

func (r *jsonPath) Validate(_ context.Context, content []byte) (bool, error) {
	doc, err := oj.Parse(content)
	if err != nil {
		return false, &Failure{Rule: r.String(), Detail: err.Error()}
	}
	return len(r.expr.Get(doc)) > 0, nil
}

func (r *jsonPath) String() string { return "json path " + r.src }

package check

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
)

type celRule struct {
	src string
	prg cel.Program
}

// CEL compiles a boolean expression over two variables: content (string) and
// size (int, bytes).
func CEL(expr string) (Rule, error) {
	env, err := cel.NewEnv(
		cel.Variable("content", cel.StringType),
		cel.Variable("size", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("cel %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("cel %q: result is %s, want bool", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel %q: %w", expr, err)
	}
	return &celRule{src: expr, prg: prg}, nil
}

func (r *celRule) Validate(ctx context.Context, content []byte) (bool, error) {
	out, _, err := r.prg.ContextEval(ctx, map[string]any{
		"content": string(content),
		"size":    int64(len(content)),
	})
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, &Failure{Rule: r.String(), Detail: err.Error()}
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, &Failure{Rule: r.String(), Detail: fmt.Sprintf("result %v is not a bool", out.Value())}
	}
	return ok, nil
}

func (r *celRule) String() string { return "cel " + r.src }

package check

import (
	"bytes"
	"context"

	"mvdan.cc/gofumpt/format"
)

type formatted struct{}

// Formatted requires Go source to be unchanged by gofumpt.
func Formatted() Rule { return formatted{} }

func (formatted) Validate(_ context.Context, content []byte) (bool, error) {
	out, err := format.Source(content, format.Options{})
	if err != nil {
		return false, &Failure{Rule: "gofumpt formatted", Detail: err.Error()}
	}
	return bytes.Equal(out, content), nil
}

func (formatted) String() string { return "gofumpt formatted" }

// Package report renders engine results for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/HenryVilani/directory-lint/api"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Printer writes results to one writer.
type Printer struct {
	w      io.Writer
	format string

	red, green, yellow, cyan, bold *color.Color
}

// New returns a Printer. Text output is colored only when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("invalid output format %q, must be text or json", format)
	}
	p := &Printer{
		w:      w,
		format: format,
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}
	enable := isTerminal(w) && os.Getenv("NO_COLOR") == ""
	for _, c := range []*color.Color{p.red, p.green, p.yellow, p.cyan, p.bold} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// JSON writes v indented.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Validate renders a validation result.
func (p *Printer) Validate(res *api.ValidateResult) error {
	if p.format == FormatJSON {
		return p.JSON(res)
	}

	if res.Valid {
		p.green.Fprint(p.w, "✓ ")
		fmt.Fprintf(p.w, "%s is valid (%d entries matched)\n", res.Root, countNodes(res.Paths))
	} else {
		p.red.Fprint(p.w, "✗ ")
		fmt.Fprintf(p.w, "%s is invalid (%d %s)\n", res.Root, len(res.Errors), plural(len(res.Errors), "error", "errors"))
	}
	width := kindWidth(res.Errors)
	for _, e := range res.Errors {
		fmt.Fprint(p.w, "  ")
		p.red.Fprintf(p.w, "%-*s", width, e.Kind)
		fmt.Fprintf(p.w, "  %s  %s\n", e.Path, e.Message)
	}
	p.warnings(res.Warnings)
	return nil
}

// Generate renders a generation result.
func (p *Printer) Generate(res *api.GenerateResult) error {
	if p.format == FormatJSON {
		return p.JSON(res)
	}

	for _, c := range res.Changes {
		switch c.Kind {
		case api.ChangeOverwroteFile:
			p.yellow.Fprint(p.w, "~ ")
		default:
			p.green.Fprint(p.w, "+ ")
		}
		fmt.Fprintln(p.w, c.Path)
	}
	p.warnings(res.Warnings)
	p.bold.Fprintf(p.w, "%s: %d %s", res.Root, len(res.Changes), plural(len(res.Changes), "change", "changes"))
	fmt.Fprintln(p.w)
	return nil
}

// Tree renders result nodes as an indented tree.
func (p *Printer) Tree(nodes []*api.ResultNode) {
	p.tree(nodes, 0)
}

func (p *Printer) tree(nodes []*api.ResultNode, depth int) {
	for _, n := range nodes {
		fmt.Fprint(p.w, strings.Repeat("  ", depth))
		if n.Type == api.DirectoryType {
			p.cyan.Fprintln(p.w, n.Name+"/")
		} else {
			fmt.Fprintln(p.w, n.Name)
		}
		p.tree(n.Children, depth+1)
	}
}

func (p *Printer) warnings(ws []api.Warning) {
	for _, w := range ws {
		p.yellow.Fprint(p.w, "  warning  ")
		fmt.Fprintf(p.w, "%s  %s\n", w.Path, w.Message)
	}
}

func countNodes(nodes []*api.ResultNode) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

func kindWidth(problems []api.Problem) int {
	w := 0
	for _, p := range problems {
		if l := len(p.Kind); l > w {
			w = l
		}
	}
	return w
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package api

import (
	"errors"
	"fmt"
)

// ResultNode mirrors one schema entry realized on storage.
type ResultNode struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Type     NodeType      `json:"type"`
	Children []*ResultNode `json:"children,omitempty"`
}

// ProblemKind classifies validation errors and generation warnings.
type ProblemKind string

const (
	ProblemMissing     ProblemKind = "missing"
	ProblemInvalidType ProblemKind = "invalid-type"
	ProblemCustom      ProblemKind = "custom"
)

// ErrInvalidStructure is wrapped by missing and invalid-type problems.
var ErrInvalidStructure = errors.New("invalid structure")

// ErrInvalidContent is wrapped by custom content problems.
var ErrInvalidContent = errors.New("invalid content")

// Problem is a validation error recorded at a path.
type Problem struct {
	Kind    ProblemKind `json:"type"`
	Path    string      `json:"path"`
	Message string      `json:"message"`
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Unwrap lets callers match problems with errors.Is.
func (p Problem) Unwrap() error {
	if p.Kind == ProblemCustom {
		return ErrInvalidContent
	}
	return ErrInvalidStructure
}

// Warning is a non-fatal note recorded during a traversal.
type Warning struct {
	Kind    ProblemKind `json:"type,omitempty"`
	Path    string      `json:"path"`
	Message string      `json:"message"`
}

// ChangeKind names a mutation performed by generation.
type ChangeKind string

const (
	ChangeCreatedDirectory ChangeKind = "created-directory"
	ChangeCreatedFile      ChangeKind = "created-file"
	ChangeOverwroteFile    ChangeKind = "overwrote-file"
)

// Change is one mutation applied to storage by generation.
type Change struct {
	Kind ChangeKind `json:"kind"`
	Path string     `json:"path"`
}

// GenerateResult is the outcome of one top-level generation.
type GenerateResult struct {
	Root     string        `json:"root"`
	Paths    []*ResultNode `json:"paths"`
	Warnings []Warning     `json:"warnings,omitempty"`
	Changes  []Change      `json:"changes,omitempty"`
}

// ValidateResult is the outcome of one top-level validation. A single
// instance is shared by every level of the traversal.
type ValidateResult struct {
	Root     string        `json:"root"`
	Valid    bool          `json:"valid"`
	Errors   []Problem     `json:"errors"`
	Warnings []Warning     `json:"warnings,omitempty"`
	Paths    []*ResultNode `json:"paths"`
}

// AddError records a problem and marks the result invalid.
func (r *ValidateResult) AddError(kind ProblemKind, path, message string) {
	r.Errors = append(r.Errors, Problem{Kind: kind, Path: path, Message: message})
	r.Valid = false
}

// AddWarning records a warning. Warnings never affect Valid.
func (r *ValidateResult) AddWarning(kind ProblemKind, path, message string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Path: path, Message: message})
}

// Err joins all recorded problems, or returns nil for a valid tree.
func (r *ValidateResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, p := range r.Errors {
		errs[i] = p
	}
	return errors.Join(errs...)
}

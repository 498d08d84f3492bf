// Package validation checks an env file against its template.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in an env file.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// Validator compares a target env file with its template.
type Validator struct {
	Target string
	Source string
	// Generate lists keys that hold generated secrets. They must be present
	// and non-empty in the target even when the template does not name them.
	Generate []string
}

// NewValidator creates a new Validator.
func NewValidator(target, source string, generate []string) *Validator {
	return &Validator{Target: target, Source: source, Generate: generate}
}

// Validate runs every check and returns the combined result.
//
// Errors: a missing file, template keys absent from the target, and generated
// keys that are absent or empty. Warnings: target values left empty where the
// template has one, and target keys the template does not know about.
func (v *Validator) Validate() *Result {
	result := &Result{Issues: []Issue{}}

	template, issue := v.load(v.Source, "template")
	if issue != nil {
		result.Issues = append(result.Issues, *issue)
	}
	target, issue := v.load(v.Target, "target")
	if issue != nil {
		result.Issues = append(result.Issues, *issue)
	}
	if template == nil || target == nil {
		return result
	}

	generated := make(map[string]bool, len(v.Generate))
	for _, k := range v.Generate {
		generated[k] = true
	}

	for _, key := range template.Keys() {
		value, ok := target.Get(key)
		switch {
		case !ok:
			result.Issues = append(result.Issues, Issue{
				File:     v.Target,
				Field:    key,
				Message:  fmt.Sprintf("%s is missing (defined in %s)", key, v.Source),
				Severity: SeverityError,
			})
		case value == "" && strings.TrimSpace(template.Value(key)) != "" && !generated[key]:
			result.Issues = append(result.Issues, Issue{
				File:     v.Target,
				Field:    key,
				Message:  fmt.Sprintf("%s is empty but the template has a value", key),
				Severity: SeverityWarning,
			})
		}
	}

	for _, key := range v.Generate {
		value, ok := target.Get(key)
		switch {
		case !ok && !template.Has(key):
			result.Issues = append(result.Issues, Issue{
				File:     v.Target,
				Field:    key,
				Message:  fmt.Sprintf("%s is missing (generated secret)", key),
				Severity: SeverityError,
			})
		case ok && value == "":
			result.Issues = append(result.Issues, Issue{
				File:     v.Target,
				Field:    key,
				Message:  fmt.Sprintf("%s is empty (generated secret)", key),
				Severity: SeverityError,
			})
		}
	}

	for _, key := range target.Keys() {
		if !template.Has(key) && !generated[key] {
			result.Issues = append(result.Issues, Issue{
				File:     v.Target,
				Field:    key,
				Message:  fmt.Sprintf("%s is not defined in %s", key, v.Source),
				Severity: SeverityWarning,
			})
		}
	}

	return result
}

func (v *Validator) load(path, role string) (*envfile.File, *Issue) {
	f, err := envfile.Parse(path)
	if err == nil {
		return f, nil
	}

	msg := fmt.Sprintf("failed to parse %s file: %v", role, err)
	if errors.Is(err, os.ErrNotExist) {
		msg = fmt.Sprintf("%s file not found", role)
	}
	return nil, &Issue{File: path, Message: msg, Severity: SeverityError}
}

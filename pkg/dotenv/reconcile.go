package dotenv

import (
	"strings"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// Mode is the file mutation strategy chosen by Reconcile.
type Mode int

const (
	// ModeNone writes nothing.
	ModeNone Mode = iota
	// ModeCreate creates the target file.
	ModeCreate
	// ModeAppend appends missing keys to the target file.
	ModeAppend
	// ModeRewrite strips regenerated keys from the target, then appends.
	ModeRewrite
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeAppend:
		return "append"
	case ModeRewrite:
		return "rewrite"
	default:
		return "none"
	}
}

// Decision is the outcome of Reconcile.
type Decision struct {
	Mode Mode
	// ToWrite holds the missing keys in candidate order.
	ToWrite []string
	// Replace holds the keys whose existing lines are removed before rewriting.
	Replace []string
}

// Reconcile partitions candidates into satisfied and missing keys and picks
// the mutation mode. current is nil when the target does not exist.
// No values are generated here.
func Reconcile(candidates []string, current, template *envfile.File, opts Options) Decision {
	if current == nil {
		return Decision{Mode: ModeCreate, ToWrite: append([]string{}, candidates...)}
	}

	generated := opts.generatedSet()
	var replace []string
	if opts.Force {
		for _, k := range candidates {
			if generated[k] && current.Has(k) {
				replace = append(replace, k)
			}
		}
	}

	d := Decision{ToWrite: []string{}}
	rewrite := len(replace) > 0
	for _, k := range candidates {
		if rewrite && generated[k] {
			d.ToWrite = append(d.ToWrite, k)
			continue
		}
		if isMissing(k, current, template, generated, opts) {
			d.ToWrite = append(d.ToWrite, k)
		}
	}

	switch {
	case rewrite:
		d.Mode = ModeRewrite
		d.Replace = replace
	case len(d.ToWrite) > 0:
		d.Mode = ModeAppend
	default:
		d.Mode = ModeNone
	}
	return d
}

func isMissing(key string, current, template *envfile.File, generated map[string]bool, opts Options) bool {
	value, ok := current.Get(key)
	if !ok {
		return true
	}
	if !opts.OverwriteEmptyValues || value != "" {
		return false
	}

	// Generated values are never empty.
	if generated[key] {
		return true
	}
	return template != nil && strings.TrimSpace(template.Value(key)) != ""
}

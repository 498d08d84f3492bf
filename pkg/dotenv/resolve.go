package dotenv

import (
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// ResolveCandidates computes the ordered keys eligible for writing.
//
// With GenerateOnlyKeys set, those keys are returned as given and the template
// is not consulted (template may be nil). Otherwise the allow-list, or the
// template order when there is none, is used. Generated keys missing from the
// template come first when no allow-list is set.
func ResolveCandidates(template *envfile.File, opts Options) ([]string, error) {
	if opts.Only != nil && len(opts.Only) == 0 {
		return nil, fmt.Errorf("%w: explicit variable list is empty", ErrInvalidConfig)
	}

	if opts.generateOnly() {
		return dedupe(opts.GenerateOnlyKeys), nil
	}

	if template == nil {
		template = envfile.ParseString("")
	}
	generated := opts.generatedSet()

	var keys []string
	if opts.Only != nil {
		for _, k := range dedupe(opts.Only) {
			if template.Has(k) || generated[k] {
				keys = append(keys, k)
			}
		}
	} else {
		for _, k := range dedupe(opts.GenerateKeys) {
			if !template.Has(k) {
				keys = append(keys, k)
			}
		}
		keys = append(keys, template.Keys()...)
	}

	if opts.SkipEmptySourceValues {
		filtered := keys[:0]
		for _, k := range keys {
			if generated[k] || strings.TrimSpace(template.Value(k)) != "" {
				filtered = append(filtered, k)
			}
		}
		keys = filtered
	}

	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

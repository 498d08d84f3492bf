// Package dotenv reconciles an env file against a template and fills in
// generated secrets.
//
// Every entry point is a pure function of the template content, the target
// content (or its absence) and the Options, plus at most one write to the
// target. There is no shared state between calls, no locking and no
// crash-atomic replacement: a process killed mid-write, or another process
// editing the target concurrently, can leave the file inconsistent.
package dotenv

import (
	"fmt"
	"io"
	"regexp"

	"github.com/creasty/defaults"
	"go.uber.org/zap"
)

// DefaultLength is the default number of random bytes in a generated value.
const DefaultLength = 32

// ValueFormat selects how generated random bytes are encoded.
type ValueFormat string

const (
	// FormatHex encodes bytes as lowercase hex, 2*Length characters.
	FormatHex ValueFormat = "hex"
	// FormatBase64 encodes bytes as unpadded URL-safe base64.
	FormatBase64 ValueFormat = "base64"
	// FormatUUID produces a random version 4 UUID; Length is ignored.
	FormatUUID ValueFormat = "uuid"
)

// ParseValueFormat converts a flag or config string into a ValueFormat.
func ParseValueFormat(s string) (ValueFormat, error) {
	switch f := ValueFormat(s); f {
	case FormatHex, FormatBase64, FormatUUID:
		return f, nil
	case "":
		return FormatHex, nil
	default:
		return "", fmt.Errorf("%w: unknown value format %q (want hex, base64 or uuid)", ErrInvalidConfig, s)
	}
}

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// Options is the policy record for a single reconciliation.
type Options struct {
	// Target is the env file being created or updated.
	Target string `default:".env"`
	// Source is the template file. Unused when GenerateOnlyKeys is set.
	Source string `default:".env.example"`

	// Only restricts the candidate keys. nil means no restriction; a non-nil
	// empty slice is rejected with ErrInvalidConfig.
	Only []string

	// OverwriteEmptyValues treats a target key with an empty value as missing
	// when the value to write is non-empty.
	OverwriteEmptyValues bool `default:"true"`
	// SkipEmptySourceValues drops template keys whose value is empty.
	SkipEmptySourceValues bool

	// GenerateKeys are filled with random values instead of template values.
	GenerateKeys []string
	// GenerateOnlyKeys replaces the template entirely when non-empty.
	GenerateOnlyKeys []string
	// Force regenerates generated keys even when already present.
	Force bool

	Length int         `default:"32"`
	Format ValueFormat `default:"hex"`

	DryRun bool

	// Logger receives debug output. nil disables logging.
	Logger *zap.Logger
	// Rand is the entropy source for generated values. nil uses crypto/rand.
	Rand io.Reader
}

// NewOptions returns Options with every default applied.
func NewOptions() Options {
	var o Options
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Sprintf("dotenv: bad option defaults: %v", err))
	}
	return o
}

// Validate checks the options for contradictions before any I/O happens.
func (o *Options) Validate() error {
	if o.Target == "" {
		return fmt.Errorf("%w: target path is required", ErrInvalidConfig)
	}
	if !o.generateOnly() && o.Source == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidConfig)
	}
	if o.Only != nil && len(o.Only) == 0 {
		return fmt.Errorf("%w: explicit variable list is empty", ErrInvalidConfig)
	}

	for _, k := range append(append([]string{}, o.GenerateKeys...), o.GenerateOnlyKeys...) {
		if !keyPattern.MatchString(k) {
			return fmt.Errorf("%w: invalid variable name %q", ErrInvalidConfig, k)
		}
	}

	if o.generating() {
		if o.Length <= 0 {
			return fmt.Errorf("%w: length must be a positive number of bytes, got %d", ErrInvalidConfig, o.Length)
		}
		if _, err := ParseValueFormat(string(o.Format)); err != nil {
			return err
		}
	} else if o.Force {
		return fmt.Errorf("%w: force requires variables to generate", ErrInvalidConfig)
	}

	return nil
}

func (o *Options) generateOnly() bool {
	return len(o.GenerateOnlyKeys) > 0
}

func (o *Options) generating() bool {
	return len(o.GenerateKeys) > 0 || len(o.GenerateOnlyKeys) > 0
}

// filtering reports whether a bootstrap must write selected keys instead of
// copying the template verbatim.
func (o *Options) filtering() bool {
	return o.Only != nil || o.generating() || o.SkipEmptySourceValues
}

// generatedSet returns the keys whose values come from the value provider.
func (o *Options) generatedSet() map[string]bool {
	set := make(map[string]bool, len(o.GenerateKeys)+len(o.GenerateOnlyKeys))
	for _, k := range o.GenerateKeys {
		set[k] = true
	}
	for _, k := range o.GenerateOnlyKeys {
		set[k] = true
	}
	return set
}

func (o *Options) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger.Named("dotenv").Sugar()
}

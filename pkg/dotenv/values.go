package dotenv

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// Provider supplies the value written for a key. It does not cache: every
// call for a generated key returns a fresh value.
type Provider struct {
	template  *envfile.File
	generated map[string]bool
	length    int
	format    ValueFormat
	rand      io.Reader
}

// NewProvider builds a Provider for opts. template may be nil.
func NewProvider(template *envfile.File, opts Options) *Provider {
	r := opts.Rand
	if r == nil {
		r = rand.Reader
	}
	format := opts.Format
	if format == "" {
		format = FormatHex
	}
	return &Provider{
		template:  template,
		generated: opts.generatedSet(),
		length:    opts.Length,
		format:    format,
		rand:      r,
	}
}

// ValueFor returns the value for key.
func (p *Provider) ValueFor(key string) (string, error) {
	if p.generated[key] {
		return p.random()
	}
	if p.template == nil {
		return "", nil
	}
	return p.template.Value(key), nil
}

func (p *Provider) random() (string, error) {
	if p.format == FormatUUID {
		id, err := uuid.NewRandomFromReader(p.rand)
		if err != nil {
			return "", fmt.Errorf("failed to generate uuid: %w", err)
		}
		return id.String(), nil
	}

	buf := make([]byte, p.length)
	if _, err := io.ReadFull(p.rand, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	if p.format == FormatBase64 {
		return base64.RawURLEncoding.EncodeToString(buf), nil
	}
	return hex.EncodeToString(buf), nil
}

package dotenv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

func TestResolveCandidates(t *testing.T) {
	template := envfile.ParseString("A=1\nB=\nC=3\n")

	tests := []struct {
		name   string
		modify func(*Options)
		want   []string
	}{
		{
			name: "template order",
			want: []string{"A", "B", "C"},
		},
		{
			name:   "allow-list order wins and unknown keys drop",
			modify: func(o *Options) { o.Only = []string{"C", "X", "A", "C"} },
			want:   []string{"C", "A"},
		},
		{
			name:   "generated keys absent from template come first",
			modify: func(o *Options) { o.GenerateKeys = []string{"NEW", "B", "OTHER"} },
			want:   []string{"NEW", "OTHER", "A", "B", "C"},
		},
		{
			name: "allow-list may name generated keys",
			modify: func(o *Options) {
				o.Only = []string{"NEW", "A"}
				o.GenerateKeys = []string{"NEW", "SKIPPED"}
			},
			want: []string{"NEW", "A"},
		},
		{
			name:   "skip empty source values",
			modify: func(o *Options) { o.SkipEmptySourceValues = true },
			want:   []string{"A", "C"},
		},
		{
			name: "skip empty keeps generated keys",
			modify: func(o *Options) {
				o.SkipEmptySourceValues = true
				o.GenerateKeys = []string{"B"}
			},
			want: []string{"A", "B", "C"},
		},
		{
			name: "generate-only replaces everything",
			modify: func(o *Options) {
				o.Only = []string{"A"}
				o.GenerateOnlyKeys = []string{"Z", "Y", "Z"}
			},
			want: []string{"Z", "Y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}
			got, err := ResolveCandidates(template, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCandidatesEmptyAllowList(t *testing.T) {
	opts := NewOptions()
	opts.Only = []string{}

	_, err := ResolveCandidates(envfile.ParseString("A=1"), opts)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolveCandidatesNothingLeft(t *testing.T) {
	opts := NewOptions()
	opts.Only = []string{"MISSING"}

	got, err := ResolveCandidates(envfile.ParseString("A=1"), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestReconcile(t *testing.T) {
	template := envfile.ParseString("A=1\nB=2\nEMPTY=\nS=\n")

	tests := []struct {
		name       string
		current    *envfile.File
		candidates []string
		modify     func(*Options)
		want       Decision
	}{
		{
			name:       "bootstrap writes every candidate",
			candidates: []string{"A", "B"},
			want:       Decision{Mode: ModeCreate, ToWrite: []string{"A", "B"}},
		},
		{
			name:       "append missing",
			current:    envfile.ParseString("A=mine\n"),
			candidates: []string{"A", "B"},
			want:       Decision{Mode: ModeAppend, ToWrite: []string{"B"}},
		},
		{
			name:       "nothing missing",
			current:    envfile.ParseString("A=mine\nB=mine\n"),
			candidates: []string{"A", "B"},
			want:       Decision{Mode: ModeNone, ToWrite: []string{}},
		},
		{
			name:       "empty value overwritten",
			current:    envfile.ParseString("A=\nEMPTY=\n"),
			candidates: []string{"A", "EMPTY"},
			want:       Decision{Mode: ModeAppend, ToWrite: []string{"A"}},
		},
		{
			name:       "empty value kept",
			current:    envfile.ParseString("A=\n"),
			candidates: []string{"A"},
			modify:     func(o *Options) { o.OverwriteEmptyValues = false },
			want:       Decision{Mode: ModeNone, ToWrite: []string{}},
		},
		{
			name:       "generated present without force is satisfied",
			current:    envfile.ParseString("S=old\n"),
			candidates: []string{"A", "S"},
			modify:     func(o *Options) { o.GenerateKeys = []string{"S"} },
			want:       Decision{Mode: ModeAppend, ToWrite: []string{"A"}},
		},
		{
			name:       "force rewrites present generated keys",
			current:    envfile.ParseString("S=old\nA=mine\n"),
			candidates: []string{"A", "B", "S", "T"},
			modify: func(o *Options) {
				o.GenerateKeys = []string{"S", "T"}
				o.Force = true
			},
			want: Decision{Mode: ModeRewrite, ToWrite: []string{"B", "S", "T"}, Replace: []string{"S"}},
		},
		{
			name:       "force without present generated keys appends",
			current:    envfile.ParseString("A=mine\n"),
			candidates: []string{"A", "T"},
			modify: func(o *Options) {
				o.GenerateKeys = []string{"T"}
				o.Force = true
			},
			want: Decision{Mode: ModeAppend, ToWrite: []string{"T"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}
			got := Reconcile(tt.candidates, tt.current, template, opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderValueFor(t *testing.T) {
	opts := NewOptions()
	opts.GenerateKeys = []string{"SECRET"}
	opts.Length = 4
	opts.Rand = bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03})

	p := NewProvider(envfile.ParseString("A=from_template\n"), opts)

	v, err := p.ValueFor("A")
	require.NoError(t, err)
	assert.Equal(t, "from_template", v)

	v, err = p.ValueFor("UNKNOWN")
	require.NoError(t, err)
	assert.Empty(t, v)

	first, err := p.ValueFor("SECRET")
	require.NoError(t, err)
	second, err := p.ValueFor("SECRET")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", first)
	assert.Equal(t, "00010203", second)
}

func TestProviderShortRead(t *testing.T) {
	opts := NewOptions()
	opts.GenerateOnlyKeys = []string{"SECRET"}
	opts.Rand = bytes.NewReader([]byte{0x01})

	_, err := NewProvider(nil, opts).ValueFor("SECRET")
	assert.Error(t, err)
}

func TestParseValueFormat(t *testing.T) {
	f, err := ParseValueFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHex, f)

	f, err = ParseValueFormat("uuid")
	require.NoError(t, err)
	assert.Equal(t, FormatUUID, f)

	_, err = ParseValueFormat("rot13")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

package dotenv

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"go.uber.org/zap"

	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// Result reports what a run wrote, or would write in dry-run mode.
type Result struct {
	Bootstrapped     bool              `json:"bootstrapped"`
	MissingCount     int               `json:"missingCount"`
	MissingKeys      []string          `json:"missingKeys"`
	MissingKeyValues map[string]string `json:"missingKeyValues"`
}

// Plan is the complete outcome of a reconciliation before it is applied.
// Dry runs and real runs compute the same plan.
type Plan struct {
	Result

	Mode   Mode
	Target string
	// Before is the current target content, empty when the file does not exist.
	Before string
	// After is the target content once the plan is applied.
	After string

	appendText string
}

// SyncOptions configures Sync.
type SyncOptions struct {
	Target                string `default:".env"`
	Source                string `default:".env.example"`
	Only                  []string
	DryRun                bool
	OverwriteEmptyValues  bool `default:"true"`
	SkipEmptySourceValues bool
	Logger                *zap.Logger
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	Target    string `default:".env"`
	Variables []string
	Length    int         `default:"32"`
	Format    ValueFormat `default:"hex"`
	DryRun    bool
	Force     bool
	Logger    *zap.Logger
	Rand      io.Reader
}

// NewSyncOptions returns SyncOptions with defaults applied.
func NewSyncOptions() SyncOptions {
	var o SyncOptions
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Sprintf("dotenv: bad sync defaults: %v", err))
	}
	return o
}

// NewGenerateOptions returns GenerateOptions with defaults applied.
func NewGenerateOptions() GenerateOptions {
	var o GenerateOptions
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Sprintf("dotenv: bad generate defaults: %v", err))
	}
	return o
}

// Options converts SyncOptions into engine Options.
func (s SyncOptions) Options() Options {
	o := NewOptions()
	o.Target = s.Target
	o.Source = s.Source
	o.Only = s.Only
	o.DryRun = s.DryRun
	o.OverwriteEmptyValues = s.OverwriteEmptyValues
	o.SkipEmptySourceValues = s.SkipEmptySourceValues
	o.Logger = s.Logger
	return o
}

// Options converts GenerateOptions into engine Options. The template is not used.
func (g GenerateOptions) Options() (Options, error) {
	if len(g.Variables) == 0 {
		return Options{}, fmt.Errorf("%w: no variables to generate", ErrInvalidConfig)
	}

	o := NewOptions()
	o.Target = g.Target
	o.Source = ""
	o.GenerateOnlyKeys = g.Variables
	o.Length = g.Length
	o.Format = g.Format
	o.DryRun = g.DryRun
	o.Force = g.Force
	o.Logger = g.Logger
	o.Rand = g.Rand
	return o, nil
}

// Sync copies template variables that are missing from the target.
func Sync(opts SyncOptions) (*Result, error) {
	return Setup(opts.Options())
}

// Generate writes random values for variables missing from the target, or
// for all of them with Force. No template is involved.
func Generate(opts GenerateOptions) (*Result, error) {
	o, err := opts.Options()
	if err != nil {
		return nil, err
	}
	return Setup(o)
}

// Setup runs the full engine: template sync plus generated keys.
func Setup(opts Options) (*Result, error) {
	plan, err := PlanSetup(opts)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if err := plan.Apply(); err != nil {
			return nil, err
		}
	}

	return &plan.Result, nil
}

// PlanSetup computes every decision of Setup without writing anything.
func PlanSetup(opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	var (
		template    *envfile.File
		templateRaw string
	)
	if !opts.generateOnly() {
		data, err := os.ReadFile(opts.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingTemplate, opts.Source, err)
		}
		templateRaw = string(data)
		template = envfile.ParseString(templateRaw)
		log.Debugw("parsed template", "path", opts.Source, "keys", template.Len())
	}

	plan := &Plan{Target: opts.Target}

	current, err := readTarget(opts.Target)
	if err != nil {
		return nil, err
	}
	if current != nil {
		plan.Before = current.raw
		log.Debugw("parsed target", "path", opts.Target, "keys", current.file.Len())
	}

	candidates, err := ResolveCandidates(template, opts)
	if err != nil {
		return nil, err
	}

	var currentFile *envfile.File
	if current != nil {
		currentFile = current.file
	}
	d := Reconcile(candidates, currentFile, template, opts)
	log.Debugw("reconciled",
		"candidates", candidates,
		"mode", d.Mode.String(),
		"toWrite", d.ToWrite,
		"replace", d.Replace,
		"dryRun", opts.DryRun,
	)

	provider := NewProvider(template, opts)
	values := make(map[string]string, len(d.ToWrite))
	for _, k := range d.ToWrite {
		v, err := provider.ValueFor(k)
		if err != nil {
			return nil, err
		}
		values[k] = v
	}

	plan.Mode = d.Mode
	plan.Result = Result{
		Bootstrapped:     current == nil,
		MissingCount:     len(d.ToWrite),
		MissingKeys:      d.ToWrite,
		MissingKeyValues: values,
	}
	render(plan, d, opts, templateRaw, currentFile)

	return plan, nil
}

type target struct {
	raw  string
	file *envfile.File
}

// readTarget returns nil when the target does not exist.
func readTarget(path string) (*target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &target{raw: string(data), file: envfile.ParseString(string(data))}, nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile  string
	defs        string
	formName    string
	openapiPath string
	operation   string
	valuesPath  string
}

// session is the per-invocation state: config, logger and output streams.
type session struct {
	opts   *rootOptions
	cfg    *Config
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	v := viper.New()
	if flag := cmd.Flag("defs"); flag != nil {
		if err := v.BindPFlag("defs", flag); err != nil {
			return nil, err
		}
	}
	cfg, err := LoadConfig(v, opts.configFile)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &session{
		opts:   opts,
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// formOptions turns the config into form options.
func (s *session) formOptions() ([]form.Option, error) {
	policy, err := fields.ParseOrphanPolicy(s.cfg.Orphans)
	if err != nil {
		return nil, err
	}
	filter, err := render.FilterByName(s.cfg.Filter)
	if err != nil {
		return nil, err
	}
	opts := []form.Option{
		form.WithLogger(s.logger),
		form.WithOrphanPolicy(policy),
		form.WithFilter(filter),
		form.WithNamespaces(s.cfg.Namespaces...),
	}
	if s.cfg.AutoFieldset != nil {
		opts = append(opts, form.WithAutoFieldset(*s.cfg.AutoFieldset))
	}
	if selection := s.cfg.Theme.Selection(); selection != nil {
		opts = append(opts, form.WithTheme(selection))
	}
	return opts, nil
}

// buildForm builds the form selected by the flags: an OpenAPI operation when
// --openapi is set, otherwise a form from the definition files.
func (s *session) buildForm(ctx context.Context, extra ...form.Option) (*form.Form, error) {
	opts, err := s.formOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	if s.opts.openapiPath != "" {
		if s.opts.operation == "" {
			return nil, fmt.Errorf("--operation is required with --openapi")
		}
		data, err := os.ReadFile(s.opts.openapiPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.opts.openapiPath, err)
		}
		src, err := openapi.SourceFromOperation(ctx, data, s.opts.operation)
		if err != nil {
			return nil, err
		}
		name := s.opts.formName
		if name == "" {
			name = s.opts.operation
		}
		return form.New(name, []fields.Source{src}, opts...)
	}

	store, err := s.loadDefinitions()
	if err != nil {
		return nil, err
	}
	if s.opts.formName == "" {
		return nil, fmt.Errorf("--form is required (defined forms: %s)", strings.Join(store.Forms(), ", "))
	}
	return store.NewForm(s.opts.formName, opts...)
}

func (s *session) loadDefinitions() (*definition.Store, error) {
	path := s.cfg.Defs
	if path == "" {
		return nil, fmt.Errorf("--defs is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}
	if info.IsDir() {
		return definition.LoadFS(os.DirFS(path))
	}
	return definition.LoadFile(path)
}

// readValues decodes the --values YAML file. It returns nil when the flag is
// not set.
func (s *session) readValues() (map[string]any, error) {
	if s.opts.valuesPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.opts.valuesPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.opts.valuesPath, err)
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.opts.valuesPath, err)
	}
	return values, nil
}

// flattenParams turns nested value maps into params keyed by dotted input
// name, prefixed with prefix.
func flattenParams(prefix string, values map[string]any, out map[string]any) map[string]any {
	if out == nil {
		out = make(map[string]any)
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		switch value := values[key].(type) {
		case map[string]any:
			flattenParams(prefix+key+".", value, out)
		case nil:
			out[prefix+key] = ""
		default:
			out[prefix+key] = value
		}
	}
	return out
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/prompt"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var (
		output    string
		fieldName string
		validate  bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form to HTML",
		Long: `Render a form to HTML. Values from --values pre-populate the inputs;
with --validate they are submitted instead so errors are rendered too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			values, err := s.readValues()
			if err != nil {
				return err
			}
			var extra []form.Option
			if !validate {
				extra = append(extra, form.WithInitValues(values))
			}
			frm, err := s.buildForm(cmd.Context(), extra...)
			if err != nil {
				return err
			}
			if validate {
				frm.Process(flattenParams(frm.HTMLPrefix(), values, nil))
			}

			var html string
			if fieldName != "" {
				html, err = frm.RenderField(fieldName)
			} else {
				html, err = frm.Render()
			}
			if err != nil {
				return err
			}
			if output == "" {
				_, err = io.WriteString(s.out, html)
				return err
			}
			if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(s.errOut, "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&fieldName, "field", "", "render a single field")
	cmd.Flags().BoolVar(&validate, "validate", false, "submit --values and render errors")
	return cmd
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate --values against a form",
		Long:  "Submit the values of --values to the form, print the validated values or the errors, and exit 1 when the form is invalid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			values, err := s.readValues()
			if err != nil {
				return err
			}
			frm, err := s.buildForm(cmd.Context())
			if err != nil {
				return err
			}
			return reportProcess(s, frm, flattenParams(frm.HTMLPrefix(), values, nil))
		},
	}
}

func newFieldsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the field tree of a form in render order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			frm, err := s.buildForm(cmd.Context())
			if err != nil {
				return err
			}
			printFields(s.out, frm.SortedFields(), 0)
			return nil
		},
	}
}

func newFillCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and validate the answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			values, err := s.readValues()
			if err != nil {
				return err
			}
			frm, err := s.buildForm(cmd.Context(), form.WithInitValues(values))
			if err != nil {
				return err
			}
			params, err := prompt.Fill(cmd.Context(), frm, prompt.NewSurveyDriver(), prompt.WithLogger(s.logger))
			if err != nil {
				return err
			}
			return reportProcess(s, frm, params)
		},
	}
}

func newOperationsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operationIds of the --openapi document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.openapiPath == "" {
				return fmt.Errorf("--openapi is required")
			}
			doc, err := openapi.LoadFile(cmd.Context(), opts.openapiPath)
			if err != nil {
				return err
			}
			for _, id := range openapi.OperationIDs(doc) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()
			titleColor.Fprint(out, "formkit version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
		},
	}
}

// reportProcess submits params and prints either the values as YAML or the
// errors of the form.
func reportProcess(s *session, frm *form.Form, params map[string]any) error {
	if frm.Process(params) {
		data, err := yaml.Marshal(frm.Values())
		if err != nil {
			return fmt.Errorf("encode values: %w", err)
		}
		_, err = s.out.Write(data)
		return err
	}

	errorColor := color.New(color.FgRed, color.Bold)
	for _, message := range frm.FormErrors() {
		errorColor.Fprintf(s.errOut, "✗ %s\n", message)
	}
	for _, fld := range frm.ErrorFields() {
		res, _ := frm.Result(fld.FullName())
		for _, message := range res.Errors {
			errorColor.Fprintf(s.errOut, "✗ %s: %s\n", fld.FullName(), message)
		}
	}
	return ErrInvalid
}

func printFields(w io.Writer, list []*field.Field, depth int) {
	for _, fld := range list {
		var flags []string
		if fld.Required {
			flags = append(flags, "required")
		}
		if fld.Inactive {
			flags = append(flags, "inactive")
		}
		if fld.Static {
			flags = append(flags, "static")
		}
		line := fmt.Sprintf("%s%d %s (%s)", strings.Repeat("  ", depth), fld.Order, fld.FullName(), fld.Type)
		if len(flags) > 0 {
			line += " " + strings.Join(flags, ",")
		}
		fmt.Fprintln(w, line)
		if fld.IsCompound() {
			printFields(w, fld.Children().Sorted(), depth+1)
		}
	}
}

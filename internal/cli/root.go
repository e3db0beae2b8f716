package cli

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrInvalid is returned by commands whose form did not validate. Its
// messages have already been printed.
var ErrInvalid = errors.New("form is invalid")

// NewRootCommand creates the formkit command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "formkit",
		Short: "Build, render and validate declarative HTML forms",
		Long: `formkit builds forms from YAML definitions or OpenAPI request bodies,
renders them to HTML, validates values against them and fills them
interactively.

Settings are read from ./formkit.yaml (or --config) and FORMKIT_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ./formkit.yaml)")
	pf.StringVar(&opts.defs, "defs", "", "form definition file or directory")
	pf.StringVar(&opts.formName, "form", "", "form to build")
	pf.StringVar(&opts.openapiPath, "openapi", "", "OpenAPI document to build the form from")
	pf.StringVar(&opts.operation, "operation", "", "operationId whose request body declares the form")
	pf.StringVar(&opts.valuesPath, "values", "", "YAML file with form values")

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newFieldsCommand(opts))
	rootCmd.AddCommand(newFillCommand(opts))
	rootCmd.AddCommand(newOperationsCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrInvalid) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Package cli implements the microtable command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/microtable"
)

type params struct {
	properties   []string
	align        string
	border       string
	noIndex      bool
	indexHeading string
	logLevel     string
	logFormat    string
	configFile   string
}

// NewCommand returns the root command. Input is read from the file argument
// or, without one, from stdin.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var p params
	cmd := &cobra.Command{
		Use:   "microtable [file]",
		Short: "Render YAML or JSON data as a text table",
		Long: `Render YAML or JSON data as a text table.

The input may be a scalar, a mapping, or a sequence of scalars, mappings, or
sequences. Mapping keys keep their order and become columns; sequence
positions and mapping keys become the "(index)" column.

Flags may also be set through MICROTABLE_* environment variables (for
example MICROTABLE_ALIGN=right) or a YAML config file passed with --config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyConfig(cmd, p.configFile)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(&p, args, stdin, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringSliceVarP(&p.properties, "properties", "p", nil, "only render these columns, in this order")
	flags.StringVarP(&p.align, "align", "a", "", "re-align cells: left, center, or right")
	flags.StringVarP(&p.border, "border", "b", "", "border style: light, rounded, ascii, heavy, or double")
	flags.BoolVar(&p.noIndex, "no-index", false, "drop the (index) column")
	flags.StringVar(&p.indexHeading, "index-heading", "", "rename the (index) column")
	flags.StringVar(&p.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	flags.StringVar(&p.logFormat, "log-format", "text", "log format: text or json")
	flags.StringVar(&p.configFile, "config", "", "YAML config file with flag defaults")
	return cmd
}

func run(p *params, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	log, err := newLogger(stderr, p.logLevel, p.logFormat)
	if err != nil {
		return err
	}

	formatters, err := buildFormatters(p)
	if err != nil {
		return err
	}

	data, err := readInput(args, stdin)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(data)).Debug("Read input.")

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", microtable.ErrInvalidInput, err)
	}
	if doc.Kind == 0 {
		return fmt.Errorf("%w: empty document", microtable.ErrInvalidInput)
	}

	var properties []string
	if len(p.properties) > 0 {
		properties = p.properties
	}
	out, err := microtable.Table(&doc, &microtable.Options{
		PropertyFilter: properties,
		RowFormatter:   formatters,
		Logger:         log,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out)
	return err
}

// buildFormatters orders the formatters so that the border is remapped
// after every formatter that reads the light glyphs.
func buildFormatters(p *params) ([]microtable.RowFormatter, error) {
	var fs []microtable.RowFormatter
	switch {
	case p.noIndex && p.indexHeading != "":
		return nil, errors.New("--no-index and --index-heading are mutually exclusive")
	case p.noIndex:
		fs = append(fs, microtable.RemoveIndexColumn())
	case p.indexHeading != "":
		fs = append(fs, microtable.RenameIndexColumn(p.indexHeading))
	}
	if p.align != "" {
		a, err := microtable.ParseAlignment(p.align)
		if err != nil {
			return nil, err
		}
		fs = append(fs, microtable.Align(a))
	}
	if p.border != "" {
		b, err := microtable.ParseBorderStyle(p.border)
		if err != nil {
			return nil, err
		}
		fs = append(fs, microtable.Border(b))
	}
	return fs, nil
}

func readInput(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return data, nil
}

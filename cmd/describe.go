package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/serialize"
)

// Output formats of the describe command.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// NewDescribeCommand creates the describe command that uses the provided
// Describer.
func NewDescribeCommand(d Describer) *cobra.Command {
	var format string
	var withSource bool

	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Show the wrappers a file expands to",
		Long: `Describe expands the directives of one file and prints each generated
type: its name, type parameters, inherited conformances, wrapped type and
members.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := d.Describe(context.Background(), args[0])
			if err != nil {
				return errors.Wrap(err, "describe failed")
			}
			if !withSource {
				descriptors = stripSource(descriptors)
			}
			return writeDescriptors(cmd.OutOrStdout(), format, descriptors)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "Output format: text, yaml, json")
	cmd.Flags().BoolVar(&withSource, "source", false, "Include generated source")

	return cmd
}

func stripSource(descriptors []expand.Descriptor) []expand.Descriptor {
	out := make([]expand.Descriptor, len(descriptors))
	for i, d := range descriptors {
		d.Source = ""
		members := make([]expand.Member, len(d.Members))
		for j, m := range d.Members {
			m.Source = ""
			members[j] = m
		}
		d.Members = members
		out[i] = d
	}
	return out
}

func writeDescriptors(w io.Writer, format string, descriptors []expand.Descriptor) error {
	switch strings.ToLower(format) {
	case FormatYAML:
		data, err := serialize.ToYAML(descriptors, serialize.SnakeCase, serialize.OmitEmpty)
		if err != nil {
			return errors.Wrap(err, "encoding YAML")
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := serialize.ToJSONIndent(descriptors, serialize.SnakeCase, serialize.OmitEmpty)
		if err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatText:
		for i, d := range descriptors {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			writeText(w, d)
		}
		return nil
	default:
		return errors.WithHint(errors.Newf("unknown format %q", format), "use text, yaml or json")
	}
}

func writeText(w io.Writer, d expand.Descriptor) {
	_, _ = fmt.Fprintf(w, "%s\n", d.TypeRef())
	if len(d.TypeParams) > 0 {
		_, _ = fmt.Fprintf(w, "  constraints: %s\n", strings.Join(d.Constraints(), ", "))
	}
	_, _ = fmt.Fprintf(w, "  wraps:       %s\n", d.WrappedType)
	_, _ = fmt.Fprintf(w, "  inherits:    %s\n", strings.Join(d.Inherits, ", "))
	names := make([]string, len(d.Members))
	for i, m := range d.Members {
		names[i] = m.Name
	}
	_, _ = fmt.Fprintf(w, "  members:     %s\n", strings.Join(names, ", "))
	if d.Source != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", d.Source)
	}
}

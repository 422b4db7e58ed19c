package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dlgraph/pkg/errors"
	"github.com/matzehuels/dlgraph/pkg/render"
)

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var (
		from     string
		format   string
		detailed bool
		maxText  int
	)

	cmd := &cobra.Command{
		Use:   "render <input> <output>",
		Short: "Generate a DOT or SVG diagram of a conversation graph",
		Long: `Generate a DOT or SVG diagram of a conversation graph.

Entries render as blue boxes and replies as grey ones; starter targets get a
doubled outline and child links render dashed. With --detailed, nodes carry
delay and script annotations and conditional links are labeled with their
condition script.

The output format follows the file extension (.dot or .svg) unless --format
is given.

Examples:
  dlgraph render tat17_talk.dlg.json graph.svg
  dlgraph render story.html graph.dot --detailed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], args[1], from, format, detailed, maxText)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatAuto, "input format: auto, gff, twine-json, twine-html")
	cmd.Flags().StringVar(&format, "format", "", "output format: dot or svg (default from extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate nodes and links with delays and scripts")
	cmd.Flags().IntVar(&maxText, "max-text", 0, "truncate node text at this many characters")

	return cmd
}

func runRender(cmd *cobra.Command, input, output, from, format string, detailed bool, maxText int) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	d, err := loadDialog(cmd.Context(), input, from)
	if err != nil {
		return err
	}

	if format == "" {
		switch {
		case strings.HasSuffix(output, ".dot"):
			format = "dot"
		case strings.HasSuffix(output, ".svg"):
			format = "svg"
		default:
			return errors.New(errors.ErrCodeInvalidValue,
				"cannot infer output format from %q (want .dot or .svg, or --format)", output)
		}
	}

	dot := render.ToDOT(d, render.Options{Detailed: detailed, MaxTextLen: maxText})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.SVG(dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
		}
	default:
		return errors.New(errors.ErrCodeInvalidValue, "unknown render format %q", format)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	st := d.Stats()
	prog.done("rendered " + pluralize(st.Entries+st.Replies, "node", "nodes"))
	printFile(output)
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dlgraph/pkg/twine"
)

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	var (
		from       string
		to         string
		game       string
		deprecated bool
		storyName  string
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a dialogue between container JSON and Twine formats",
		Long: `Convert a dialogue between container JSON and Twine formats.

The input format is sniffed by default: HTML content is read as a Twine
archive, JSON with a top-level "fields" key as the dialogue container form,
and any other JSON as a Twine story. Use --from to override.

The output format defaults to the opposite family of the input: container
input converts to Twine HTML, Twine input converts to container JSON.

Examples:
  dlgraph convert tat17_talk.dlg.json story.html
  dlgraph convert story.html tat17_talk.dlg.json --game k1
  dlgraph convert tat17_talk.dlg.json story.json --to twine-json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if game == "" {
				game = cfg.Game
			}
			if !cmd.Flags().Changed("deprecated") {
				deprecated = cfg.UseDeprecated
			}
			if storyName == "" {
				storyName = cfg.StoryName
			}
			return runConvert(cmd, args[0], args[1], from, to, game, deprecated, storyName)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatAuto, "input format: auto, gff, twine-json, twine-html")
	cmd.Flags().StringVar(&to, "to", "", "output format: gff, twine-json, twine-html (default inferred)")
	cmd.Flags().StringVar(&game, "game", "", "target game for container output: k1 or k2")
	cmd.Flags().BoolVar(&deprecated, "deprecated", false, "write deprecated legacy fields")
	cmd.Flags().StringVar(&storyName, "name", "", "story name for Twine output")

	return cmd
}

func runConvert(cmd *cobra.Command, input, output, from, to, game string, deprecated bool, storyName string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := loadDialog(ctx, input, from)
	if err != nil {
		return err
	}

	if to == "" {
		sniffed, err := sniffInput(input)
		if err != nil {
			return err
		}
		if sniffed == formatGFF {
			to = formatTwineHTML
		} else {
			to = formatGFF
		}
		logger.Debug("inferred output format", "format", to)
	}

	gameVersion, err := parseGame(game)
	if err != nil {
		return err
	}

	meta := twine.Metadata{Name: storyName}
	if meta.Name == "" {
		meta.Name = input
	}
	if err := saveDialog(d, output, to, gameVersion, deprecated, meta); err != nil {
		return err
	}

	st := d.Stats()
	prog.done("converted " + pluralize(st.Entries, "entry", "entries") +
		" and " + pluralize(st.Replies, "reply", "replies"))
	printFile(output)
	return nil
}

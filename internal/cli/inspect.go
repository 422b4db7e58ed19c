package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var (
		from     string
		entryIdx int
		replyIdx int
	)

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Print statistics and structural addresses for a dialogue",
		Long: `Print statistics and structural addresses for a dialogue.

Without flags the command prints a summary: entry, reply, link, starter, and
stunt counts, plus whether the graph is cyclic.

With --entry N or --reply N it additionally lists every structural path from
the starting list to that node, one address per line. The same node appears
once per distinct route, so a heavily shared reply prints many paths.

Examples:
  dlgraph inspect tat17_talk.dlg.json
  dlgraph inspect story.html --entry 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], from, entryIdx, replyIdx)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatAuto, "input format: auto, gff, twine-json, twine-html")
	cmd.Flags().IntVar(&entryIdx, "entry", -1, "list paths to the entry at this sorted index")
	cmd.Flags().IntVar(&replyIdx, "reply", -1, "list paths to the reply at this sorted index")

	return cmd
}

func runInspect(cmd *cobra.Command, input, from string, entryIdx, replyIdx int) error {
	d, err := loadDialog(cmd.Context(), input, from)
	if err != nil {
		return err
	}

	if entryIdx >= 0 || replyIdx >= 0 {
		node, label, err := pickNode(d, entryIdx, replyIdx)
		if err != nil {
			return err
		}
		return printPaths(d, node, label)
	}

	st := d.Stats()
	fmt.Println(StyleTitle.Render(input))
	printKeyValue("Entries", strconv.Itoa(st.Entries))
	printKeyValue("Replies", strconv.Itoa(st.Replies))
	printKeyValue("Links", strconv.Itoa(st.Links))
	printKeyValue("Starters", strconv.Itoa(st.Starters))
	printKeyValue("Stunts", strconv.Itoa(st.Stunts))
	printKeyValue("Cyclic", strconv.FormatBool(st.Cyclic))
	if d.Comment != "" {
		printKeyValue("Comment", d.Comment)
	}
	return nil
}

// pickNode resolves --entry/--reply indices against the sorted node lists.
func pickNode(d *dlg.Dialog, entryIdx, replyIdx int) (*dlg.Node, string, error) {
	if entryIdx >= 0 && replyIdx >= 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidValue, "--entry and --reply are mutually exclusive")
	}
	if entryIdx >= 0 {
		entries := d.AllEntries(true)
		if entryIdx >= len(entries) {
			return nil, "", errors.New(errors.ErrCodeNotFound,
				"entry %d out of range (dialogue has %d entries)", entryIdx, len(entries))
		}
		return entries[entryIdx], fmt.Sprintf("EntryList/%d", entryIdx), nil
	}
	replies := d.AllReplies(true)
	if replyIdx >= len(replies) {
		return nil, "", errors.New(errors.ErrCodeNotFound,
			"reply %d out of range (dialogue has %d replies)", replyIdx, len(replies))
	}
	return replies[replyIdx], fmt.Sprintf("ReplyList/%d", replyIdx), nil
}

func printPaths(d *dlg.Dialog, node *dlg.Node, label string) error {
	paths := d.FindPathsToNode(node)
	header := label
	if node.Text != "" {
		header += "  " + StyleDim.Render(excerpt(node.Text, 60))
	}
	fmt.Println(StyleTitle.Render(header))
	if len(paths) == 0 {
		fmt.Println(StyleDim.Render("  unreachable from the starting list"))
		return nil
	}
	for _, p := range paths {
		fmt.Println("  " + p)
	}
	return nil
}

func excerpt(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

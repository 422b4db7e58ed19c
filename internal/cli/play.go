package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dlgraph/pkg/dlg"
	"github.com/matzehuels/dlgraph/pkg/errors"
)

// newPlayCmd creates the play command.
func newPlayCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "play <input>",
		Short: "Walk a conversation interactively in the terminal",
		Long: `Walk a conversation interactively in the terminal.

Entry lines are shown with their speaker; reply links become a numbered
choice list. Picking a reply advances to the next entry it leads to, so
cyclic dialogues can be walked indefinitely.

Keys: up/down or j/k to move, enter to choose, q or esc to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args[0], from)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatAuto, "input format: auto, gff, twine-json, twine-html")

	return cmd
}

func runPlay(cmd *cobra.Command, input, from string) error {
	d, err := loadDialog(cmd.Context(), input, from)
	if err != nil {
		return err
	}
	if len(d.Starters) == 0 {
		return errors.New(errors.ErrCodeInvalidValue, "%s: dialogue has no starting entries", input)
	}

	m := newPlayModel(d)
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// transcriptLine is one spoken line in the conversation history.
type transcriptLine struct {
	speaker string
	text    string
	player  bool
}

// playModel is the bubbletea model for the conversation walker.
type playModel struct {
	dialog     *dlg.Dialog
	current    *dlg.Node
	choices    []*dlg.Link
	cursor     int
	transcript []transcriptLine
	finished   bool
}

func newPlayModel(d *dlg.Dialog) playModel {
	m := playModel{dialog: d}

	// Starters point at entries; the first one with a live target opens the
	// conversation.
	for _, l := range dlg.SortLinks(d.Starters) {
		if l.Target != nil {
			m.enter(l.Target)
			return m
		}
	}
	m.finished = true
	return m
}

// enter advances to an entry node, speaking it and any chained entries until
// a reply choice (or the end of the conversation) is reached.
func (m *playModel) enter(n *dlg.Node) {
	for n != nil {
		if n.Text != "" {
			m.transcript = append(m.transcript, transcriptLine{
				speaker: speakerName(n),
				text:    n.Text,
			})
		}

		var replies []*dlg.Link
		var next *dlg.Node
		for _, l := range dlg.SortLinks(n.Links) {
			if l.Target == nil {
				continue
			}
			if l.Target.IsReply() {
				replies = append(replies, l)
			} else if next == nil {
				next = l.Target
			}
		}

		if len(replies) > 0 {
			m.current = n
			m.choices = replies
			m.cursor = 0
			return
		}
		n = next
	}

	m.current = nil
	m.choices = nil
	m.finished = true
}

// choose speaks the selected reply and advances to the entry it leads to.
func (m *playModel) choose(l *dlg.Link) {
	reply := l.Target
	if reply.Text != "" {
		m.transcript = append(m.transcript, transcriptLine{text: reply.Text, player: true})
	}

	for _, next := range dlg.SortLinks(reply.Links) {
		if next.Target != nil {
			m.enter(next.Target)
			return
		}
	}
	m.finished = true
	m.choices = nil
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		if m.finished {
			return m, tea.Quit
		}
		if len(m.choices) > 0 {
			m.choose(m.choices[m.cursor])
		}
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Conversation"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ choose  q quit"))
	b.WriteString("\n\n")

	// Show the tail of the transcript so long conversations stay readable.
	lines := m.transcript
	if len(lines) > 12 {
		lines = lines[len(lines)-12:]
	}
	for _, line := range lines {
		if line.player {
			b.WriteString(StyleDim.Render("you: ") + styleChoice.Render(line.text))
		} else {
			b.WriteString(styleSpeaker.Render(line.speaker+": ") + StyleValue.Render(line.text))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.finished {
		b.WriteString(StyleDim.Render("The conversation has ended. Press enter or q to exit."))
		b.WriteString("\n")
		return b.String()
	}

	for i, l := range m.choices {
		text := l.Target.Text
		if text == "" {
			text = "[continue]"
		}
		line := fmt.Sprintf("%d. %s", i+1, text)
		if i == m.cursor {
			b.WriteString(styleCurrent.Render("▸ " + line))
		} else {
			b.WriteString("  " + styleChoice.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func speakerName(n *dlg.Node) string {
	if n.Speaker != "" {
		return n.Speaker
	}
	return "npc"
}

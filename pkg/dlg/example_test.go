package dlg_test

import (
	"fmt"

	"github.com/matzehuels/dlgraph/pkg/dlg"
)

func ExampleDialog_basic() {
	// A two-line exchange: an NPC greeting with one player response.
	d := dlg.NewDialog()
	hello := dlg.NewEntry()
	hello.Speaker = "Bastila"
	hello.Text = "You made it."
	answer := dlg.NewReply()
	answer.Text = "Barely."

	d.AddStarter(hello)
	hello.AddLink(answer)

	st := d.Stats()
	fmt.Println("Entries:", st.Entries)
	fmt.Println("Replies:", st.Replies)
	fmt.Println("Links:", st.Links)
	// Output:
	// Entries: 1
	// Replies: 1
	// Links: 1
}

func ExampleDialog_AllEntries() {
	// Cycles are fine: the reply loops back to the opening entry.
	d := dlg.NewDialog()
	ask := dlg.NewEntry()
	again := dlg.NewReply()
	d.AddStarter(ask)
	ask.AddLink(again)
	again.AddLink(ask)

	fmt.Println("Entries:", len(d.AllEntries(false)))
	fmt.Println("Replies:", len(d.AllReplies(false)))
	fmt.Println("Cyclic:", d.Stats().Cyclic)
	// Output:
	// Entries: 1
	// Replies: 1
	// Cyclic: true
}

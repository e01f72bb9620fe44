package mindmap_test

import (
	"fmt"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

func ExampleDocument_AddChild() {
	doc := mindmap.NewDefault()
	a, _ := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "Sleep"})
	b, _ := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "Exercise"})

	fmt.Println(a.ID, a.X, a.Y)
	fmt.Println(b.ID, b.X, b.Y)
	// Output:
	// 1 350 0
	// 2 350 120
}

func ExampleVisible() {
	doc := mindmap.NewDefault()
	a, _ := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "A"})
	_, _ = doc.AddChild(a.ID, mindmap.Fields{Title: "A1"})
	_, _ = doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "B"})
	_, _ = doc.ToggleCollapsed(a.ID)

	for _, n := range mindmap.Visible(doc) {
		fmt.Println(n.Title)
	}
	// Output:
	// Master The Brain
	// A
	// B
}

func ExampleDocument_Reparent() {
	doc := mindmap.NewDefault()
	a, _ := doc.AddChild(mindmap.RootID, mindmap.Fields{Title: "A"})
	b, _ := doc.AddChild(a.ID, mindmap.Fields{Title: "B"})

	err := doc.Reparent(a.ID, b.ID)
	fmt.Println(errors.GetCode(err))
	// Output:
	// CYCLE_DETECTED
}

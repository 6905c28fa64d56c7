// Package menu is the list navigation loop behind every panel screen.
package menu

import "fmt"

// ActionKind says what choosing an item does.
type ActionKind uint8

const (
	// Leaf has no follow-up; the caller acts on the returned index.
	Leaf ActionKind = iota
	// Descend enters the directory at Path.
	Descend
	// OpenFile streams the file at Path.
	OpenFile
	// InvokeScreen opens the screen named by Screen.
	InvokeScreen
)

func (k ActionKind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Descend:
		return "descend"
	case OpenFile:
		return "open"
	case InvokeScreen:
		return "screen"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// ScreenID names a screen the controller knows how to show.
type ScreenID uint8

type Action struct {
	Kind   ActionKind
	Path   string
	Screen ScreenID
}

func LeafAction() Action              { return Action{Kind: Leaf} }
func DescendTo(path string) Action    { return Action{Kind: Descend, Path: path} }
func OpenPath(path string) Action     { return Action{Kind: OpenFile, Path: path} }
func ScreenAction(id ScreenID) Action { return Action{Kind: InvokeScreen, Screen: id} }

type Item struct {
	Label  string
	Action Action
	Dir    bool
}

// List is a fixed-capacity item sequence plus the selection window.
type List struct {
	Items    []Item
	Selected int
	Top      int
}

func NewList(capacity int) *List {
	if capacity < 0 {
		capacity = 0
	}
	return &List{Items: make([]Item, 0, capacity)}
}

// Add appends it, or drops it when the list is full.
func (l *List) Add(it Item) bool {
	if len(l.Items) == cap(l.Items) {
		return false
	}
	l.Items = append(l.Items, it)
	return true
}

func (l *List) Len() int { return len(l.Items) }
func (l *List) Cap() int { return cap(l.Items) }

// Reset empties the list, keeping its capacity.
func (l *List) Reset() {
	clear(l.Items)
	l.Items = l.Items[:0]
	l.Selected = 0
	l.Top = 0
}

// Package navigator implements the picker state machine over a snippet tree.
//
// A Navigator always starts at the root. Folders are entered with Select,
// left with Back, and the visible list is narrowed with SetFilter. Picking
// a leaf or cancelling ends the session; after that every call is a no-op.
// A Navigator is not safe for concurrent use.
package navigator

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"quickpick/internal/snippets"
)

var (
	// ErrUnknownKey is returned by Select for a key missing from the current level.
	ErrUnknownKey = errors.New("navigator: unknown key")
	// ErrDone is returned by Select once the session has been picked or cancelled.
	ErrDone = errors.New("navigator: session ended")
)

// Outcome describes where the session is.
type Outcome int

const (
	Viewing   Outcome = iota // Browsing a folder
	Picked                   // A leaf was selected
	Cancelled                // Closed without a selection
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Viewing:
		return "viewing"
	case Picked:
		return "picked"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is returned by selection calls.
type Result struct {
	Outcome Outcome
	Text    string // Leaf text, set only when Outcome is Picked
}

// Navigator holds the state of one picker session.
type Navigator struct {
	tree    *snippets.Tree
	path    []string
	current *snippets.Node
	filter  string
	visible []string
	cursor  int

	outcome Outcome
}

// New creates a navigator positioned at the root of tree.
func New(tree *snippets.Tree) *Navigator {
	n := &Navigator{
		tree:    tree,
		current: tree.Root(),
	}
	n.refresh()
	return n
}

// Path returns a copy of the keys leading from the root to the current folder.
func (n *Navigator) Path() []string {
	path := make([]string, len(n.path))
	copy(path, n.path)
	return path
}

// Breadcrumb joins the path for display. Empty at the root.
func (n *Navigator) Breadcrumb() string {
	return strings.Join(n.path, " > ")
}

// Filter returns the current search string.
func (n *Navigator) Filter() string {
	return n.filter
}

// Visible returns a copy of the keys currently shown.
func (n *Navigator) Visible() []string {
	visible := make([]string, len(n.visible))
	copy(visible, n.visible)
	return visible
}

// Cursor returns the index of the highlighted entry, or -1 if the list is empty.
func (n *Navigator) Cursor() int {
	if len(n.visible) == 0 {
		return -1
	}
	return n.cursor
}

// Highlighted returns the highlighted key.
func (n *Navigator) Highlighted() (string, bool) {
	if len(n.visible) == 0 {
		return "", false
	}
	return n.visible[n.cursor], true
}

// HighlightedLeaf returns the text of the highlighted entry when it is a leaf.
func (n *Navigator) HighlightedLeaf() (string, bool) {
	key, ok := n.Highlighted()
	if !ok {
		return "", false
	}
	child, err := n.current.Child(key)
	if err != nil || !child.IsLeaf() {
		return "", false
	}
	return child.Text(), true
}

// IsFolder reports whether key names a folder at the current level.
func (n *Navigator) IsFolder(key string) bool {
	child, err := n.current.Child(key)
	return err == nil && !child.IsLeaf()
}

// CanGoBack reports whether Back would do anything.
func (n *Navigator) CanGoBack() bool {
	return n.outcome == Viewing && len(n.path) > 0
}

// Outcome returns the session state.
func (n *Navigator) Outcome() Outcome {
	return n.outcome
}

// Done reports whether the session has ended.
func (n *Navigator) Done() bool {
	return n.outcome != Viewing
}

// Select chooses key at the current level. A folder is entered with the
// filter reset; a leaf ends the session with its text in the result.
func (n *Navigator) Select(key string) (Result, error) {
	if n.Done() {
		return Result{Outcome: n.outcome}, ErrDone
	}

	child, err := n.current.Child(key)
	if err != nil {
		return Result{Outcome: Viewing}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if child.IsLeaf() {
		n.outcome = Picked
		return Result{Outcome: Picked, Text: child.Text()}, nil
	}

	n.path = append(n.path, key)
	n.current = child
	n.filter = ""
	n.refresh()
	return Result{Outcome: Viewing}, nil
}

// SelectCurrent selects the highlighted entry. With an empty list or an
// ended session it does nothing and the text is empty.
func (n *Navigator) SelectCurrent() Result {
	key, ok := n.Highlighted()
	if !ok || n.Done() {
		return Result{Outcome: n.outcome}
	}
	// The highlighted key always belongs to the current level.
	res, _ := n.Select(key)
	return res
}

// Back returns to the parent folder. It reports false at the root.
func (n *Navigator) Back() bool {
	if !n.CanGoBack() {
		return false
	}

	parentPath := n.path[:len(n.path)-1]
	parent, err := n.tree.Lookup(parentPath)
	if err != nil {
		// The path was built from this tree, so lookup cannot fail.
		return false
	}

	n.path = parentPath
	n.current = parent
	n.filter = ""
	n.refresh()
	return true
}

// SetFilter narrows the visible list to keys containing text, ignoring case.
func (n *Navigator) SetFilter(text string) {
	if n.Done() {
		return
	}
	n.filter = text
	n.refresh()
}

// MoveCursor moves the highlight by delta, clamped to the list bounds.
func (n *Navigator) MoveCursor(delta int) {
	if n.Done() || len(n.visible) == 0 {
		return
	}
	n.cursor += delta
	if n.cursor < 0 {
		n.cursor = 0
	}
	if n.cursor >= len(n.visible) {
		n.cursor = len(n.visible) - 1
	}
}

// SetCursor highlights the entry at index i if it exists.
func (n *Navigator) SetCursor(i int) {
	if n.Done() || i < 0 || i >= len(n.visible) {
		return
	}
	n.cursor = i
}

// Cancel ends the session without a selection.
func (n *Navigator) Cancel() {
	if n.Done() {
		return
	}
	n.outcome = Cancelled
}

// refresh rebuilds the visible list and highlights the first entry.
func (n *Navigator) refresh() {
	n.visible = FilterKeys(n.current.Keys(), n.filter)
	n.cursor = 0
}

// FilterKeys returns the keys whose lowercase form contains the lowercase
// query, preserving order. An empty query matches every key.
func FilterKeys(keys []string, query string) []string {
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	matched := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.Contains(lower.String(key), needle) {
			matched = append(matched, key)
		}
	}
	return matched
}

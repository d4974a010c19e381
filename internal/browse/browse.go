package browse

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quickpick/internal/snippets"
)

// ErrNotTerminal is returned when the terminal frontend has no TTY to draw on.
var ErrNotTerminal = errors.New("browse: not a terminal")

// Run shows the picker on out, reading keys from in, and blocks until the
// user picks a leaf or cancels. ok is false on cancel.
func Run(tree *snippets.Tree, in io.Reader, out io.Writer) (text string, ok bool, err error) {
	p := tea.NewProgram(NewModel(tree), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("browse: %w", err)
	}
	m, isModel := final.(Model)
	if !isModel {
		return "", false, nil
	}
	text, ok = m.Picked()
	return text, ok, nil
}

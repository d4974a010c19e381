package snippets

import (
	"fmt"
	"os"
	"strings"
)

// Tree - неизменяемое дерево сниппетов.
type Tree struct {
	root   *Node
	source string
}

// New оборачивает готовую корневую папку в дерево.
func New(root *Node) *Tree {
	if root == nil {
		root = Folder()
	}
	return &Tree{root: root}
}

// Load читает и разбирает файл сниппетов. Формат определяется по расширению.
func Load(path string) (*Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл сниппетов: %w", err)
	}

	root, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Tree{root: root, source: path}, nil
}

// Root возвращает корневую папку.
func (t *Tree) Root() *Node {
	return t.root
}

// Source возвращает путь к файлу, из которого загружено дерево.
func (t *Tree) Source() string {
	return t.source
}

// Lookup спускается от корня по последовательности ключей.
func (t *Tree) Lookup(path []string) (*Node, error) {
	node := t.root
	for i, key := range path {
		child, err := node.Child(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(path[:i+1], " > "), err)
		}
		node = child
	}
	return node, nil
}

// Package snippets загружает дерево сниппетов из файла.
//
// Дерево читается один раз при старте и дальше не меняется: его можно
// передавать по указателю в любые горутины без блокировок.
package snippets

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchKey - в папке нет элемента с таким ключом.
	ErrNoSuchKey = errors.New("ключ не найден")
	// ErrNotFolder - попытка спуститься внутрь сниппета.
	ErrNotFolder = errors.New("элемент не является папкой")
)

// Kind различает два вида узлов дерева.
type Kind int

const (
	KindFolder Kind = iota
	KindLeaf
)

// String возвращает имя вида узла.
func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node - узел дерева: папка с дочерними элементами или сниппет с текстом.
type Node struct {
	kind     Kind
	text     string
	keys     []string // порядок ключей как в исходном документе
	children map[string]*Node
}

// Entry - пара ключ/узел для построения папки.
type Entry struct {
	Key  string
	Node *Node
}

// Leaf создаёт сниппет.
func Leaf(text string) *Node {
	return &Node{kind: KindLeaf, text: text}
}

// Folder создаёт папку из элементов в заданном порядке.
// Повторный ключ заменяет значение, но сохраняет позицию первого вхождения.
func Folder(entries ...Entry) *Node {
	n := &Node{
		kind:     KindFolder,
		children: make(map[string]*Node, len(entries)),
	}
	for _, e := range entries {
		n.set(e.Key, e.Node)
	}
	return n
}

func (n *Node) set(key string, child *Node) {
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Kind возвращает вид узла.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsLeaf возвращает true для сниппета.
func (n *Node) IsLeaf() bool {
	return n.kind == KindLeaf
}

// Text возвращает текст сниппета. Для папки - пустая строка.
func (n *Node) Text() string {
	return n.text
}

// Keys возвращает копию списка ключей папки в исходном порядке.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Len возвращает количество дочерних элементов.
func (n *Node) Len() int {
	return len(n.keys)
}

// Child возвращает дочерний элемент по ключу.
func (n *Node) Child(key string) (*Node, error) {
	if n.kind != KindFolder {
		return nil, ErrNotFolder
	}
	child, ok := n.children[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchKey, key)
	}
	return child, nil
}

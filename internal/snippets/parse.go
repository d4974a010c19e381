package snippets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format - формат файла сниппетов.
type Format string

const (
	FormatJSON Format = "json" // JSON с комментариями и висячими запятыми
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat - расширение файла не распознано.
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат файла сниппетов")
	// ErrRootNotObject - верхний уровень документа не является объектом.
	ErrRootNotObject = errors.New("корень документа должен быть объектом")
	// ErrUnsupportedValue - значение не является ни объектом, ни строкой/числом.
	ErrUnsupportedValue = errors.New("неподдерживаемое значение")
	// ErrEmptyDocument - в документе ничего нет.
	ErrEmptyDocument = errors.New("пустой документ")
)

// Extensions возвращает поддерживаемые расширения файлов сниппетов.
func Extensions() []string {
	return []string{".json", ".jsonc", ".yaml", ".yml"}
}

// FormatFromPath определяет формат по расширению файла.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse разбирает документ в дерево узлов. Порядок ключей сохраняется.
func Parse(data []byte, format Format) (*Node, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// parseJSON читает объект потоком токенов: encoding/json в map не
// сохраняет порядок ключей.
func parseJSON(data []byte) (*Node, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("разбор JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrRootNotObject
	}

	root, err := decodeJSONObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("разбор JSON: лишние данные после корневого объекта")
	}
	return root, nil
}

func decodeJSONObject(dec *json.Decoder) (*Node, error) {
	folder := Folder()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("разбор JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("разбор JSON: ожидался ключ, получено %v", tok)
		}

		child, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
		folder.set(key, child)
	}

	// Закрывающая скобка объекта
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("разбор JSON: %w", err)
	}
	return folder, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("разбор JSON: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return decodeJSONObject(dec)
		}
		return nil, fmt.Errorf("%w: массив", ErrUnsupportedValue)
	case string:
		return Leaf(v), nil
	case json.Number:
		return Leaf(v.String()), nil
	case bool:
		if v {
			return Leaf("true"), nil
		}
		return Leaf("false"), nil
	case nil:
		return Leaf(""), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, tok)
	}
}

func parseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	root := doc.Content[0]
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrRootNotObject
	}
	return fromYAML(root)
}

func fromYAML(n *yaml.Node) (*Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		folder := Folder()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			folder.set(key, child)
		}
		return folder, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Leaf(""), nil
		}
		return Leaf(n.Value), nil
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		return nil, fmt.Errorf("%w: список (строка %d)", ErrUnsupportedValue, n.Line)
	default:
		return nil, fmt.Errorf("%w: строка %d", ErrUnsupportedValue, n.Line)
	}
}

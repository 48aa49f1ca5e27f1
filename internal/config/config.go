// Package config - сервис поиска атрибутов игровых данных по (entity-id, attribute).
//
// Файл - YAML: на верхнем уровне id сущностей, у каждой - плоский набор
// атрибутов (скаляры или списки скаляров).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultData []byte

// DefaultName - имя встроенного файла данных в сообщениях об ошибках.
const DefaultName = "default.yaml"

var (
	ErrParse        = errors.New("config parse error")
	ErrMissingKey   = errors.New("missing config key")
	ErrTypeMismatch = errors.New("config type mismatch")
)

// Entity - набор атрибутов одной сущности.
type Entity struct {
	ID    string
	Attrs map[string]Value

	file   string
	line   int
	column int
}

// Config - разобранный файл данных. Только чтение.
type Config struct {
	file     string
	entities map[string]*Entity
}

// Load читает файл данных с диска.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}
	return Parse(path, raw)
}

// Default - встроенные данные. Встроенный файл обязан разбираться.
func Default() *Config {
	c, err := Parse(DefaultName, defaultData)
	if err != nil {
		panic("embedded config is invalid: " + err.Error())
	}
	return c
}

// Parse разбирает YAML. Ошибки содержат файл, строку и колонку.
func Parse(file string, data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oops.Code("CONFIG_PARSE").With("file", file).Wrapf(ErrParse, "%s: %v", file, err)
	}

	c := &Config{file: file, entities: make(map[string]*Entity)}
	if len(doc.Content) == 0 {
		return c, nil // пустой файл
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, parseErr(file, root, "top level must be a mapping of entity ids")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, body := root.Content[i], root.Content[i+1]
		id := keyNode.Value
		if _, dup := c.entities[id]; dup {
			return nil, parseErr(file, keyNode, "duplicate entity %q", id)
		}
		if body.Kind != yaml.MappingNode {
			return nil, parseErr(file, body, "entity %q must be a mapping of attributes", id)
		}

		e := &Entity{ID: id, Attrs: make(map[string]Value), file: file, line: keyNode.Line, column: keyNode.Column}
		for j := 0; j+1 < len(body.Content); j += 2 {
			attrNode, valNode := body.Content[j], body.Content[j+1]
			v, err := decodeValue(file, valNode, true)
			if err != nil {
				return nil, err
			}
			if _, dup := e.Attrs[attrNode.Value]; dup {
				return nil, parseErr(file, attrNode, "duplicate attribute %q in %q", attrNode.Value, id)
			}
			e.Attrs[attrNode.Value] = v
		}
		c.entities[id] = e
	}
	return c, nil
}

func decodeValue(file string, n *yaml.Node, allowList bool) (Value, error) {
	v := Value{Line: n.Line, Column: n.Column}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			v.Kind = KindNull
		case "!!int":
			v.Kind = KindInt
			if err := n.Decode(&v.Int); err != nil {
				return v, parseErr(file, n, "bad int %q", n.Value)
			}
		case "!!float":
			v.Kind = KindFloat
			if err := n.Decode(&v.Float); err != nil {
				return v, parseErr(file, n, "bad float %q", n.Value)
			}
		case "!!bool":
			v.Kind = KindBool
			if err := n.Decode(&v.Bool); err != nil {
				return v, parseErr(file, n, "bad bool %q", n.Value)
			}
		default:
			v.Kind = KindString
			v.String = n.Value
		}
	case yaml.SequenceNode:
		if !allowList {
			return v, parseErr(file, n, "nested lists are not supported")
		}
		v.Kind = KindList
		for _, item := range n.Content {
			iv, err := decodeValue(file, item, false)
			if err != nil {
				return v, err
			}
			v.List = append(v.List, iv)
		}
	case yaml.AliasNode:
		return decodeValue(file, n.Alias, allowList)
	default:
		return v, parseErr(file, n, "unsupported value (nested mappings are not allowed)")
	}
	return v, nil
}

func parseErr(file string, n *yaml.Node, format string, args ...any) error {
	return oops.Code("CONFIG_PARSE").
		With("file", file, "line", n.Line, "column", n.Column).
		Wrapf(ErrParse, "%s:%d:%d: %s", file, n.Line, n.Column, fmt.Sprintf(format, args...))
}

// File - имя исходного файла.
func (c *Config) File() string { return c.file }

// IDs - id всех сущностей по алфавиту.
func (c *Config) IDs() []string {
	out := make([]string, 0, len(c.entities))
	for id := range c.entities {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Lookup - сущность или ошибка "нет такого ключа".
func (c *Config) Lookup(id string) (*Entity, error) {
	e, ok := c.entities[id]
	if !ok {
		return nil, oops.Code("CONFIG_MISSING_KEY").
			With("file", c.file, "entity", id).
			Wrapf(ErrMissingKey, "%s: unknown entity %q", c.file, id)
	}
	return e, nil
}

// Has - есть ли у сущности атрибут (отсутствие сущности = false).
func (c *Config) Has(id, attr string) bool {
	e, ok := c.entities[id]
	return ok && e.Has(attr)
}

// ByKind - id сущностей с атрибутом kind == kind, по алфавиту.
func (c *Config) ByKind(kind string) []string {
	var out []string
	for _, id := range c.IDs() {
		if s, err := c.entities[id].String("kind"); err == nil && s == kind {
			out = append(out, id)
		}
	}
	return out
}

func (c *Config) Int(id, attr string) (int, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return 0, err
	}
	return e.Int(attr)
}

func (c *Config) Float(id, attr string) (float64, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return 0, err
	}
	return e.Float(attr)
}

func (c *Config) String(id, attr string) (string, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return "", err
	}
	return e.String(attr)
}

func (c *Config) Bool(id, attr string) (bool, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return false, err
	}
	return e.Bool(attr)
}

func (c *Config) Strings(id, attr string) ([]string, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	return e.Strings(attr)
}

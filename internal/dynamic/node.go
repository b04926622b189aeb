// Package dynamic maps schema-less JSON documents onto a read-only tree that
// can be navigated by key and index without declaring response types.
package dynamic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	List
	// Raw is a composite value held as-is because it appeared in a list whose
	// first element is not an object.
	Raw
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case List:
		return "list"
	case Raw:
		return "raw"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one element of a mapped JSON document. A Node is never modified
// after Wrap returns it.
type Node struct {
	kind   Kind
	value  interface{}
	fields map[string]*Node
	items  []*Node
}

// Wrap converts a decoded JSON value into a Node tree.
//
// Objects become object nodes and every member is wrapped. Arrays whose first
// element is an object become lists of wrapped elements. Any other array
// becomes a list of leaf nodes holding the elements unchanged.
func Wrap(v interface{}) *Node {
	switch t := v.(type) {
	case map[string]interface{}:
		fields := make(map[string]*Node, len(t))
		for k, member := range t {
			fields[k] = Wrap(member)
		}
		return &Node{kind: Object, fields: fields}
	case []interface{}:
		items := make([]*Node, 0, len(t))
		if len(t) > 0 {
			if _, ok := t[0].(map[string]interface{}); ok {
				for _, elem := range t {
					items = append(items, Wrap(elem))
				}
				return &Node{kind: List, items: items}
			}
		}
		for _, elem := range t {
			items = append(items, leaf(elem))
		}
		return &Node{kind: List, items: items}
	default:
		return leaf(v)
	}
}

// Parse decodes data and wraps the result. Numbers keep their exact text.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return Wrap(v), nil
}

func leaf(v interface{}) *Node {
	switch t := v.(type) {
	case nil:
		return &Node{kind: Null}
	case bool:
		return &Node{kind: Bool, value: t}
	case string:
		return &Node{kind: String, value: t}
	case json.Number:
		return &Node{kind: Number, value: t}
	case float64:
		return &Node{kind: Number, value: json.Number(strconv.FormatFloat(t, 'g', -1, 64))}
	case float32:
		return &Node{kind: Number, value: json.Number(strconv.FormatFloat(float64(t), 'g', -1, 32))}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return &Node{kind: Number, value: json.Number(fmt.Sprint(t))}
	default:
		return &Node{kind: Raw, value: t}
	}
}

func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

func (n *Node) IsNull() bool {
	return n.Kind() == Null
}

// Get returns the member key of an object node.
func (n *Node) Get(key string) (*Node, error) {
	if n.Kind() != Object {
		return nil, &MissingFieldError{Key: key, Kind: n.Kind()}
	}

	child, ok := n.fields[key]
	if !ok {
		return nil, &MissingFieldError{Key: key, Kind: Object}
	}

	return child, nil
}

// Has reports whether key is a member of an object node. Members holding
// null are present.
func (n *Node) Has(key string) bool {
	if n.Kind() != Object {
		return false
	}

	_, ok := n.fields[key]
	return ok
}

// Keys returns the member names of an object node in sorted order.
func (n *Node) Keys() []string {
	if n.Kind() != Object {
		return nil
	}

	keys := make([]string, 0, len(n.fields))
	for k := range n.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len is the number of members of an object or elements of a list.
func (n *Node) Len() int {
	switch n.Kind() {
	case Object:
		return len(n.fields)
	case List:
		return len(n.items)
	default:
		return 0
	}
}

func (n *Node) Index(i int) (*Node, error) {
	if n.Kind() != List {
		return nil, &IndexError{Index: i, Kind: n.Kind()}
	}

	if i < 0 || i >= len(n.items) {
		return nil, &IndexError{Index: i, Kind: List, Len: len(n.items)}
	}

	return n.items[i], nil
}

// Items returns a copy of the elements of a list node.
func (n *Node) Items() []*Node {
	if n.Kind() != List {
		return nil
	}

	items := make([]*Node, len(n.items))
	copy(items, n.items)

	return items
}

// Lookup follows a dot separated path of member names and list indexes, for
// example "sessions.0.events.0.location_type".
func (n *Node) Lookup(path string) (*Node, error) {
	current := n
	if path == "" {
		return current, nil
	}

	for _, part := range strings.Split(path, ".") {
		var err error
		if i, convErr := strconv.Atoi(part); convErr == nil && current.Kind() == List {
			current, err = current.Index(i)
		} else {
			current, err = current.Get(part)
		}

		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", path, err)
		}
	}

	return current, nil
}

// Value returns the leaf value held by a scalar or raw node: a string,
// json.Number, bool, nil, or the unconverted composite of a raw node.
func (n *Node) Value() interface{} {
	if n == nil {
		return nil
	}
	return n.value
}

// Interface converts the tree back into plain Go values. Numbers become
// int64 when integral and float64 otherwise.
func (n *Node) Interface() interface{} {
	switch n.Kind() {
	case Object:
		m := make(map[string]interface{}, len(n.fields))
		for k, v := range n.fields {
			m[k] = v.Interface()
		}
		return m
	case List:
		s := make([]interface{}, 0, len(n.items))
		for _, item := range n.items {
			s = append(s, item.Interface())
		}
		return s
	case Number, Raw:
		return plain(n.value)
	default:
		return n.Value()
	}
}

// plain converts the json.Number leaves of a decoded value, including those
// nested in raw composites.
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, 0, len(t))
		for _, e := range t {
			s = append(s, plain(e))
		}
		return s
	default:
		return t
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind() {
	case Object:
		return json.Marshal(n.fields)
	case List:
		return json.Marshal(n.items)
	default:
		return json.Marshal(n.Value())
	}
}

// String returns display text for the node. Null renders as an empty string,
// composites as compact JSON.
func (n *Node) String() string {
	switch n.Kind() {
	case Null:
		return ""
	case Object, List, Raw:
		b, err := json.Marshal(n)
		if err != nil {
			return fmt.Sprintf("%v", n.Value())
		}
		return string(b)
	case Number:
		return n.value.(json.Number).String()
	default:
		return cast.ToString(n.value)
	}
}

// Text returns the display text of member key, or "" when it is absent.
func (n *Node) Text(key string) string {
	child, err := n.Get(key)
	if err != nil {
		return ""
	}
	return child.String()
}

func (n *Node) Int64() (int64, error) {
	switch n.Kind() {
	case Number, String:
		return cast.ToInt64E(n.String())
	default:
		return 0, fmt.Errorf("cannot convert %s node to int64", n.Kind())
	}
}

func (n *Node) Bool() (bool, error) {
	switch n.Kind() {
	case Bool:
		return n.value.(bool), nil
	case String, Number:
		return cast.ToBoolE(n.String())
	default:
		return false, fmt.Errorf("cannot convert %s node to bool", n.Kind())
	}
}

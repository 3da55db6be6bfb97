package microtable

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyValue is a single field of a [Record].
type KeyValue struct {
	Key   string
	Value any
}

// Record is a record whose fields keep their order. Go maps are rendered
// with sorted keys; use Record (or a struct, or a *yaml.Node mapping) when
// column order matters.
type Record []KeyValue

type valueKind int

const (
	scalarValue valueKind = iota
	recordValue
	listValue
)

// value is the normalized form of renderer input.
type value struct {
	kind   valueKind
	text   string // inspect notation, used inside cells
	plain  string // scalars printed on their own
	fields []field
	items  []value
}

type field struct {
	key string
	val value
}

func scalar(text, plain string) value {
	return value{kind: scalarValue, text: text, plain: plain}
}

var nullValue = scalar("null", "null")

func stringValue(s string) value {
	return scalar(quoteString(s), s)
}

var circularValue = scalar("[Circular]", "[Circular]")

// visitKey identifies a reference value on the current conversion path.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// converter normalizes renderer input. It tracks the references and YAML
// nodes currently being converted so that a cycle becomes [Circular]
// instead of endless recursion.
type converter struct {
	active map[any]struct{}
}

func toValue(v any) (value, error) {
	var c converter
	return c.value(v)
}

func (c *converter) enter(key any) bool {
	if _, ok := c.active[key]; ok {
		return false
	}
	if c.active == nil {
		c.active = make(map[any]struct{})
	}
	c.active[key] = struct{}{}
	return true
}

func (c *converter) leave(key any) {
	delete(c.active, key)
}

func refKey(v any) (visitKey, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}, true
	}
	return visitKey{}, false
}

func (c *converter) value(v any) (value, error) {
	if key, ok := refKey(v); ok {
		if !c.enter(key) {
			return circularValue, nil
		}
		defer c.leave(key)
	}
	switch x := v.(type) {
	case nil:
		return nullValue, nil
	case *yaml.Node:
		return c.node(x)
	case yaml.Node:
		return c.node(&x)
	case Record:
		return c.record(x)
	case []byte:
		return stringValue(string(x)), nil
	case error:
		return stringValue(x.Error()), nil
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nullValue, nil
		}
		return stringValue(x.String()), nil
	}
	return c.fromReflect(reflect.ValueOf(v))
}

func (c *converter) record(r Record) (value, error) {
	out := value{kind: recordValue, fields: make([]field, 0, len(r))}
	for _, kv := range r {
		fv, err := c.value(kv.Value)
		if err != nil {
			return value{}, fmt.Errorf("field %q: %w", kv.Key, err)
		}
		out.fields = append(out.fields, field{key: kv.Key, val: fv})
	}
	return out, nil
}

func (c *converter) fromReflect(rv reflect.Value) (value, error) {
	if !rv.IsValid() {
		return nullValue, nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nullValue, nil
		}
		return c.value(rv.Elem().Interface())
	case reflect.Bool:
		s := strconv.FormatBool(rv.Bool())
		return scalar(s, s), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s := strconv.FormatInt(rv.Int(), 10)
		return scalar(s, s), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s := strconv.FormatUint(rv.Uint(), 10)
		return scalar(s, s), nil
	case reflect.Float32, reflect.Float64:
		s := formatFloat(rv.Float())
		return scalar(s, s), nil
	case reflect.String:
		return stringValue(rv.String()), nil
	case reflect.Slice, reflect.Array:
		out := value{kind: listValue, items: make([]value, 0, rv.Len())}
		for i := range rv.Len() {
			item, err := c.value(rv.Index(i).Interface())
			if err != nil {
				return value{}, fmt.Errorf("index %d: %w", i, err)
			}
			out.items = append(out.items, item)
		}
		return out, nil
	case reflect.Map:
		return c.mapping(rv)
	case reflect.Struct:
		out := value{kind: recordValue}
		if err := c.structFields(&out, rv); err != nil {
			return value{}, err
		}
		return out, nil
	default:
		return value{}, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
	}
}

func (c *converter) mapping(rv reflect.Value) (value, error) {
	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		keys = append(keys, k)
		byKey[k] = iter.Value()
	}
	sort.Strings(keys)
	out := value{kind: recordValue, fields: make([]field, 0, len(keys))}
	for _, k := range keys {
		fv, err := c.value(byKey[k].Interface())
		if err != nil {
			return value{}, fmt.Errorf("key %q: %w", k, err)
		}
		out.fields = append(out.fields, field{key: k, val: fv})
	}
	return out, nil
}

func (c *converter) structFields(out *value, rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		name, tagged, skip := fieldName(sf)
		if skip {
			continue
		}
		fv := rv.Field(i)
		// Embedded structs are flattened even when their type is unexported.
		if sf.Anonymous && !tagged && fv.Kind() == reflect.Struct {
			if err := c.structFields(out, fv); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		val, err := c.value(fv.Interface())
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
		out.fields = append(out.fields, field{key: name, val: val})
	}
	return nil
}

// fieldName resolves the column name of a struct field from its json or
// yaml tag, falling back to the Go field name.
func fieldName(sf reflect.StructField) (name string, tagged, skip bool) {
	for _, key := range []string{"json", "yaml"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		if tag == "-" {
			return "", true, true
		}
		if n, _, _ := strings.Cut(tag, ","); n != "" {
			return n, true, false
		}
	}
	return sf.Name, false, false
}

func (c *converter) node(n *yaml.Node) (value, error) {
	if n == nil {
		return nullValue, nil
	}
	if !c.enter(n) {
		return circularValue, nil
	}
	defer c.leave(n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nullValue, nil
		}
		return c.node(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nullValue, nil
		}
		return c.node(n.Alias)
	case yaml.MappingNode:
		out := value{kind: recordValue, fields: make([]field, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			fv, err := c.node(n.Content[i+1])
			if err != nil {
				return value{}, err
			}
			out.fields = append(out.fields, field{key: n.Content[i].Value, val: fv})
		}
		return out, nil
	case yaml.SequenceNode:
		out := value{kind: listValue, items: make([]value, 0, len(n.Content))}
		for _, item := range n.Content {
			iv, err := c.node(item)
			if err != nil {
				return value{}, err
			}
			out.items = append(out.items, iv)
		}
		return out, nil
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return value{}, fmt.Errorf("%w: line %d: %w", ErrInvalidInput, n.Line, err)
		}
		return c.value(x)
	default:
		return value{}, fmt.Errorf("%w: yaml node kind %d", ErrUnsupportedValue, n.Kind)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f != 0 && (math.Abs(f) >= 1e21 || math.Abs(f) < 1e-6):
		// strconv pads the exponent to two digits: 1e-07.
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// quoteString wraps s in single quotes, or in double quotes when s holds a
// single quote, or in backticks when it holds both. Only when all three
// occur are single quotes escaped. Backslashes and control characters are
// always escaped, so the result fits on one line.
func quoteString(s string) string {
	q := '\''
	switch {
	case !strings.Contains(s, "'"):
	case !strings.Contains(s, `"`):
		q = '"'
	case !strings.Contains(s, "`"):
		q = '`'
	}
	var sb strings.Builder
	sb.WriteRune(q)
	for _, r := range s {
		if r == q || r == '\\' {
			sb.WriteByte('\\')
			sb.WriteRune(r)
			continue
		}
		if !writeEscaped(&sb, r) {
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(q)
	return sb.String()
}

// escapeControl escapes the control characters of s and nothing else.
func escapeControl(s string) string {
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if !writeEscaped(&sb, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

func writeEscaped(sb *strings.Builder, r rune) bool {
	switch r {
	case '\b':
		sb.WriteString(`\b`)
	case '\t':
		sb.WriteString(`\t`)
	case '\n':
		sb.WriteString(`\n`)
	case '\f':
		sb.WriteString(`\f`)
	case '\r':
		sb.WriteString(`\r`)
	default:
		if !isControl(r) {
			return false
		}
		fmt.Fprintf(sb, `\x%02X`, r)
	}
	return true
}

const maxListItems = 3

// cellText renders a value the way it appears inside a cell. A record with
// more than two fields collapses to [Object]; otherwise only the top level
// is expanded.
func cellText(v value) string {
	if v.kind == recordValue && len(v.fields) > 2 {
		return inspect(v, -1)
	}
	return inspect(v, 0)
}

// inspect renders v, expanding depth more levels of nesting below it. Lists
// show at most three items.
func inspect(v value, depth int) string {
	switch v.kind {
	case recordValue:
		if len(v.fields) == 0 {
			return "{}"
		}
		if depth < 0 {
			return "[Object]"
		}
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = inspectKey(f.key) + ": " + inspect(f.val, depth-1)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case listValue:
		if len(v.items) == 0 {
			return "[]"
		}
		if depth < 0 {
			return "[Array]"
		}
		n := min(len(v.items), maxListItems)
		parts := make([]string, n, n+1)
		for i, item := range v.items[:n] {
			parts[i] = inspect(item, depth-1)
		}
		switch more := len(v.items) - n; {
		case more == 1:
			parts = append(parts, "... 1 more item")
		case more > 1:
			parts = append(parts, fmt.Sprintf("... %d more items", more))
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	default:
		return v.text
	}
}

func inspectKey(k string) string {
	if isIdentifier(k) {
		return k
	}
	return quoteString(k)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

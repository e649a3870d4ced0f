package jsonvalue

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Value model (component C5), grounded on the teacher's ast.go Node/KeyNode
// pair. The teacher built its AST from *Node with parent back-pointers so
// Key() could walk up to the root; Value is a plain value type (no back
// pointers, copyable, comparable by Equal) the way encoding/json.RawMessage
// and this package's own Array/Object slices are meant to be used, so the
// parent-walking Key() method is dropped — GetChild/SetChild/RemoveChild,
// which only need a dotted path downward, are kept.

// Kind is an enum for the tagged-union type of a Value. The zero value is
// KindNull.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat32
	KindFloat64
	KindString
	KindArray
	KindObject
	kindCount
)

var kindNames = [kindCount]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// member is one key/value pair of an Object. members are kept sorted by key
// so Get/Set/Delete can binary-search instead of the teacher's linear scan
// over []KeyNode.
type member struct {
	key string
	val Value
}

// Value holds one JSON value: exactly one of the fields below is
// meaningful, selected by kind.
//
//	Kind       field
//	KindNull   (none)
//	KindBool   bits != 0
//	KindInt    int64(bits)
//	KindFloat32 math.Float32frombits(uint32(bits))
//	KindFloat64 math.Float64frombits(bits)
//	KindString str
//	KindArray  items
//	KindObject members
type Value struct {
	kind    Kind
	bits    uint64
	str     []byte
	alloc   Allocator // non-nil only for a KindString built from a pooled buffer
	items   []Value
	members []member
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

// Int returns an integer Value holding the full int64 range, per spec §4.5.
func Int(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

// Float32 returns a single-precision float Value.
func Float32(f float32) Value {
	return Value{kind: KindFloat32, bits: uint64(math.Float32bits(f))}
}

// Float64 returns a double-precision float Value.
func Float64(f float64) Value {
	return Value{kind: KindFloat64, bits: math.Float64bits(f)}
}

// String returns a string Value. The bytes of s are copied and owned by
// Go's garbage collector rather than any Allocator; use newOwnedString to
// build a Value from a buffer already owned by an Allocator, avoiding a
// second copy during parsing.
func String(s string) Value {
	return Value{kind: KindString, str: []byte(s)}
}

// newOwnedString wraps buf, which must not be referenced again by the
// caller, as a string Value without copying. alloc records which
// Allocator produced buf, per spec §3 invariant 5, so Release can return
// it and Clone knows when a re-allocation is needed.
func newOwnedString(buf []byte, alloc Allocator) Value {
	return Value{kind: KindString, str: buf, alloc: alloc}
}

// Array returns an array Value containing items, in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object returns an empty object Value; use Set to populate it.
func Object() Value {
	return Value{kind: KindObject}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind != KindBool {
		mismatch(KindBool, v.kind)
	}
	return v.bits != 0
}

func (v Value) Int() int64 {
	if v.kind != KindInt {
		mismatch(KindInt, v.kind)
	}
	return int64(v.bits)
}

func (v Value) Float32() float32 {
	if v.kind != KindFloat32 {
		mismatch(KindFloat32, v.kind)
	}
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) Float64() float64 {
	if v.kind != KindFloat64 {
		mismatch(KindFloat64, v.kind)
	}
	return math.Float64frombits(v.bits)
}

// Number returns any of KindInt/KindFloat32/KindFloat64 widened to float64,
// for callers that don't care about the original width.
func (v Value) Number() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.Int())
	case KindFloat32:
		return float64(v.Float32())
	case KindFloat64:
		return v.Float64()
	default:
		mismatch(KindFloat64, v.kind)
		return 0
	}
}

// Text returns the content of a string Value.
func (v Value) Text() string {
	if v.kind != KindString {
		mismatch(KindString, v.kind)
	}
	return string(v.str)
}

// Len reports the number of elements of an array or members of an object.
// Any other Kind has length 1, matching the teacher's Node.Len.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 1
	}
}

// Total returns the number of Values in the subtree rooted at v, itself
// included.
func (v Value) Total() int {
	switch v.kind {
	case KindArray:
		n := 1
		for _, e := range v.items {
			n += e.Total()
		}
		return n
	case KindObject:
		n := 1
		for _, m := range v.members {
			n += m.val.Total()
		}
		return n
	default:
		return 1
	}
}

// Index returns the i'th element of an array. It panics if v is not an
// array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		mismatch(KindArray, v.kind)
	}
	return v.items[i]
}

// SetIndex replaces the i'th element of an array.
func (v *Value) SetIndex(i int, val Value) {
	if v.kind != KindArray {
		mismatch(KindArray, v.kind)
	}
	v.items[i] = val
}

// Append adds vals to the end of an array.
func (v *Value) Append(vals ...Value) {
	if v.kind != KindArray {
		mismatch(KindArray, v.kind)
	}
	v.items = append(v.items, vals...)
}

func (v Value) memberIndex(key string) (int, bool) {
	i := sort.Search(len(v.members), func(i int) bool { return v.members[i].key >= key })
	if i < len(v.members) && v.members[i].key == key {
		return i, true
	}
	return i, false
}

// Get returns the value of an object member by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		mismatch(KindObject, v.kind)
	}
	i, ok := v.memberIndex(key)
	if !ok {
		return Value{}, false
	}
	return v.members[i].val, true
}

// Set inserts or replaces an object member, keeping members sorted by key
// per SPEC_FULL.md's resolution of Object member ordering.
func (v *Value) Set(key string, val Value) {
	if v.kind != KindObject {
		mismatch(KindObject, v.kind)
	}
	i, ok := v.memberIndex(key)
	if ok {
		v.members[i].val = val
		return
	}
	v.members = append(v.members, member{})
	copy(v.members[i+1:], v.members[i:])
	v.members[i] = member{key: key, val: val}
}

// Delete removes an object member by key, if present.
func (v *Value) Delete(key string) {
	if v.kind != KindObject {
		mismatch(KindObject, v.kind)
	}
	i, ok := v.memberIndex(key)
	if !ok {
		return
	}
	v.members = append(v.members[:i], v.members[i+1:]...)
}

// Keys returns the sorted member keys of an object.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		mismatch(KindObject, v.kind)
	}
	ks := make([]string, len(v.members))
	for i, m := range v.members {
		ks[i] = m.key
	}
	return ks
}

// AddChildren appends values to an Array, or key/value pairs to an Object.
// It panics if v is neither, mirroring the teacher's AddChildren.
func (v *Value) AddChildren(kvs ...KeyValue) {
	switch v.kind {
	case KindObject:
		for _, kv := range kvs {
			if kv.Key == "" {
				panic("empty key for object value")
			}
			v.Set(kv.Key, kv.Value)
		}
	case KindArray:
		for _, kv := range kvs {
			v.items = append(v.items, kv.Value)
		}
	default:
		panic(errors.Wrapf(ErrNotArrayOrObject, "v is %s", v.kind))
	}
}

// KeyValue pairs a key with a Value, for AddChildren. The key is ignored
// when appending to an Array.
type KeyValue struct {
	Key   string
	Value Value
}

// GetChild resolves a dot-separated path of object keys and array indices,
// starting from v. The empty path returns v itself.
func (v Value) GetChild(path string) (Value, bool) {
	if path == "" {
		return v, true
	}
	head, rest := splitPath(path)
	switch v.kind {
	case KindObject:
		c, ok := v.Get(head)
		if !ok {
			return Value{}, false
		}
		return c.GetChild(rest)
	case KindArray:
		i, err := strconv.Atoi(head)
		if err != nil || i < 0 || i >= len(v.items) {
			return Value{}, false
		}
		return v.items[i].GetChild(rest)
	default:
		panic(errors.Wrapf(ErrNotArrayOrObject, "is %s", v.kind))
	}
}

// SetChild replaces the value found at path, which must already exist.
func (v *Value) SetChild(path string, val Value) error {
	head, rest := splitPath(path)
	switch v.kind {
	case KindObject:
		c, ok := v.Get(head)
		if !ok {
			return ErrNotArrayOrObject
		}
		if rest == "" {
			v.Set(head, val)
			return nil
		}
		if err := c.SetChild(rest, val); err != nil {
			return err
		}
		v.Set(head, c)
		return nil
	case KindArray:
		i, err := strconv.Atoi(head)
		if err != nil || i < 0 || i >= len(v.items) {
			return ErrNotArrayOrObject
		}
		if rest == "" {
			v.items[i] = val
			return nil
		}
		return v.items[i].SetChild(rest, val)
	default:
		return ErrNotArrayOrObject
	}
}

// RemoveChild removes the member or element found at path.
func (v *Value) RemoveChild(path string) error {
	head, rest := splitPath(path)
	if rest != "" {
		parent := leadingPath(path)
		c, ok := v.GetChild(parent)
		if !ok {
			return fmt.Errorf("jsonvalue: node does not have child %s", path)
		}
		if err := c.RemoveChild(path[len(parent)+1:]); err != nil {
			return err
		}
		return v.SetChild(parent, c)
	}
	switch v.kind {
	case KindObject:
		v.Delete(head)
		return nil
	case KindArray:
		i, err := strconv.Atoi(head)
		if err != nil || i < 0 || i >= len(v.items) {
			return fmt.Errorf("jsonvalue: not-a-number or out-of-range key in array")
		}
		v.items = append(v.items[:i], v.items[i+1:]...)
		return nil
	default:
		return errors.Wrapf(ErrNotArrayOrObject, "in %s", v.kind)
	}
}

func splitPath(path string) (head, rest string) {
	i := strings.IndexByte(path, '.')
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

func leadingPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[:i]
}

// Equal reports whether a and b are structurally equal. Object member
// order does not matter, matching the teacher's EqNode.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool, KindInt:
		return a.bits == b.bits
	case KindFloat32:
		return a.Float32() == b.Float32() || (math.IsNaN(float64(a.Float32())) && math.IsNaN(float64(b.Float32())))
	case KindFloat64:
		return a.Float64() == b.Float64() || (math.IsNaN(a.Float64()) && math.IsNaN(b.Float64()))
	case KindString:
		return string(a.str) == string(b.str)
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		bv, ok := b, true
		for _, m := range a.members {
			var c Value
			c, ok = bv.Get(m.key)
			if !ok || !Equal(m.val, c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone deep-copies v, re-allocating any owned string buffer from dst
// rather than the Allocator it was originally built with — spec §3
// invariant 5 and §4.5's copy rule. A copy within the same allocator
// still re-allocates (Clone never aliases a buffer another Value might
// Release); Move is this package's assignment semantics plus Release on
// the source, since Go has no linear types to enforce "moved from"
// automatically.
func (v Value) Clone(dst Allocator) Value {
	switch v.kind {
	case KindString:
		buf := dst.Get(len(v.str))
		buf = append(buf, v.str...)
		return newOwnedString(buf, dst)
	case KindArray:
		items := make([]Value, len(v.items))
		for i, e := range v.items {
			items[i] = e.Clone(dst)
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		members := make([]member, len(v.members))
		for i, m := range v.members {
			members[i] = member{key: m.key, val: m.val.Clone(dst)}
		}
		return Value{kind: KindObject, members: members}
	default:
		return v
	}
}

// Release returns any Allocator-owned buffers in v's subtree to the
// Allocator that produced them. After Release, v and anything Clone'd
// from it by reference must not be used again; values built by String,
// NewJSONGo, or the other GC-owned constructors are unaffected, since
// their alloc field is nil.
func (v Value) Release() {
	switch v.kind {
	case KindString:
		if v.alloc != nil {
			v.alloc.Put(v.str)
		}
	case KindArray:
		for _, e := range v.items {
			e.Release()
		}
	case KindObject:
		for _, m := range v.members {
			m.val.Release()
		}
	}
}

// NewJSONGo converts a Go value into a Value using reflection, the way the
// teacher's NewJSONGo builds a Node from a Go value. Map keys must be
// strings; struct fields follow "json" tags the same way encoding/json
// does (name override, "-" to skip, "omitempty" honored by JSON2Go).
func NewJSONGo(val interface{}) (Value, error) {
	if val == nil {
		return Null(), nil
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float64(float64(u)), nil
		}
		return Int(int64(u)), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rv.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			c, err := NewJSONGo(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = c
		}
		return Array(items...), nil
	case reflect.Map:
		out := Object()
		for _, key := range rv.MapKeys() {
			c, err := NewJSONGo(rv.MapIndex(key).Interface())
			if err != nil {
				return Value{}, err
			}
			out.Set(fmt.Sprint(key.Interface()), c)
		}
		return out, nil
	case reflect.Struct:
		out := Object()
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := t.Field(i)
			if r, _ := utf8.DecodeRuneInString(field.Name); !unicode.IsUpper(r) {
				continue
			}
			tags := strings.Split(field.Tag.Get("json"), ",")
			if tags[0] == "-" && len(tags) == 1 {
				continue
			}
			c, err := NewJSONGo(rv.Field(i).Interface())
			if err != nil {
				return Value{}, err
			}
			key := tags[0]
			if key == "" {
				key = field.Name
			}
			out.Set(key, c)
		}
		return out, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return Null(), nil
		}
		return NewJSONGo(rv.Elem().Interface())
	default:
		return Value{}, fmt.Errorf("jsonvalue: invalid type %s", rv.Kind())
	}
}

// JSON2Go writes v into dst, which must be a non-nil pointer, the way the
// teacher's Node.JSON2Go does.
func (v Value) JSON2Go(dst interface{}) error {
	return json2Go(v, dst, false)
}

func json2Go(v Value, dst interface{}, stringify bool) (err error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("jsonvalue: destination %v is not a pointer", rv)
	}
	inner := rv.Elem()
	switch inner.Kind() {
	case reflect.Bool:
		if v.kind != KindBool {
			return fmt.Errorf("jsonvalue: mismatched type: want bool got %s", v.kind)
		}
		inner.SetBool(v.Bool())
		return nil
	case reflect.Float64, reflect.Float32,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.kind != KindInt && v.kind != KindFloat32 && v.kind != KindFloat64 {
			return fmt.Errorf("jsonvalue: mismatched type: want number got %s", v.kind)
		}
		inner.Set(reflect.ValueOf(v.Number()).Convert(inner.Type()))
		return nil
	case reflect.String:
		if !stringify {
			if v.kind != KindString {
				return fmt.Errorf("jsonvalue: mismatched type: want string got %s", v.kind)
			}
			inner.SetString(v.Text())
			return nil
		}
		inner.SetString(v.String())
		return nil
	case reflect.Slice:
		if v.kind != KindArray {
			return fmt.Errorf("jsonvalue: mismatched type: want array got %s", v.kind)
		}
		elemT := inner.Type().Elem()
		out := reflect.MakeSlice(inner.Type(), 0, len(v.items))
		for _, e := range v.items {
			ep := reflect.New(elemT)
			if err := json2Go(e, ep.Interface(), stringify); err != nil {
				return err
			}
			out = reflect.Append(out, ep.Elem())
		}
		inner.Set(out)
		return nil
	case reflect.Struct:
		t := inner.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if r, _ := utf8.DecodeRuneInString(field.Name); !unicode.IsUpper(r) {
				continue
			}
			tags := strings.Split(field.Tag.Get("json"), ",")
			if tags[0] == "-" && len(tags) == 1 {
				continue
			}
			key := tags[0]
			if key == "" {
				key = field.Name
			}
			c, ok := v.Get(key)
			if !ok {
				if hasTag(tags[1:], "omitempty") {
					continue
				}
				return fmt.Errorf("jsonvalue: key %q missing from object", key)
			}
			if err := json2Go(c, inner.Field(i).Addr().Interface(), hasTag(tags[1:], "string")); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.kind != KindObject {
			return fmt.Errorf("jsonvalue: mismatched type: want object got %s", v.kind)
		}
		out := reflect.MakeMapWithSize(inner.Type(), len(v.members))
		elemT := inner.Type().Elem()
		for _, m := range v.members {
			ep := reflect.New(elemT)
			if err := json2Go(m.val, ep.Interface(), stringify); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(m.key), ep.Elem())
		}
		inner.Set(out)
		return nil
	default:
		return fmt.Errorf("jsonvalue: unsupported destination kind %s", inner.Kind())
	}
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler so a Value nests naturally inside
// encoding/json-driven structures.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendCompact(nil, v), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders v as compact JSON text.
func (v Value) String() string {
	return string(AppendCompact(nil, v))
}

package jsonkit

import (
	"math"
	"math/big"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal // arbitrary-precision base-10
	KindBigInt  // arbitrary-precision integer
	KindArray
	KindMap
)

// Value is a closed tagged union over every JSON-compatible datum. Leaf
// variants are immutable once constructed; Map and Array are mutable
// containers owned exclusively by the caller while mutated. Values never
// widen: an Int64 read through Int32 yields absent even when in range.
type Value struct {
	kind Kind
	b    bool
	s    string // KindString payload; KindDecimal keeps the source literal here
	i    int64  // KindInt32 and KindInt64
	f    float64
	dec  decimal.Decimal
	big  *big.Int
	arr  []*Value
	obj  map[string]*Value
	// order tracks key insertion order; serialization uses it when it
	// covers every key, otherwise falls back to sorted keys.
	order  []string
	frozen bool
}

// Shared immutable values. The empty containers are read-only; mutating
// them panics.
var (
	Null       = &Value{kind: KindNull}
	True       = &Value{kind: KindBool, b: true}
	False      = &Value{kind: KindBool}
	EmptyMap   = &Value{kind: KindMap, frozen: true}
	EmptyArray = &Value{kind: KindArray, frozen: true}
)

// OfBool returns the shared True or False value.
func OfBool(v bool) *Value {
	if v {
		return True
	}
	return False
}

func OfString(v string) *Value { return &Value{kind: KindString, s: v} }

func OfInt32(v int32) *Value { return &Value{kind: KindInt32, i: int64(v)} }

func OfInt64(v int64) *Value { return &Value{kind: KindInt64, i: v} }

func OfFloat32(v float32) *Value { return &Value{kind: KindFloat32, f: float64(v)} }

func OfFloat64(v float64) *Value { return &Value{kind: KindFloat64, f: v} }

func OfDecimal(v decimal.Decimal) *Value { return &Value{kind: KindDecimal, dec: v} }

// OfBigInt wraps an arbitrary-precision integer; nil maps to Null.
func OfBigInt(v *big.Int) *Value {
	if v == nil {
		return Null
	}
	return &Value{kind: KindBigInt, big: v}
}

// OfMap adopts m as a Map value; nil maps to Null. Adopted keys have no
// recorded insertion order, so serialization sorts them.
func OfMap(m map[string]*Value) *Value {
	if m == nil {
		return Null
	}
	return &Value{kind: KindMap, obj: m}
}

// OfArray adopts items as an Array value; nil maps to Null.
func OfArray(items []*Value) *Value {
	if items == nil {
		return Null
	}
	return &Value{kind: KindArray, arr: items}
}

// OfValues builds an Array from the given values.
func OfValues(items ...*Value) *Value { return &Value{kind: KindArray, arr: items} }

// OfNanos stores a duration as its nanosecond count.
func OfNanos(d time.Duration) *Value { return OfInt64(d.Nanoseconds()) }

// NewMap returns an empty mutable Map that tracks key insertion order.
func NewMap() *Value { return &Value{kind: KindMap, obj: map[string]*Value{}} }

// NewArray returns an empty mutable Array.
func NewArray() *Value { return &Value{kind: KindArray, arr: []*Value{}} }

// Kind reports the variant; a nil receiver reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) Bool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v *Value) Str() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v *Value) Int32() (int32, bool) {
	if v == nil || v.kind != KindInt32 {
		return 0, false
	}
	return int32(v.i), true
}

func (v *Value) Int64() (int64, bool) {
	if v == nil || v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

func (v *Value) Float32() (float32, bool) {
	if v == nil || v.kind != KindFloat32 {
		return 0, false
	}
	return float32(v.f), true
}

func (v *Value) Float64() (float64, bool) {
	if v == nil || v.kind != KindFloat64 {
		return 0, false
	}
	return v.f, true
}

func (v *Value) Decimal() (decimal.Decimal, bool) {
	if v == nil || v.kind != KindDecimal {
		return decimal.Decimal{}, false
	}
	return v.dec, true
}

func (v *Value) BigInt() (*big.Int, bool) {
	if v == nil || v.kind != KindBigInt {
		return nil, false
	}
	return v.big, true
}

func (v *Value) Array() ([]*Value, bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v *Value) Map() (map[string]*Value, bool) {
	if v == nil || v.kind != KindMap {
		return nil, false
	}
	return v.obj, true
}

// Get looks a key up in a Map value; nil for any other variant or a
// missing key.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	return v.obj[key]
}

// Keys returns map keys in serialization order; nil for other variants.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindMap || len(v.obj) == 0 {
		return nil
	}
	keys := v.serializationKeys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Entry is one key/value pair of a Map value.
type Entry struct {
	Key   string
	Value *Value
}

// Entries returns map entries in serialization order; nil for other
// variants.
func (v *Value) Entries() []Entry {
	if v == nil || v.kind != KindMap || len(v.obj) == 0 {
		return nil
	}
	keys := v.serializationKeys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Value: v.obj[k]})
	}
	return out
}

// Items returns array elements; nil for other variants.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Put stores a value under key in a Map value. The first write of a key
// records its position in the serialization order (later writes keep the
// original slot). A nil val stores Null. No-op on non-map variants;
// panics on the shared EmptyMap.
func (v *Value) Put(key string, val *Value) {
	if v == nil || v.kind != KindMap {
		return
	}
	if v.frozen {
		panic("jsonkit: Put on read-only value")
	}
	if val == nil {
		val = Null
	}
	if v.obj == nil {
		v.obj = map[string]*Value{}
	}
	if _, exists := v.obj[key]; !exists {
		// only keep tracking while the order list covers every key;
		// maps adopted via OfMap stay untracked
		if len(v.order) == len(v.obj) {
			v.order = append(v.order, key)
		}
	}
	v.obj[key] = val
}

// Add appends an item to an Array value. A nil item is a silent no-op
// (the builder-level skip); an explicit Null is appended. No-op on
// non-array variants; panics on the shared EmptyArray.
func (v *Value) Add(item *Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	if v.frozen {
		panic("jsonkit: Add on read-only value")
	}
	if item == nil {
		return
	}
	v.arr = append(v.arr, item)
}

// Remove deletes a key from a Map value; no-op on other variants and on
// missing keys.
func (v *Value) Remove(key string) {
	if v == nil || v.kind != KindMap {
		return
	}
	if _, ok := v.obj[key]; !ok {
		return
	}
	if v.frozen {
		panic("jsonkit: Remove on read-only value")
	}
	delete(v.obj, key)
	for i, k := range v.order {
		if k == key {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Size is the entry/element count for containers, 0 for Null, and 1 for
// every other variant.
func (v *Value) Size() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindMap:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	default:
		return 1
	}
}

// IsEmpty reports a zero Size; for String it reports empty text.
func (v *Value) IsEmpty() bool {
	if v != nil && v.kind == KindString {
		return len(v.s) == 0
	}
	return v.Size() <= 0
}

// Equal reports variant-and-value structural equality. Numerically equal
// values of different variants are unequal. Floats compare by bits, so
// -0.0 differs from 0.0 and NaN equals NaN; Decimal compares coefficient
// and exponent (0.2 differs from 0.20); Map equality ignores key order.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindInt32, KindInt64:
		return v.i == o.i
	case KindFloat32, KindFloat64:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case KindDecimal:
		return v.dec.Exponent() == o.dec.Exponent() &&
			v.dec.Coefficient().Cmp(o.dec.Coefficient()) == 0
	case KindBigInt:
		return v.big.Cmp(o.big) == 0
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, ve := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

func (v *Value) serializationKeys() []string {
	if len(v.order) == len(v.obj) && len(v.order) > 0 {
		return v.order
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package jsonkit

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Valuer is implemented by anything that can render itself as a Value —
// request/response model objects, and the builders themselves, so
// builders compose as nested fields of a parent builder.
type Valuer interface {
	JSONValue() *Value
}

// JSONValue makes every Value its own Valuer.
func (v *Value) JSONValue() *Value { return v }

// MapBuilder assembles a Map value from heterogeneous native inputs,
// recording key order so serialization matches the Put call order.
type MapBuilder struct {
	jv *Value
}

func NewMapBuilder() *MapBuilder { return &MapBuilder{jv: NewMap()} }

// MapBuilderFrom wraps an existing Map value; any other variant starts a
// fresh map.
func MapBuilderFrom(v *Value) *MapBuilder {
	if v == nil || v.kind != KindMap {
		return NewMapBuilder()
	}
	return &MapBuilder{jv: v}
}

// Put converts o and stores it under key. Nil inputs, inputs converting
// to Null, and strings that trim to empty are skipped: no field is
// emitted.
func (b *MapBuilder) Put(key string, o any) *MapBuilder {
	if o == nil {
		return b
	}
	vv := ToValue(o)
	if vv == nil || vv.kind == KindNull {
		return b
	}
	b.jv.Put(key, vv)
	return b
}

func (b *MapBuilder) JSONValue() *Value { return b.jv }

func (b *MapBuilder) JSON() string { return b.jv.JSON() }

// ArrayBuilder assembles an Array value from heterogeneous native
// inputs.
type ArrayBuilder struct {
	jv *Value
}

func NewArrayBuilder() *ArrayBuilder { return &ArrayBuilder{jv: NewArray()} }

// Add converts o and appends it. Nil inputs and inputs converting to
// Null are skipped: no element is emitted.
func (b *ArrayBuilder) Add(o any) *ArrayBuilder {
	if o == nil {
		return b
	}
	vv := ToValue(o)
	if vv == nil || vv.kind == KindNull {
		return b
	}
	b.jv.Add(vv)
	return b
}

func (b *ArrayBuilder) JSONValue() *Value { return b.jv }

func (b *ArrayBuilder) JSON() string { return b.jv.JSON() }

// ToValue converts a native input to a Value. nil converts to Null.
// Strings are trimmed and a trimmed-empty string maps to Null, which the
// builders treat as the skip marker. Integer inputs take the 32-bit
// variant when the value fits, the 64-bit one otherwise; uint64 beyond
// int64 becomes BigInt. Maps, slices, and Valuers convert recursively;
// anything else goes through the FromAny bridge and, failing that,
// renders as its trimmed string form.
func ToValue(o any) *Value {
	switch t := o.(type) {
	case nil:
		return Null
	case *Value:
		if t == nil {
			return Null
		}
		return t
	case Valuer:
		if jv := t.JSONValue(); jv != nil {
			return jv
		}
		return Null
	case string:
		return trimmedString(t)
	case bool:
		return OfBool(t)
	case int:
		return fittedInt(int64(t))
	case int8:
		return OfInt32(int32(t))
	case int16:
		return OfInt32(int32(t))
	case int32:
		return OfInt32(t)
	case int64:
		return OfInt64(t)
	case uint8:
		return OfInt32(int32(t))
	case uint16:
		return OfInt32(int32(t))
	case uint32:
		return fittedInt(int64(t))
	case uint:
		return fromUint64(uint64(t))
	case uint64:
		return fromUint64(t)
	case float32:
		return OfFloat32(t)
	case float64:
		return OfFloat64(t)
	case decimal.Decimal:
		return OfDecimal(t)
	case *big.Int:
		return OfBigInt(t)
	case map[string]*Value:
		return OfMap(t)
	case []*Value:
		return OfArray(t)
	case map[string]any:
		return FromStringMap(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return FromStringMap(m)
	case []any:
		return FromSlice(t)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return FromSlice(items)
	default:
		if v, err := FromAny(o); err == nil {
			return v
		}
		return trimmedString(fmt.Sprint(o))
	}
}

// FromSlice converts every element, keeping explicit Null placeholders
// (the converse of the builders' skip behavior).
func FromSlice(items []any) *Value {
	a := NewArray()
	for _, it := range items {
		a.Add(ToValue(it))
	}
	return a
}

// FromStringMap converts every entry, keeping explicit Null values.
// Keys are recorded in sorted order since Go maps have none of their
// own, so output stays deterministic.
func FromStringMap(m map[string]any) *Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	mv := NewMap()
	for _, k := range keys {
		mv.Put(k, ToValue(m[k]))
	}
	return mv
}

func trimmedString(s string) *Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null
	}
	return OfString(s)
}

func fittedInt(i int64) *Value {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return OfInt32(int32(i))
	}
	return OfInt64(i)
}

func fromUint64(u uint64) *Value {
	if u <= math.MaxInt64 {
		return fittedInt(int64(u))
	}
	return OfBigInt(new(big.Int).SetUint64(u))
}

package jsonkit_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/reoring/jsonkit"
	"github.com/shopspring/decimal"
)

type endpoint struct {
	host string
	port int
}

func (e endpoint) JSONValue() *jsonkit.Value {
	return jsonkit.NewMapBuilder().
		Put("host", e.host).
		Put("port", e.port).
		JSONValue()
}

func TestMapBuilder(t *testing.T) {
	b := jsonkit.NewMapBuilder().
		Put("string", "Hello").
		Put("int", 1).
		Put("long", int64(math.MaxInt64)).
		Put("double", float64(1)).
		Put("float", float32(1)).
		Put("bd", decimal.RequireFromString("1.0")).
		Put("bi", big.NewInt(math.MaxInt64)).
		Put("bool", true).
		Put("map", map[string]any{"k": "v"}).
		Put("list", []any{1, 2}).
		Put("ep", endpoint{host: "h1", port: 4222}).
		Put("jv", jsonkit.EmptyMap).
		Put("null", nil).
		Put("jvNull", jsonkit.Null).
		Put("blank", "  ")

	v := b.JSONValue()
	if v.Size() != 12 {
		t.Fatalf("size = %d, want 12", v.Size())
	}
	kinds := map[string]jsonkit.Kind{
		"string": jsonkit.KindString,
		"int":    jsonkit.KindInt32,
		"long":   jsonkit.KindInt64,
		"double": jsonkit.KindFloat64,
		"float":  jsonkit.KindFloat32,
		"bd":     jsonkit.KindDecimal,
		"bi":     jsonkit.KindBigInt,
		"bool":   jsonkit.KindBool,
		"map":    jsonkit.KindMap,
		"list":   jsonkit.KindArray,
		"ep":     jsonkit.KindMap,
		"jv":     jsonkit.KindMap,
	}
	for k, want := range kinds {
		if got := v.Get(k).Kind(); got != want {
			t.Fatalf("%s: kind %d, want %d", k, got, want)
		}
	}
	for _, skipped := range []string{"null", "jvNull", "blank"} {
		if v.Get(skipped) != nil {
			t.Fatalf("%s: not skipped", skipped)
		}
	}

	if got, _ := jsonkit.ReadString(v, "string"); got != "Hello" {
		t.Fatalf("string = %q", got)
	}
	if ep := v.Get("ep"); jsonkit.ReadIntDefault(ep, "port", -1) != 4222 {
		t.Fatalf("nested valuer: %s", ep)
	}

	// wire text reparses cleanly
	re := jsonkit.MustParseString(b.JSON())
	if re.Size() != 12 {
		t.Fatalf("reparsed size = %d", re.Size())
	}
	// an integral float serializes with a fraction marker and comes back
	// in a fractional variant
	if re.Get("double").Kind() != jsonkit.KindDecimal {
		t.Fatalf("reparsed double kind = %d", re.Get("double").Kind())
	}
	if re.Get("bi").Kind() != jsonkit.KindInt64 {
		t.Fatalf("reparsed bi kind = %d", re.Get("bi").Kind())
	}
}

func TestBuilderInsertionOrder(t *testing.T) {
	got := jsonkit.NewMapBuilder().
		Put("z", 1).
		Put("a", "x").
		Put("m", true).
		JSON()
	if got != `{"z":1,"a":"x","m":true}` {
		t.Fatalf("json = %s", got)
	}
}

func TestMapBuilderFrom(t *testing.T) {
	base := jsonkit.MustParseString(`{"keep":1}`)
	v := jsonkit.MapBuilderFrom(base).Put("added", 2).JSONValue()
	if v != base || v.Size() != 2 {
		t.Fatalf("from existing: %s", v)
	}
	if jsonkit.MapBuilderFrom(jsonkit.OfString("s")).JSONValue().Kind() != jsonkit.KindMap {
		t.Fatal("non-map seed")
	}
}

func TestArrayBuilder(t *testing.T) {
	v := jsonkit.NewArrayBuilder().
		Add("one").
		Add(nil).
		Add(jsonkit.Null).
		Add("").
		Add(2).
		Add([]string{"a", "b"}).
		JSONValue()
	if v.Size() != 3 {
		t.Fatalf("size = %d, want 3", v.Size())
	}
	if got := v.JSON(); got != `["one",2,["a","b"]]` {
		t.Fatalf("json = %s", got)
	}
}

func TestToValueConversions(t *testing.T) {
	cases := []struct {
		in   any
		kind jsonkit.Kind
	}{
		{nil, jsonkit.KindNull},
		{(*jsonkit.Value)(nil), jsonkit.KindNull},
		{"  ", jsonkit.KindNull},
		{" x ", jsonkit.KindString},
		{int(7), jsonkit.KindInt32},
		{int(math.MaxInt64), jsonkit.KindInt64},
		{int8(7), jsonkit.KindInt32},
		{int16(7), jsonkit.KindInt32},
		{int32(7), jsonkit.KindInt32},
		{int64(7), jsonkit.KindInt64},
		{uint8(7), jsonkit.KindInt32},
		{uint16(7), jsonkit.KindInt32},
		{uint32(math.MaxUint32), jsonkit.KindInt64},
		{uint64(math.MaxUint64), jsonkit.KindBigInt},
		{uint64(7), jsonkit.KindInt32},
		{float32(1.5), jsonkit.KindFloat32},
		{float64(1.5), jsonkit.KindFloat64},
		{decimal.NewFromInt(5), jsonkit.KindDecimal},
		{big.NewInt(5), jsonkit.KindBigInt},
		{map[string]*jsonkit.Value{}, jsonkit.KindMap},
		{[]*jsonkit.Value{}, jsonkit.KindArray},
		{map[string]string{"a": "b"}, jsonkit.KindMap},
		{true, jsonkit.KindBool},
	}
	for _, tc := range cases {
		if got := jsonkit.ToValue(tc.in).Kind(); got != tc.kind {
			t.Fatalf("ToValue(%#v): kind %d, want %d", tc.in, got, tc.kind)
		}
	}

	// trimmed strings keep their interior
	if s, _ := jsonkit.ToValue(" x ").Str(); s != "x" {
		t.Fatalf("trimmed = %q", s)
	}
}

func TestFromSliceAndFromStringMap(t *testing.T) {
	// direct conversion keeps explicit nulls, unlike the builders
	a := jsonkit.FromSlice([]any{nil, "x"})
	if a.Size() != 2 || !jsonkit.Null.Equal(a.Items()[0]) {
		t.Fatalf("slice = %s", a)
	}

	m := jsonkit.FromStringMap(map[string]any{"b": 2, "a": 1, "n": nil})
	if m.Size() != 3 {
		t.Fatalf("map size = %d", m.Size())
	}
	if !jsonkit.Null.Equal(m.Get("n")) {
		t.Fatalf("null entry = %s", m.Get("n"))
	}
	// native maps convert with sorted keys so output is deterministic
	if got := m.JSON(); got != `{"a":1,"b":2,"n":null}` {
		t.Fatalf("json = %s", got)
	}
}

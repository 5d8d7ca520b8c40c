package jsonkit_test

import (
	"bytes"
	"encoding/base64"
	"math"
	"testing"
	"time"

	"github.com/reoring/jsonkit"
)

func readFixture() *jsonkit.Value {
	m := jsonkit.NewMap()
	m.Put("bool", jsonkit.True)
	m.Put("string", jsonkit.OfString("hello"))
	m.Put("empty", jsonkit.OfString(""))
	m.Put("int", jsonkit.OfInt32(math.MaxInt32))
	m.Put("long", jsonkit.OfInt64(math.MaxInt64))
	m.Put("date", jsonkit.OfString("2024-03-02T10:43:22.39Z"))
	m.Put("dur", jsonkit.OfNanos(4273))
	m.Put("b64", jsonkit.OfString(base64.StdEncoding.EncodeToString([]byte("hello"))))
	m.Put("strings", jsonkit.OfValues(jsonkit.OfString("s1"), jsonkit.OfString("s2")))
	m.Put("durs", jsonkit.OfValues(jsonkit.OfNanos(4273), jsonkit.OfNanos(7342)))
	return m
}

func TestReadValueAndObject(t *testing.T) {
	v := readFixture()
	if jsonkit.ReadValue(v, "string") == nil {
		t.Fatal("present key read as nil")
	}
	if jsonkit.ReadValue(v, "na") != nil {
		t.Fatal("absent key read as non-nil")
	}
	if jsonkit.ReadObject(v, "na") != jsonkit.EmptyMap {
		t.Fatal("absent object not EmptyMap")
	}
	if got := jsonkit.ReadArray(v, "strings"); len(got) != 2 {
		t.Fatalf("ReadArray = %v", got)
	}
	if got := jsonkit.ReadArray(v, "string"); len(got) != 0 {
		t.Fatalf("ReadArray on string = %v", got)
	}

	// reads tolerate every non-map receiver
	for _, recv := range []*jsonkit.Value{nil, jsonkit.Null, jsonkit.EmptyArray,
		jsonkit.OfInt32(1), jsonkit.OfString("s"), jsonkit.True} {
		if jsonkit.ReadValue(recv, "k") != nil {
			t.Fatalf("%s: ReadValue non-nil", recv)
		}
		if jsonkit.ReadObject(recv, "k") != jsonkit.EmptyMap {
			t.Fatalf("%s: ReadObject not EmptyMap", recv)
		}
		if got := jsonkit.ReadStringDefault(recv, "k", "dflt"); got != "dflt" {
			t.Fatalf("%s: ReadStringDefault = %q", recv, got)
		}
		if got := jsonkit.ReadIntDefault(recv, "k", -1); got != -1 {
			t.Fatalf("%s: ReadIntDefault = %d", recv, got)
		}
	}
}

func TestReadScalars(t *testing.T) {
	v := readFixture()

	if !jsonkit.ReadBool(v, "bool") {
		t.Fatal("bool")
	}
	if jsonkit.ReadBool(v, "string") {
		t.Fatal("bool from string")
	}
	if !jsonkit.ReadBoolDefault(v, "na", true) {
		t.Fatal("bool default")
	}

	if s, ok := jsonkit.ReadString(v, "string"); !ok || s != "hello" {
		t.Fatalf("string = %q, %v", s, ok)
	}
	if _, ok := jsonkit.ReadString(v, "int"); ok {
		t.Fatal("string from int")
	}
	if got := jsonkit.ReadStringDefault(v, "na", "dflt"); got != "dflt" {
		t.Fatalf("string default = %q", got)
	}
	if _, ok := jsonkit.ReadNonEmptyString(v, "empty"); ok {
		t.Fatal("empty string read as present")
	}
	if s, ok := jsonkit.ReadNonEmptyString(v, "string"); !ok || s != "hello" {
		t.Fatalf("non-empty = %q, %v", s, ok)
	}

	if i, ok := jsonkit.ReadInt(v, "int"); !ok || i != math.MaxInt32 {
		t.Fatalf("int = %d, %v", i, ok)
	}
	if _, ok := jsonkit.ReadInt(v, "long"); ok {
		t.Fatal("out-of-range long read as int")
	}
	if _, ok := jsonkit.ReadInt(v, "string"); ok {
		t.Fatal("int from string")
	}
	if l, ok := jsonkit.ReadInt64(v, "long"); !ok || l != math.MaxInt64 {
		t.Fatalf("long = %d, %v", l, ok)
	}
	// the narrower variant widens on a 64-bit read
	if l, ok := jsonkit.ReadInt64(v, "int"); !ok || l != math.MaxInt32 {
		t.Fatalf("widened = %d, %v", l, ok)
	}
	if got := jsonkit.ReadInt64Default(v, "na", -7); got != -7 {
		t.Fatalf("long default = %d", got)
	}

	want := time.Date(2024, 3, 2, 10, 43, 22, 390000000, time.UTC)
	if ts, ok := jsonkit.ReadTime(v, "date"); !ok || !ts.Equal(want) {
		t.Fatalf("date = %v, %v", ts, ok)
	}
	if _, ok := jsonkit.ReadTime(v, "string"); ok {
		t.Fatal("date from plain text")
	}
	if _, ok := jsonkit.ReadTime(v, "int"); ok {
		t.Fatal("date from int")
	}

	if d, ok := jsonkit.ReadNanos(v, "dur"); !ok || d != 4273 {
		t.Fatalf("dur = %v, %v", d, ok)
	}
	if got := jsonkit.ReadNanosDefault(v, "na", time.Second); got != time.Second {
		t.Fatalf("dur default = %v", got)
	}

	if got := jsonkit.ReadBytes(v, "string"); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("bytes = %q", got)
	}
	if got := jsonkit.ReadBase64(v, "b64"); !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("base64 = %q", got)
	}
	if got := jsonkit.ReadBase64(v, "string"); got != nil {
		t.Fatalf("invalid base64 = %q", got)
	}
}

func TestGetIntProjections(t *testing.T) {
	if i, ok := jsonkit.GetInt(jsonkit.OfInt64(5)); !ok || i != 5 {
		t.Fatalf("GetInt(Int64 5) = %d, %v", i, ok)
	}
	if _, ok := jsonkit.GetInt(jsonkit.OfInt64(math.MaxInt64)); ok {
		t.Fatal("GetInt beyond 32 bits")
	}
	if _, ok := jsonkit.GetInt(jsonkit.Null); ok {
		t.Fatal("GetInt on null")
	}
	if _, ok := jsonkit.GetInt(jsonkit.MustParseString("0.2")); ok {
		t.Fatal("GetInt on decimal")
	}
	if l, ok := jsonkit.GetInt64(jsonkit.OfInt32(3)); !ok || l != 3 {
		t.Fatalf("GetInt64(Int32 3) = %d, %v", l, ok)
	}
	if got := jsonkit.GetInt64Default(nil, 42); got != 42 {
		t.Fatalf("GetInt64Default = %d", got)
	}
}

func TestListReading(t *testing.T) {
	list := jsonkit.NewArray()
	list.Add(jsonkit.OfString("string1"))
	list.Add(jsonkit.OfString("  string2  "))
	list.Add(jsonkit.OfString(""))
	list.Add(jsonkit.True)
	list.Add(jsonkit.Null)
	list.Add(jsonkit.OfInt32(math.MaxInt32))
	list.Add(jsonkit.OfInt64(math.MaxInt64))
	root := jsonkit.NewMap()
	root.Put("list", list)

	strs := jsonkit.ReadStringList(root, "list")
	if len(strs) != 3 || strs[0] != "string1" || strs[1] != "  string2  " || strs[2] != "" {
		t.Fatalf("strings = %q", strs)
	}
	trimmed := jsonkit.ReadStringListIgnoreEmpty(root, "list")
	if len(trimmed) != 2 || trimmed[1] != "string2" {
		t.Fatalf("trimmed = %q", trimmed)
	}

	ints := jsonkit.ReadInt64List(root, "list")
	if len(ints) != 2 || ints[0] != math.MaxInt32 || ints[1] != math.MaxInt64 {
		t.Fatalf("ints = %v", ints)
	}
	durs := jsonkit.ReadNanosList(root, "list")
	if len(durs) != 2 || durs[0] != time.Duration(math.MaxInt32) {
		t.Fatalf("durs = %v", durs)
	}

	// absent and non-list keys read as an empty, non-nil list
	if got := jsonkit.ReadStringList(root, "na"); got == nil || len(got) != 0 {
		t.Fatalf("absent list = %v", got)
	}

	// the optional variants yield no list instead of an empty one
	noStrings := jsonkit.NewMap()
	noStrings.Put("list", jsonkit.OfValues(jsonkit.True, jsonkit.Null))
	if got := jsonkit.ReadOptionalStringList(noStrings, "list"); got != nil {
		t.Fatalf("optional strings = %v", got)
	}
	if got := jsonkit.ReadOptionalNanosList(noStrings, "list"); got != nil {
		t.Fatalf("optional durs = %v", got)
	}
	if got := jsonkit.ReadOptionalStringList(root, "na"); got != nil {
		t.Fatalf("optional absent = %v", got)
	}
	if got := jsonkit.ReadOptionalStringList(root, "list"); len(got) != 3 {
		t.Fatalf("optional present = %v", got)
	}
}

func TestReadStringMap(t *testing.T) {
	root := jsonkit.MustParseString(`{"map":{"a":"x","b":"y","n":1},"flat":"s","empty":{}}`)

	m := jsonkit.ReadStringMap(root, "map")
	if len(m) != 2 || m["a"] != "x" || m["b"] != "y" {
		t.Fatalf("map = %v", m)
	}
	if got := jsonkit.ReadStringMap(root, "na"); got != nil {
		t.Fatalf("absent = %v", got)
	}
	if got := jsonkit.ReadStringMap(root, "flat"); got != nil {
		t.Fatalf("non-object = %v", got)
	}
	if got := jsonkit.ReadStringMap(root, "empty"); got != nil {
		t.Fatalf("empty = %v", got)
	}
	// an object with no string entries reads as no map
	onlyInts := jsonkit.MustParseString(`{"map":{"n":1}}`)
	if got := jsonkit.ReadStringMap(onlyInts, "map"); got != nil {
		t.Fatalf("no string entries = %v", got)
	}
}

package jsonkit

import (
	"encoding/base64"
	"math"
	"strings"
	"time"
)

// The readers below never fail: absent keys, non-map receivers, and
// variant mismatches degrade to the documented defaults. Protocol
// payloads are versioned and may omit fields; robustness here is
// deliberate.

// Read supplies fn with the sub-value stored under key — nil when v is
// not a map or lacks the key — and returns fn's result.
func Read[T any](v *Value, key string, fn func(*Value) T) T {
	var sub *Value
	if v != nil && v.kind == KindMap {
		sub = v.obj[key]
	}
	return fn(sub)
}

// ReadValue returns the sub-value under key, or nil when absent.
func ReadValue(v *Value, key string) *Value {
	return Read(v, key, func(sub *Value) *Value { return sub })
}

// ReadObject returns the sub-value under key, or the shared EmptyMap
// when absent.
func ReadObject(v *Value, key string) *Value {
	return Read(v, key, func(sub *Value) *Value {
		if sub == nil {
			return EmptyMap
		}
		return sub
	})
}

// ReadArray returns the elements under key; empty for any other shape.
func ReadArray(v *Value, key string) []*Value {
	return Read(v, key, func(sub *Value) []*Value { return sub.Items() })
}

// ReadString reads a string field; absent or mistyped reports false.
func ReadString(v *Value, key string) (string, bool) {
	return ReadValue(v, key).Str()
}

// ReadStringDefault reads a string field, yielding dflt on absence or
// variant mismatch.
func ReadStringDefault(v *Value, key, dflt string) string {
	if s, ok := ReadString(v, key); ok {
		return s
	}
	return dflt
}

// ReadNonEmptyString is ReadString treating empty text as absent.
func ReadNonEmptyString(v *Value, key string) (string, bool) {
	s, ok := ReadString(v, key)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ReadBool reads a boolean field; absent or mistyped is false.
func ReadBool(v *Value, key string) bool {
	b, _ := ReadValue(v, key).Bool()
	return b
}

// ReadBoolDefault reads a boolean field with an explicit default.
func ReadBoolDefault(v *Value, key string, dflt bool) bool {
	if b, ok := ReadValue(v, key).Bool(); ok {
		return b
	}
	return dflt
}

// GetInt projects an Int32, or an Int64 whose value fits 32 bits. The
// number may have been stored as the wider variant; nothing else
// (Decimal included) satisfies an integer read.
func GetInt(v *Value) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case KindInt32:
		return int(v.i), true
	case KindInt64:
		if v.i >= math.MinInt32 && v.i <= math.MaxInt32 {
			return int(v.i), true
		}
	}
	return 0, false
}

// GetInt64 projects an Int64 or a widened Int32.
func GetInt64(v *Value) (int64, bool) {
	if v != nil && (v.kind == KindInt32 || v.kind == KindInt64) {
		return v.i, true
	}
	return 0, false
}

// GetInt64Default is GetInt64 with an explicit default.
func GetInt64Default(v *Value, dflt int64) int64 {
	if l, ok := GetInt64(v); ok {
		return l
	}
	return dflt
}

// ReadInt reads an integer field stored as either integer variant, when
// the value fits 32 bits.
func ReadInt(v *Value, key string) (int, bool) {
	return GetInt(ReadValue(v, key))
}

// ReadIntDefault is ReadInt with an explicit default.
func ReadIntDefault(v *Value, key string, dflt int) int {
	if i, ok := ReadInt(v, key); ok {
		return i
	}
	return dflt
}

// ReadInt64 reads an integer field stored as either integer variant.
func ReadInt64(v *Value, key string) (int64, bool) {
	return GetInt64(ReadValue(v, key))
}

// ReadInt64Default is ReadInt64 with an explicit default.
func ReadInt64Default(v *Value, key string, dflt int64) int64 {
	if l, ok := ReadInt64(v, key); ok {
		return l
	}
	return dflt
}

// ReadTime reads an RFC 3339 timestamp field; absent, mistyped, or
// malformed text reports false.
func ReadTime(v *Value, key string) (time.Time, bool) {
	s, ok := ReadString(v, key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ReadNanos reads an integer field as a nanosecond duration.
func ReadNanos(v *Value, key string) (time.Duration, bool) {
	l, ok := ReadInt64(v, key)
	if !ok {
		return 0, false
	}
	return time.Duration(l), true
}

// ReadNanosDefault is ReadNanos with an explicit default.
func ReadNanosDefault(v *Value, key string, dflt time.Duration) time.Duration {
	if d, ok := ReadNanos(v, key); ok {
		return d
	}
	return dflt
}

// ListOf applies fn to every element of an array value and collects the
// present results, silently dropping absent ones. Non-array input yields
// an empty list.
func ListOf[T any](v *Value, fn func(*Value) (T, bool)) []T {
	out := []T{}
	if v == nil || v.kind != KindArray {
		return out
	}
	for _, item := range v.arr {
		if t, ok := fn(item); ok {
			out = append(out, t)
		}
	}
	return out
}

// OptionalListOf is ListOf returning no list, rather than an empty one,
// when nothing projects.
func OptionalListOf[T any](v *Value, fn func(*Value) (T, bool)) []T {
	out := ListOf(v, fn)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ReadStringList collects the string elements under key.
func ReadStringList(v *Value, key string) []string {
	return Read(v, key, func(sub *Value) []string {
		return ListOf(sub, func(e *Value) (string, bool) { return e.Str() })
	})
}

// ReadStringListIgnoreEmpty collects trimmed, non-empty string elements.
func ReadStringListIgnoreEmpty(v *Value, key string) []string {
	return Read(v, key, func(sub *Value) []string {
		return ListOf(sub, func(e *Value) (string, bool) {
			s, ok := e.Str()
			if !ok {
				return "", false
			}
			s = strings.TrimSpace(s)
			return s, s != ""
		})
	})
}

// ReadOptionalStringList is ReadStringList yielding no list when the
// result would be empty.
func ReadOptionalStringList(v *Value, key string) []string {
	return Read(v, key, func(sub *Value) []string {
		return OptionalListOf(sub, func(e *Value) (string, bool) { return e.Str() })
	})
}

// ReadInt64List collects the integer elements under key.
func ReadInt64List(v *Value, key string) []int64 {
	return Read(v, key, func(sub *Value) []int64 {
		return ListOf(sub, GetInt64)
	})
}

// ReadNanosList collects the elements under key as nanosecond durations.
func ReadNanosList(v *Value, key string) []time.Duration {
	return Read(v, key, func(sub *Value) []time.Duration {
		return ListOf(sub, func(e *Value) (time.Duration, bool) {
			l, ok := GetInt64(e)
			return time.Duration(l), ok
		})
	})
}

// ReadOptionalNanosList is ReadNanosList yielding no list when the
// result would be empty.
func ReadOptionalNanosList(v *Value, key string) []time.Duration {
	out := ReadNanosList(v, key)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ReadBytes reads a string field as its raw UTF-8 bytes.
func ReadBytes(v *Value, key string) []byte {
	s, ok := ReadString(v, key)
	if !ok {
		return nil
	}
	return []byte(s)
}

// ReadBase64 reads a string field as standard-Base64-decoded bytes.
func ReadBase64(v *Value, key string) []byte {
	s, ok := ReadString(v, key)
	if !ok {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// ReadStringMap reads a nested object of string values; entries of other
// variants are dropped, and a result with no entries yields no map.
func ReadStringMap(v *Value, key string) map[string]string {
	o := ReadObject(v, key)
	m, ok := o.Map()
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, e := range m {
		if s, sok := e.Str(); sok {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

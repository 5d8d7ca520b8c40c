package jsonkit

import (
	"strconv"
	"strings"
)

// JSON returns the canonical rendering of the value. Map entries follow
// the tracked insertion order when one was recorded, sorted keys
// otherwise, so re-serialized output is byte-for-byte stable.
func (v *Value) JSON() string { return string(v.AppendJSON(nil)) }

// String renders the value as JSON text.
func (v *Value) String() string { return v.JSON() }

// MarshalJSON implements json.Marshaler with the canonical rendering.
func (v *Value) MarshalJSON() ([]byte, error) { return v.AppendJSON(nil), nil }

// FieldJSON renders the value as a `"key":value` object member.
func (v *Value) FieldJSON(key string) string {
	dst := append([]byte{'"'}, key...)
	dst = append(dst, '"', ':')
	return string(v.AppendJSON(dst))
}

// AppendJSON appends the canonical rendering to dst. A nil value renders
// as null.
func (v *Value) AppendJSON(dst []byte) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindString:
		dst = append(dst, '"')
		dst = appendEscaped(dst, v.s)
		return append(dst, '"')
	case KindInt32, KindInt64:
		return strconv.AppendInt(dst, v.i, 10)
	case KindFloat32:
		return appendFloat(dst, v.f, 32)
	case KindFloat64:
		return appendFloat(dst, v.f, 64)
	case KindDecimal:
		return v.appendDecimal(dst)
	case KindBigInt:
		return append(dst, v.big.String()...)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindMap:
		dst = append(dst, '{')
		for i, k := range v.serializationKeys() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = append(dst, '"')
			dst = appendEscaped(dst, k)
			dst = append(dst, '"', ':')
			dst = v.obj[k].AppendJSON(dst)
		}
		return append(dst, '}')
	}
	return dst
}

// appendFloat renders the shortest round-tripping decimal form, forcing a
// fraction marker onto integral values so the text stays in a floating
// variant when reparsed.
func appendFloat(dst []byte, f float64, bits int) []byte {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnNiI") {
		s += ".0"
	}
	return append(dst, s...)
}

// appendDecimal renders the source literal when the value came from the
// parser; otherwise exact decimal text, pinned with an explicit exponent
// when it would otherwise read back as an integer.
func (v *Value) appendDecimal(dst []byte) []byte {
	if v.s != "" {
		return append(dst, v.s...)
	}
	s := v.dec.String()
	if !strings.ContainsAny(s, ".eE") {
		s = v.dec.Coefficient().String() + "e" + strconv.Itoa(int(v.dec.Exponent()))
	}
	return append(dst, s...)
}

// EscapeString returns s with the wire escaping applied (no surrounding
// quotes): backslash, forward slash, quote, the short control escapes,
// \u00XX for remaining control characters and 0x7F; everything else,
// non-ASCII included, passes through untouched.
func EscapeString(s string) string { return string(appendEscaped(nil, s)) }

const hexDigits = "0123456789abcdef"

func appendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '/':
			dst = append(dst, '\\', '/')
		case '"':
			dst = append(dst, '\\', '"')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < 0x20 || c == 0x7f {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

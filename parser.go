package jsonkit

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Option configures parsing. The only recognized flag is KeepNulls.
type Option int

const (
	// KeepNulls retains object entries whose value is an explicit null.
	// Without it such entries are dropped; array elements keep explicit
	// nulls regardless.
	KeepNulls Option = 1 << iota
)

// Messages carried by parse failures. Both entry-point families apply
// the same grammar and produce the same text.
const (
	msgInvalidValue       = "Invalid value."
	msgInvalidStartIndex  = "Invalid start index."
	msgUnexpectedEnd      = "Unexpected end of data."
	msgMissingObjectClose = "Text must end with '}'"
	msgMissingKey         = "Expected a key."
	msgMissingColon       = "Expected a ':' after a key."
	msgDirectNesting      = "Cannot directly nest another Object or Array."
	msgBadObjectSeparator = "Expected a ',' or '}'."
	msgBadArraySeparator  = "Expected a ',' or ']'."
	msgUnterminatedString = "Unterminated string."
	msgIllegalEscape      = "Illegal escape."
)

// Parse converts UTF-8 text into a Value tree. Empty or whitespace-only
// input (nil included) yields Null. Parsing stops after the first
// complete top-level value; trailing bytes are ignored.
func Parse(data []byte, opts ...Option) (*Value, error) {
	return ParseAt(data, 0, opts...)
}

// ParseAt parses starting at the given byte offset, for values embedded
// after a non-JSON preamble such as a protocol verb token.
func ParseAt(data []byte, start int, opts ...Option) (*Value, error) {
	if start < 0 {
		return nil, &ParseError{Code: CodeInvalidStartIndex, Message: msgInvalidStartIndex, Offset: start}
	}
	p := &parser{buf: data, pos: start}
	for _, o := range opts {
		if o&KeepNulls != 0 {
			p.keepNulls = true
		}
	}
	return p.topValue()
}

// ParseString parses a string instead of a byte slice.
func ParseString(s string, opts ...Option) (*Value, error) {
	return ParseAt([]byte(s), 0, opts...)
}

// ParseStringAt parses a string starting at the given offset.
func ParseStringAt(s string, start int, opts ...Option) (*Value, error) {
	return ParseAt([]byte(s), start, opts...)
}

// MustParse is Parse for fail-fast callers; it panics with the same
// *ParseError Parse would return.
func MustParse(data []byte, opts ...Option) *Value {
	v, err := Parse(data, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustParseAt is ParseAt for fail-fast callers.
func MustParseAt(data []byte, start int, opts ...Option) *Value {
	v, err := ParseAt(data, start, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustParseString is ParseString for fail-fast callers.
func MustParseString(s string, opts ...Option) *Value {
	v, err := ParseString(s, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// MustParseStringAt is ParseStringAt for fail-fast callers.
func MustParseStringAt(s string, start int, opts ...Option) *Value {
	v, err := ParseStringAt(s, start, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// parser is a single-pass recursive-descent reader over buf. Recursion
// depth is bounded only by input nesting depth.
type parser struct {
	buf       []byte
	pos       int
	keepNulls bool
}

func (p *parser) fail(code, msg string) *ParseError {
	return &ParseError{Code: code, Message: msg, Offset: p.pos}
}

func (p *parser) failAt(code, msg string, at int) *ParseError {
	return &ParseError{Code: code, Message: msg, Offset: at}
}

func isWS(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func (p *parser) skipWS() {
	for p.pos < len(p.buf) && isWS(p.buf[p.pos]) {
		p.pos++
	}
}

func (p *parser) topValue() (*Value, error) {
	p.skipWS()
	if p.pos >= len(p.buf) {
		return Null, nil
	}
	return p.parseValue()
}

func (p *parser) parseValue() (*Value, error) {
	p.skipWS()
	if p.pos >= len(p.buf) {
		return nil, p.fail(CodeUnexpectedEnd, msgUnexpectedEnd)
	}
	c := p.buf[p.pos]
	switch {
	case c == '"':
		p.pos++
		s, err := p.parseStringBody()
		if err != nil {
			return nil, err
		}
		return OfString(s), nil
	case c == '{':
		p.pos++
		return p.parseObject()
	case c == '[':
		p.pos++
		return p.parseArray()
	case c == '-' || (c >= '0' && c <= '9'):
		at := p.pos
		return p.numberValue(p.token(), at)
	default:
		at := p.pos
		switch p.token() {
		case "true":
			return True, nil
		case "false":
			return False, nil
		case "null":
			return Null, nil
		}
		return nil, p.failAt(CodeInvalidValue, msgInvalidValue, at)
	}
}

// token collects a literal or number run up to the next structural
// delimiter, whitespace, or end of input.
func (p *parser) token() string {
	start := p.pos
	for p.pos < len(p.buf) {
		c := p.buf[p.pos]
		if c == ',' || c == ']' || c == '}' || isWS(c) {
			break
		}
		p.pos++
	}
	return string(p.buf[start:p.pos])
}

func (p *parser) parseObject() (*Value, error) {
	m := NewMap()
	for {
		p.skipWS()
		if p.pos >= len(p.buf) {
			return nil, p.fail(CodeMissingObjectClose, msgMissingObjectClose)
		}
		switch p.buf[p.pos] {
		case '}':
			p.pos++
			return m, nil
		case '{', '[':
			return nil, p.fail(CodeDirectNesting, msgDirectNesting)
		case '"':
			p.pos++
		default:
			return nil, p.fail(CodeMissingKey, msgMissingKey)
		}
		key, err := p.parseStringBody()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.pos >= len(p.buf) || p.buf[p.pos] != ':' {
			return nil, p.fail(CodeMissingColon, msgMissingColon)
		}
		p.pos++
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// duplicate keys resolve last-write-wins, keeping the slot of
		// the first occurrence in the serialization order
		if p.keepNulls || val.kind != KindNull {
			m.Put(key, val)
		}
		p.skipWS()
		if p.pos >= len(p.buf) {
			return nil, p.fail(CodeMissingObjectClose, msgMissingObjectClose)
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++ // one dangling comma before '}' is tolerated
		case '}':
			p.pos++
			return m, nil
		default:
			return nil, p.fail(CodeBadSeparator, msgBadObjectSeparator)
		}
	}
}

func (p *parser) parseArray() (*Value, error) {
	a := NewArray()
	for {
		p.skipWS()
		if p.pos >= len(p.buf) {
			return nil, p.fail(CodeUnexpectedEnd, msgUnexpectedEnd)
		}
		if p.buf[p.pos] == ']' {
			p.pos++
			return a, nil
		}
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		a.Add(item) // explicit nulls are always retained in arrays
		p.skipWS()
		if p.pos >= len(p.buf) {
			return nil, p.fail(CodeUnexpectedEnd, msgUnexpectedEnd)
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++ // one dangling comma before ']' is tolerated
		case ']':
			p.pos++
			return a, nil
		default:
			return nil, p.fail(CodeBadSeparator, msgBadArraySeparator)
		}
	}
}

// parseStringBody reads the remainder of a double-quoted string, the
// opening quote already consumed.
func (p *parser) parseStringBody() (string, error) {
	var sb strings.Builder
	for {
		if p.pos >= len(p.buf) {
			return "", p.fail(CodeUnterminatedString, msgUnterminatedString)
		}
		c := p.buf[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\n', '\r':
			return "", p.fail(CodeUnterminatedString, msgUnterminatedString)
		case '\\':
			p.pos++
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	if p.pos >= len(p.buf) {
		return p.fail(CodeIllegalEscape, msgIllegalEscape)
	}
	c := p.buf[p.pos]
	p.pos++
	switch c {
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'u':
		r, err := p.readHex4()
		if err != nil {
			return err
		}
		// combine UTF-16 surrogate pairs split across two \u escapes
		if utf16.IsSurrogate(r) && r < 0xDC00 &&
			p.pos+1 < len(p.buf) && p.buf[p.pos] == '\\' && p.buf[p.pos+1] == 'u' {
			p.pos += 2
			r2, err := p.readHex4()
			if err != nil {
				return err
			}
			if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
				r = dec
			} else {
				sb.WriteRune(r) // unpaired; each half degrades to U+FFFD
				r = r2
			}
		}
		sb.WriteRune(r)
	default:
		return p.fail(CodeIllegalEscape, msgIllegalEscape)
	}
	return nil
}

// readHex4 reads exactly four case-insensitive hex digits.
func (p *parser) readHex4() (rune, error) {
	if p.pos+4 > len(p.buf) {
		return 0, p.fail(CodeIllegalEscape, msgIllegalEscape)
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := p.buf[p.pos]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, p.fail(CodeIllegalEscape, msgIllegalEscape)
		}
		r = r<<4 | rune(d)
		p.pos++
	}
	return r, nil
}

// numberValue classifies an unquoted token into the exact numeric
// variant the literal calls for:
//
//  1. plain integer fitting signed 32 bits    -> Int32
//  2. plain integer fitting signed 64 bits    -> Int64
//  3. f/F/d/D suffix or 0x hex-float syntax   -> Float32/Float64
//  4. fraction or exponent, no suffix         -> Decimal (exact literal)
//  5. plain integer beyond signed 64 bits     -> BigInt
//
// Negative-zero literals ("-0", "-0.0") become Float64 so the sign
// survives. NaN/Infinity, redundant leading zeros, a lone '-', and any
// other malformed literal fail.
func (p *parser) numberValue(tok string, at int) (*Value, error) {
	inv := p.failAt(CodeInvalidValue, msgInvalidValue, at)
	if tok == "" || tok == "-" {
		return nil, inv
	}
	neg := tok[0] == '-'
	rest := tok
	if neg {
		rest = tok[1:]
		if rest == "" {
			return nil, inv
		}
	}

	// hex floats go to the platform float parser whole; 0x without a
	// binary exponent is rejected there
	if len(rest) > 1 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, inv
		}
		return OfFloat64(f), nil
	}

	// explicit width suffix
	if last := tok[len(tok)-1]; last == 'f' || last == 'F' || last == 'd' || last == 'D' {
		base := tok[:len(tok)-1]
		if base == "" || base == "-" {
			return nil, inv
		}
		bits := 64
		if last == 'f' || last == 'F' {
			bits = 32
		}
		f, err := strconv.ParseFloat(base, bits)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, inv
		}
		if bits == 32 {
			return OfFloat32(float32(f)), nil
		}
		return OfFloat64(f), nil
	}

	// fraction or exponent present
	if strings.ContainsAny(tok, ".eE") || tok == "-0" {
		d, err := decimal.NewFromString(tok)
		if err != nil {
			// exponents beyond exact decimal range fall back to the
			// platform float parser
			f, ferr := strconv.ParseFloat(tok, 64)
			if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, inv
			}
			return OfFloat64(f), nil
		}
		if neg && d.IsZero() {
			return OfFloat64(math.Copysign(0, -1)), nil
		}
		return &Value{kind: KindDecimal, dec: d, s: tok}, nil
	}

	// plain integer; redundant leading zeros are illegal
	if rest[0] == '0' && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9' {
		return nil, inv
	}
	i, err := strconv.ParseInt(tok, 10, 64)
	if err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return OfInt32(int32(i)), nil
		}
		return OfInt64(i), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		bi, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			return nil, inv
		}
		return OfBigInt(bi), nil
	}
	return nil, inv
}

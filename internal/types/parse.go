package types

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ParseError reports a malformed type string.
type ParseError struct {
	Offset  int // Byte offset into the source (0-based)
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// scalarNames maps predeclared scalar spellings to their descriptors.
// i64, u64 and f64 are not WGSL but appear in the IR of other front ends.
var scalarNames = map[string]Scalar{
	"bool": Bool,
	"i32":  I32,
	"u32":  U32,
	"i64":  I64,
	"u64":  U64,
	"f16":  F16,
	"f32":  F32,
	"f64":  F64,
}

// aliasSuffixes maps the suffix of predeclared aliases (vec3f, mat2x2h) to
// their element type.
var aliasSuffixes = map[byte]Scalar{
	'f': F32,
	'h': F16,
	'i': I32,
	'u': U32,
}

// Parse parses a WGSL type spelling such as "f32", "vec3<f32>", "vec3f",
// "mat4x2<f16>" or "array<mat3x3f, 4>".
//
// Matrix element types are not restricted to floats, so shapes that WGSL
// itself rejects (mat2x2<i32>) can still be described.
func Parse(src string) (Inner, error) {
	p := &parser{source: src}
	t, err := p.parseType()
	if err == nil {
		p.skipSpace()
		if p.pos < len(p.source) {
			err = p.errorf("unexpected %q after type", p.source[p.pos:])
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing type %q", src)
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level tables.
func MustParse(src string) Inner {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	source string
	pos    int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.source) {
		switch p.source[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) match(ch byte) bool {
	p.skipSpace()
	if p.pos < len(p.source) && p.source[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(ch byte) error {
	if !p.match(ch) {
		if p.pos >= len(p.source) {
			return p.errorf("expected %q, got end of input", ch)
		}
		return p.errorf("expected %q, got %q", ch, p.source[p.pos])
	}
	return nil
}

func (p *parser) scanIdent() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.source) {
		ch := p.source[p.pos]
		if isIdentStart(ch) || (p.pos > start && isDigit(ch)) {
			p.pos++
			continue
		}
		break
	}
	return p.source[start:p.pos]
}

func (p *parser) parseType() (Inner, error) {
	start := p.pos
	name := p.scanIdent()
	if name == "" {
		if p.pos >= len(p.source) {
			return nil, p.errorf("expected type, got end of input")
		}
		return nil, p.errorf("expected type, got %q", p.source[p.pos])
	}

	if s, ok := scalarNames[name]; ok {
		return s, nil
	}

	p.skipSpace()
	templated := p.pos < len(p.source) && p.source[p.pos] == '<'

	switch {
	case len(name) >= 4 && name[:3] == "vec":
		size, ok := VectorSizeFrom(int(name[3]) - '0')
		if !ok {
			break
		}
		if len(name) == 5 && !templated {
			if elem, ok := aliasSuffixes[name[4]]; ok {
				return Vector{Size: size, Scalar: elem}, nil
			}
		}
		if len(name) != 4 || !templated {
			break
		}
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return Vector{Size: size, Scalar: elem}, nil

	case len(name) >= 6 && name[:3] == "mat" && name[4] == 'x':
		cols, okC := VectorSizeFrom(int(name[3]) - '0')
		rows, okR := VectorSizeFrom(int(name[5]) - '0')
		if !okC || !okR {
			break
		}
		if len(name) == 7 && !templated {
			elem, ok := aliasSuffixes[name[6]]
			if ok && elem.IsFloat() {
				return Matrix{Columns: cols, Rows: rows, Scalar: elem}, nil
			}
		}
		if len(name) != 6 || !templated {
			break
		}
		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return Matrix{Columns: cols, Rows: rows, Scalar: elem}, nil

	case name == "array" && templated:
		return p.parseArray()
	}

	p.pos = start
	p.skipSpace()
	return nil, p.errorf("unknown type %q", name)
}

// parseElement parses "<scalar>".
func (p *parser) parseElement() (Scalar, error) {
	if err := p.expect('<'); err != nil {
		return Scalar{}, err
	}
	p.skipSpace()
	at := p.pos
	t, err := p.parseType()
	if err != nil {
		return Scalar{}, err
	}
	s, ok := t.(Scalar)
	if !ok {
		p.pos = at
		return Scalar{}, p.errorf("expected scalar element type, got %s", t)
	}
	if err := p.expect('>'); err != nil {
		return Scalar{}, err
	}
	return s, nil
}

// parseArray parses "<T>" or "<T, N>" after the array keyword.
func (p *parser) parseArray() (Inner, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	base, err := p.parseType()
	if err != nil {
		return nil, err
	}
	count := 0
	if p.match(',') {
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.source) && isDigit(p.source[p.pos]) {
			p.pos++
		}
		digits := p.source[start:p.pos]
		// Integer literal suffixes are allowed, as in array<f32, 4u>.
		if p.pos < len(p.source) && (p.source[p.pos] == 'u' || p.source[p.pos] == 'i') {
			p.pos++
		}
		n, convErr := strconv.Atoi(digits)
		if convErr != nil || n <= 0 {
			p.pos = start
			return nil, p.errorf("expected positive array count")
		}
		count = n
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return Array{Base: base, Count: count}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

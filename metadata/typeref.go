package metadata

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wippyai/msgpack-codegen/errors"
)

// TypeRef is a parsed type reference such as Ns.Dictionary<string, Ns.Foo[]>?.
// Suffixes apply left to right: 0 is the nullable wrapper, n >= 1 an array
// of rank n. An open reference such as Ns.Box<,> has no Args and Unbound
// set to its arity; it names the generic definition itself.
type TypeRef struct {
	Name     string
	Args     []*TypeRef
	Unbound  int
	Suffixes []int
}

// String renders the reference back in canonical form.
func (r *TypeRef) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Args) > 0 {
		b.WriteByte('<')
		for i, a := range r.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	if r.Unbound > 0 {
		b.WriteByte('<')
		b.WriteString(strings.Repeat(",", r.Unbound-1))
		b.WriteByte('>')
	}
	for _, s := range r.Suffixes {
		if s == 0 {
			b.WriteByte('?')
			continue
		}
		b.WriteByte('[')
		b.WriteString(strings.Repeat(",", s-1))
		b.WriteByte(']')
	}
	return b.String()
}

type tokenType int

const (
	tokIdent tokenType = iota
	tokLAngle
	tokRAngle
	tokComma
	tokLBracket
	tokRBracket
	tokQuestion
	tokEOF
)

func (t tokenType) String() string {
	switch t {
	case tokIdent:
		return "identifier"
	case tokLAngle:
		return "'<'"
	case tokRAngle:
		return "'>'"
	case tokComma:
		return "','"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokQuestion:
		return "'?'"
	case tokEOF:
		return "end of input"
	}
	return "unknown"
}

type token struct {
	value string
	typ   tokenType
	pos   int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			continue
		}

		switch r {
		case '<':
			tokens = append(tokens, token{"<", tokLAngle, i})
			continue
		case '>':
			tokens = append(tokens, token{">", tokRAngle, i})
			continue
		case ',':
			tokens = append(tokens, token{",", tokComma, i})
			continue
		case '[':
			tokens = append(tokens, token{"[", tokLBracket, i})
			continue
		case ']':
			tokens = append(tokens, token{"]", tokRBracket, i})
			continue
		case '?':
			tokens = append(tokens, token{"?", tokQuestion, i})
			continue
		}

		if !isIdentStart(r) {
			return nil, fmt.Errorf("unexpected character %q at %d", r, i)
		}
		start := i
		for i+1 < len(runes) && isIdentPart(runes[i+1]) {
			i++
		}
		tokens = append(tokens, token{string(runes[start : i+1]), tokIdent, start})
	}

	tokens = append(tokens, token{"", tokEOF, len(runes)})
	return tokens, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || r == ':' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type refParser struct {
	tokens []token
	pos    int
}

func (p *refParser) peek() token {
	return p.tokens[p.pos]
}

func (p *refParser) next() token {
	t := p.tokens[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *refParser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, fmt.Errorf("expected %s at %d, got %s", typ, t.pos, t.typ)
	}
	return t, nil
}

// ParseTypeRef parses a type reference string. A leading global:: prefix
// on any name is accepted and dropped.
func ParseTypeRef(s string) (*TypeRef, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(s).Cause(err).Detail("type reference %q", s).Build()
	}
	p := &refParser{tokens: tokens}
	ref, err := p.parseRef()
	if err == nil && p.peek().typ != tokEOF {
		err = fmt.Errorf("trailing %s at %d", p.peek().typ, p.peek().pos)
	}
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(s).Cause(err).Detail("type reference %q", s).Build()
	}
	return ref, nil
}

func (p *refParser) parseRef() (*TypeRef, error) {
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	ref := &TypeRef{Name: strings.TrimPrefix(name.value, "global::")}
	if strings.Contains(ref.Name, ":") {
		return nil, fmt.Errorf("invalid name %q at %d", name.value, name.pos)
	}

	if p.peek().typ == tokLAngle {
		p.next()
		if t := p.peek().typ; t == tokRAngle || t == tokComma {
			ref.Unbound = 1
			for p.peek().typ == tokComma {
				p.next()
				ref.Unbound++
			}
			if _, err := p.expect(tokRAngle); err != nil {
				return nil, err
			}
			return ref, nil
		}
		for {
			arg, err := p.parseRef()
			if err != nil {
				return nil, err
			}
			ref.Args = append(ref.Args, arg)
			if p.peek().typ == tokComma {
				p.next()
				continue
			}
			if _, err := p.expect(tokRAngle); err != nil {
				return nil, err
			}
			break
		}
	}

	for {
		switch p.peek().typ {
		case tokQuestion:
			p.next()
			ref.Suffixes = append(ref.Suffixes, 0)
		case tokLBracket:
			p.next()
			rank := 1
			for p.peek().typ == tokComma {
				p.next()
				rank++
			}
			if _, err := p.expect(tokRBracket); err != nil {
				return nil, err
			}
			ref.Suffixes = append(ref.Suffixes, rank)
		default:
			return ref, nil
		}
	}
}

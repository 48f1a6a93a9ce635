package metadata

import (
	"strconv"
	"strings"
)

// renderStyle selects how a type name is written. The styles mirror the
// display formats consumed by the MessagePack code emitter.
type renderStyle struct {
	global         bool
	keywords       bool
	namespace      bool
	containing     bool
	arguments      bool
	expandNullable bool
}

var (
	displayStyle = renderStyle{keywords: true, namespace: true, containing: true, arguments: true}
	fullStyle    = renderStyle{global: true, keywords: true, namespace: true, containing: true, arguments: true}
	shortStyle   = renderStyle{containing: true}
	minimalStyle = renderStyle{arguments: true, expandNullable: true}
)

// String returns the display form: keywords for special types, namespace
// qualified, no global prefix, e.g. System.Collections.Generic.List<int>.
func (t *Type) String() string {
	var b strings.Builder
	t.render(&b, displayStyle)
	return b.String()
}

// FullName returns the fully-qualified form used as type identity, e.g.
// global::System.Collections.Generic.List<global::Sample.Foo>.
func (t *Type) FullName() string {
	var b strings.Builder
	t.render(&b, fullStyle)
	return b.String()
}

// ShortName returns the name with its containing types and no namespace or
// type arguments, e.g. Outer.Inner.
func (t *Type) ShortName() string {
	var b strings.Builder
	t.render(&b, shortStyle)
	return b.String()
}

// MinimalName returns the bare name with type arguments and an expanded
// nullable wrapper, e.g. Nullable<Int32> or List<Foo>.
func (t *Type) MinimalName() string {
	var b strings.Builder
	t.render(&b, minimalStyle)
	return b.String()
}

// UnboundSignature returns the shape key of a generic type: the unbound
// definition with empty argument slots, e.g.
// System.Collections.Generic.Dictionary<,>. The nullable wrapper is T?.
// Non-generic types return their display form.
func (t *Type) UnboundSignature() string {
	if t.IsNullable() {
		return "T?"
	}
	def := t.OriginalDefinition()
	if len(def.TypeParameters) == 0 {
		return t.String()
	}
	var b strings.Builder
	def.renderQualifier(&b, displayStyle)
	b.WriteString(def.Name)
	b.WriteByte('<')
	b.WriteString(strings.Repeat(",", len(def.TypeParameters)-1))
	b.WriteByte('>')
	return b.String()
}

// MetadataName returns the lookup key of a named type definition, e.g.
// System.Collections.Generic.List`1 or Sample.Outer+Inner.
func (t *Type) MetadataName() string {
	def := t.OriginalDefinition()
	var b strings.Builder
	if def.Namespace != "" {
		b.WriteString(def.Namespace)
		b.WriteByte('.')
	}
	writeMetadataChain(&b, def)
	return b.String()
}

func writeMetadataChain(b *strings.Builder, t *Type) {
	if t.Containing != nil {
		writeMetadataChain(b, t.Containing)
		b.WriteByte('+')
	}
	b.WriteString(t.Name)
	if n := len(t.TypeParameters); n > 0 {
		b.WriteByte('`')
		b.WriteString(strconv.Itoa(n))
	}
}

func (t *Type) render(b *strings.Builder, s renderStyle) {
	switch t.Kind {
	case KindTypeParameter:
		b.WriteString(t.Name)
		return
	case KindArray:
		t.Element.render(b, s)
		b.WriteByte('[')
		if t.Rank > 1 {
			b.WriteString(strings.Repeat(",", t.Rank-1))
		}
		b.WriteByte(']')
		return
	}

	if t.IsNullable() && !s.expandNullable {
		t.TypeArguments[0].render(b, s)
		b.WriteByte('?')
		return
	}

	if s.keywords && t.Keyword != "" {
		b.WriteString(t.Keyword)
		return
	}

	if s.global {
		b.WriteString("global::")
	}
	t.renderQualifier(b, s)
	b.WriteString(t.Name)

	if !s.arguments {
		return
	}
	if args := t.Args(); len(args) > 0 {
		b.WriteByte('<')
		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.render(b, s)
		}
		b.WriteByte('>')
	}
}

func (t *Type) renderQualifier(b *strings.Builder, s renderStyle) {
	def := t.OriginalDefinition()
	if s.namespace && def.Namespace != "" {
		b.WriteString(def.Namespace)
		b.WriteByte('.')
	}
	if !s.containing {
		return
	}
	var chain []*Type
	for c := def.Containing; c != nil; c = c.Containing {
		chain = append(chain, c)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		b.WriteString(c.Name)
		if s.arguments && len(c.TypeParameters) > 0 {
			b.WriteByte('<')
			for j, p := range c.TypeParameters {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.Name)
			}
			b.WriteByte('>')
		}
		b.WriteByte('.')
	}
}

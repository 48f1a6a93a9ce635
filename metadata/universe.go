package metadata

import (
	"strconv"

	"github.com/wippyai/msgpack-codegen/errors"
)

// Compilation is the read-only view of a type universe that the collector
// walks.
type Compilation interface {
	// TypeByMetadataName returns the named type definition with the given
	// metadata name (Namespace.Outer+Inner`1), or nil.
	TypeByMetadataName(name string) *Type

	// NamedTypes returns every type declared in the current compilation
	// unit, nested types included, in declaration order.
	NamedTypes() []*Type
}

// Universe is an in-memory Compilation. Constructed generics, arrays and
// nullable wrappers are interned so equal instantiations share a pointer.
type Universe struct {
	declared   []*Type
	byName     map[string]*Type
	byMetadata map[string]*Type
	byKeyword  map[string]*Type
	interned   map[string]*Type
	imported   map[string]bool
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		byName:     make(map[string]*Type),
		byMetadata: make(map[string]*Type),
		byKeyword:  make(map[string]*Type),
		interned:   make(map[string]*Type),
		imported:   make(map[string]bool),
	}
}

var _ Compilation = (*Universe)(nil)

// TypeByMetadataName implements Compilation.
func (u *Universe) TypeByMetadataName(name string) *Type {
	return u.byMetadata[name]
}

// NamedTypes implements Compilation. Externally declared types are omitted.
func (u *Universe) NamedTypes() []*Type {
	out := make([]*Type, 0, len(u.declared))
	for _, t := range u.declared {
		if !t.External {
			out = append(out, t)
		}
	}
	return out
}

// AllTypes returns every declared named type, external ones included.
func (u *Universe) AllTypes() []*Type {
	return append([]*Type(nil), u.declared...)
}

// Declare adds a named type definition. Containing must already be set for
// nested types.
func (u *Universe) Declare(t *Type) error {
	key := lookupKey(t)
	if _, exists := u.byName[key]; exists {
		return errors.New(errors.PhaseLoad, errors.KindDuplicate).
			Type(t.String()).Detail("type declared twice").Build()
	}
	u.byName[key] = t
	u.byMetadata[t.MetadataName()] = t
	if t.Keyword != "" {
		u.byKeyword[t.Keyword] = t
	}
	u.declared = append(u.declared, t)
	return nil
}

// Lookup returns the named type definition with the given dotted name and
// generic arity, or nil. Keywords resolve to their special types.
func (u *Universe) Lookup(name string, arity int) *Type {
	if arity == 0 {
		if t, ok := u.byKeyword[name]; ok {
			return t
		}
		return u.byName[name]
	}
	return u.byName[name+"`"+strconv.Itoa(arity)]
}

// Construct returns the generic instantiation def<args...>.
func (u *Universe) Construct(def *Type, args ...*Type) (*Type, error) {
	if !def.IsGenericDefinition() {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(def.String()).Detail("not a generic definition").Build()
	}
	if len(args) != len(def.TypeParameters) {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(def.String()).
			Detail("expects %d type arguments, got %d", len(def.TypeParameters), len(args)).
			Build()
	}

	t := &Type{
		Name:          def.Name,
		Namespace:     def.Namespace,
		Containing:    def.Containing,
		Kind:          def.Kind,
		Access:        def.Access,
		Abstract:      def.Abstract,
		External:      def.External,
		TypeArguments: args,
		Definition:    def,
		Base:          def.Base,
		Interfaces:    def.Interfaces,
		Attributes:    def.Attributes,
	}
	return u.intern(t), nil
}

// Nullable returns System.Nullable<t>. The wrapper must be declared and t
// must be a non-nullable value type.
func (u *Universe) Nullable(t *Type) (*Type, error) {
	if !t.IsValueType() || t.IsNullable() {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(t.String()).Detail("nullable wrapper requires a non-nullable value type").Build()
	}
	def := u.byMetadata["System.Nullable`1"]
	if def == nil {
		return nil, errors.NotFound(errors.PhaseLoad, nil, "type System.Nullable`1")
	}
	return u.Construct(def, t)
}

// ArrayOf returns the array of elem with the given rank.
func (u *Universe) ArrayOf(elem *Type, rank int) *Type {
	if rank < 1 {
		rank = 1
	}
	return u.intern(&Type{
		Kind:     KindArray,
		Element:  elem,
		Rank:     rank,
		External: true,
	})
}

func (u *Universe) intern(t *Type) *Type {
	key := t.FullName()
	if existing, ok := u.interned[key]; ok {
		return existing
	}
	u.interned[key] = t
	return t
}

// Resolve turns a parsed reference into a type. scope lists the type
// parameters visible at the reference site, innermost first.
func (u *Universe) Resolve(ref *TypeRef, scope []*Type) (*Type, error) {
	var t *Type
	if ref.Unbound > 0 {
		if t = u.Lookup(ref.Name, ref.Unbound); t == nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("generic type %s with %d type parameters not found", ref.Name, ref.Unbound).Build()
		}
		return t, nil
	}
	if len(ref.Args) == 0 {
		for _, p := range scope {
			if p.Name == ref.Name {
				t = p
				break
			}
		}
		if t == nil {
			t = u.Lookup(ref.Name, 0)
		}
		if t == nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("type %s not found", ref.Name).Build()
		}
	} else {
		def := u.Lookup(ref.Name, len(ref.Args))
		if def == nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("generic type %s with %d type arguments not found", ref.Name, len(ref.Args)).Build()
		}
		args := make([]*Type, len(ref.Args))
		for i, a := range ref.Args {
			arg, err := u.Resolve(a, scope)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		var err error
		if t, err = u.Construct(def, args...); err != nil {
			return nil, err
		}
	}

	for _, s := range ref.Suffixes {
		if s == 0 {
			nt, err := u.Nullable(t)
			if err != nil {
				return nil, err
			}
			t = nt
			continue
		}
		t = u.ArrayOf(t, s)
	}
	return t, nil
}

// Type parses and resolves a reference with no type parameters in scope.
func (u *Universe) Type(ref string) (*Type, error) {
	r, err := ParseTypeRef(ref)
	if err != nil {
		return nil, err
	}
	return u.Resolve(r, nil)
}

// MustType is Type for fixtures; it panics on error.
func (u *Universe) MustType(ref string) *Type {
	t, err := u.Type(ref)
	if err != nil {
		panic(err)
	}
	return t
}

func lookupKey(t *Type) string {
	key := t.Name
	for c := t.Containing; c != nil; c = c.Containing {
		key = c.Name + "." + key
	}
	if t.Namespace != "" {
		key = t.Namespace + "." + key
	}
	if n := len(t.TypeParameters); n > 0 {
		key += "`" + strconv.Itoa(n)
	}
	return key
}

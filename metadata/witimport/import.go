package witimport

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.bytecodealliance.org/wit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wippyai/msgpack-codegen/errors"
	"github.com/wippyai/msgpack-codegen/metadata"
)

// Options configures an import.
type Options struct {
	// Namespace prefixes every imported type. The owning interface name is
	// appended when the definition belongs to an interface.
	Namespace string
}

const maxTupleArity = 8

// Import maps WIT type definitions into a new universe. Named records,
// enums, flags and variants become declarations; lists, options, tuples and
// aliases are mapped structurally where they are referenced.
func Import(defs []*wit.TypeDef, opts Options) (*metadata.Universe, error) {
	u := metadata.NewUniverse()
	if err := u.Import("messagepack"); err != nil {
		return nil, err
	}
	im := &importer{
		u:        u,
		opts:     opts,
		declared: make(map[*wit.TypeDef]*metadata.Type),
		mapped:   make(map[*wit.TypeDef]*metadata.Type),
		title:    newCaser(),
	}
	if err := im.markers(); err != nil {
		return nil, err
	}

	for _, d := range defs {
		if err := im.declare(d); err != nil {
			return nil, err
		}
	}
	for _, p := range im.pending {
		if err := im.define(p); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// ImportResolve imports every type definition of a resolved WIT package
// graph.
func ImportResolve(r *wit.Resolve, opts Options) (*metadata.Universe, error) {
	return Import(r.TypeDefs, opts)
}

type pendingDef struct {
	def *wit.TypeDef
	t   *metadata.Type
}

type importer struct {
	u        *metadata.Universe
	opts     Options
	declared map[*wit.TypeDef]*metadata.Type
	mapped   map[*wit.TypeDef]*metadata.Type
	pending  []pendingDef
	title    cases.Caser

	objectAttr *metadata.Type
	keyAttr    *metadata.Type
	unionAttr  *metadata.Type
}

func (im *importer) markers() error {
	names := []struct {
		dst  **metadata.Type
		name string
	}{
		{&im.objectAttr, "MessagePack.MessagePackObjectAttribute"},
		{&im.keyAttr, "MessagePack.KeyAttribute"},
		{&im.unionAttr, "MessagePack.UnionAttribute"},
	}
	for _, n := range names {
		if *n.dst = im.u.TypeByMetadataName(n.name); *n.dst == nil {
			return errors.NotFound(errors.PhaseLoad, nil, "type "+n.name)
		}
	}
	return nil
}

func (im *importer) declare(d *wit.TypeDef) error {
	if d.Name == nil {
		return nil
	}
	name := *d.Name
	switch kind := d.Kind.(type) {
	case *wit.Record:
		t, err := im.newType(d, metadata.KindClass)
		if err != nil {
			return err
		}
		t.Attributes = []metadata.Attribute{{Class: im.objectAttr}}
		im.pending = append(im.pending, pendingDef{def: d, t: t})
	case *wit.Enum:
		t, err := im.newType(d, metadata.KindEnum)
		if err != nil {
			return err
		}
		t.Underlying = im.u.MustType(enumUnderlying(len(kind.Cases)))
	case *wit.Flags:
		underlying, ok := flagsUnderlying(len(kind.Flags))
		if !ok {
			return errors.New(errors.PhaseLoad, errors.KindUnsupported).
				Type(name).
				Detail("flags with %d members exceed 64 bits", len(kind.Flags)).
				Build()
		}
		t, err := im.newType(d, metadata.KindEnum)
		if err != nil {
			return err
		}
		t.Underlying = im.u.MustType(underlying)
	case *wit.Variant:
		t, err := im.newType(d, metadata.KindClass)
		if err != nil {
			return err
		}
		t.Abstract = true
		for i, c := range kind.Cases {
			sub := &metadata.Type{
				Name:       im.pascal(c.Name),
				Namespace:  t.Namespace,
				Containing: t,
				Kind:       metadata.KindClass,
				Access:     metadata.AccessPublic,
				Base:       t,
				Attributes: []metadata.Attribute{{Class: im.objectAttr}},
			}
			if err := im.u.Declare(sub); err != nil {
				return err
			}
			t.Attributes = append(t.Attributes, metadata.Attribute{Class: im.unionAttr, Args: []any{i, sub}})
		}
		im.pending = append(im.pending, pendingDef{def: d, t: t})
	case *wit.List, *wit.Option, *wit.Tuple:
		// mapped structurally where referenced
	case *wit.Result, *wit.Own, *wit.Borrow:
		return unsupported(name, kind)
	case wit.Type:
		// alias, resolved to its target where referenced
	default:
		return unsupported(name, kind)
	}
	return nil
}

func (im *importer) newType(d *wit.TypeDef, kind metadata.TypeKind) (*metadata.Type, error) {
	t := &metadata.Type{
		Name:      im.pascal(*d.Name),
		Namespace: im.namespace(d),
		Kind:      kind,
		Access:    metadata.AccessPublic,
	}
	if err := im.u.Declare(t); err != nil {
		return nil, err
	}
	im.declared[d] = t
	return t, nil
}

// define fills members once every named type is declared.
func (im *importer) define(p pendingDef) error {
	switch kind := p.def.Kind.(type) {
	case *wit.Record:
		ctor := &metadata.Constructor{Access: metadata.AccessPublic}
		for i, f := range kind.Fields {
			ft, err := im.typeOf(f.Type)
			if err != nil {
				return withMember(err, p.t, f.Name)
			}
			p.t.Properties = append(p.t.Properties, im.keyed(im.pascal(f.Name), ft, i))
			ctor.Parameters = append(ctor.Parameters, metadata.Parameter{Name: im.camel(f.Name), Type: ft})
		}
		p.t.Constructors = []*metadata.Constructor{ctor}
	case *wit.Variant:
		for i, c := range kind.Cases {
			sub := p.t.Attributes[i].Args[1].(*metadata.Type)
			ctor := &metadata.Constructor{Access: metadata.AccessPublic}
			if c.Type != nil {
				ct, err := im.typeOf(c.Type)
				if err != nil {
					return withMember(err, p.t, c.Name)
				}
				sub.Properties = []*metadata.Property{im.keyed("Value", ct, 0)}
				ctor.Parameters = []metadata.Parameter{{Name: "value", Type: ct}}
			}
			sub.Constructors = []*metadata.Constructor{ctor}
		}
	}
	return nil
}

func (im *importer) keyed(name string, t *metadata.Type, key int) *metadata.Property {
	return &metadata.Property{
		Name:       name,
		Type:       t,
		Getter:     &metadata.Accessor{Access: metadata.AccessPublic},
		Setter:     &metadata.Accessor{Access: metadata.AccessPublic},
		Attributes: []metadata.Attribute{{Class: im.keyAttr, Args: []any{key}}},
	}
}

// typeOf maps a WIT type reference to a universe type.
func (im *importer) typeOf(t wit.Type) (*metadata.Type, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return im.u.MustType("bool"), nil
	case wit.S8:
		return im.u.MustType("sbyte"), nil
	case wit.U8:
		return im.u.MustType("byte"), nil
	case wit.S16:
		return im.u.MustType("short"), nil
	case wit.U16:
		return im.u.MustType("ushort"), nil
	case wit.S32:
		return im.u.MustType("int"), nil
	case wit.U32, wit.Char:
		return im.u.MustType("uint"), nil
	case wit.S64:
		return im.u.MustType("long"), nil
	case wit.U64:
		return im.u.MustType("ulong"), nil
	case wit.F32:
		return im.u.MustType("float"), nil
	case wit.F64:
		return im.u.MustType("double"), nil
	case wit.String:
		return im.u.MustType("string"), nil
	case *wit.TypeDef:
		return im.typeDef(typ)
	}
	return nil, errors.Unsupported(errors.PhaseLoad, fmt.Sprintf("WIT type %T", t))
}

func (im *importer) typeDef(d *wit.TypeDef) (*metadata.Type, error) {
	if t, ok := im.declared[d]; ok {
		return t, nil
	}
	if t, ok := im.mapped[d]; ok {
		return t, nil
	}

	var (
		t   *metadata.Type
		err error
	)
	switch kind := d.Kind.(type) {
	case *wit.List:
		var elem *metadata.Type
		if elem, err = im.typeOf(kind.Type); err == nil {
			t = im.u.ArrayOf(elem, 1)
		}
	case *wit.Option:
		if t, err = im.typeOf(kind.Type); err == nil && t.IsValueType() && !t.IsNullable() {
			t, err = im.u.Nullable(t)
		}
	case *wit.Tuple:
		t, err = im.tuple(kind)
	case *wit.Record, *wit.Enum, *wit.Flags, *wit.Variant:
		err = errors.Unsupported(errors.PhaseLoad, "anonymous "+kindName(kind))
	case *wit.Result, *wit.Own, *wit.Borrow:
		err = unsupported(typeName(d), kind)
	case wit.Type:
		t, err = im.typeOf(kind)
	default:
		err = unsupported(typeName(d), kind)
	}
	if err != nil {
		return nil, err
	}
	im.mapped[d] = t
	return t, nil
}

func (im *importer) tuple(tup *wit.Tuple) (*metadata.Type, error) {
	n := len(tup.Types)
	if n == 0 || n > maxTupleArity {
		return nil, errors.Unsupported(errors.PhaseLoad, fmt.Sprintf("tuple of %d elements", n))
	}
	def := im.u.Lookup("System.ValueTuple", n)
	if def == nil {
		return nil, errors.NotFound(errors.PhaseLoad, nil, fmt.Sprintf("type System.ValueTuple`%d", n))
	}
	args := make([]*metadata.Type, n)
	for i, et := range tup.Types {
		a, err := im.typeOf(et)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	return im.u.Construct(def, args...)
}

func (im *importer) namespace(d *wit.TypeDef) string {
	parts := make([]string, 0, 2)
	if im.opts.Namespace != "" {
		parts = append(parts, im.opts.Namespace)
	}
	if iface, ok := d.Owner.(*wit.Interface); ok && iface.Name != nil {
		parts = append(parts, im.pascal(*iface.Name))
	}
	return strings.Join(parts, ".")
}

// pascal converts a kebab-case WIT identifier to PascalCase. Only the
// first rune of each segment changes case.
func (im *importer) pascal(name string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(name, "%"), "-") {
		if seg == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(seg)
		b.WriteString(im.title.String(seg[:size]))
		b.WriteString(seg[size:])
	}
	return b.String()
}

func (im *importer) camel(name string) string {
	p := im.pascal(name)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// enumUnderlying returns the smallest unsigned type holding n cases.
func enumUnderlying(n int) string {
	switch {
	case n <= 1<<8:
		return "byte"
	case n <= 1<<16:
		return "ushort"
	default:
		return "uint"
	}
}

// flagsUnderlying returns the smallest unsigned type with n bits.
func flagsUnderlying(n int) (string, bool) {
	switch {
	case n <= 8:
		return "byte", true
	case n <= 16:
		return "ushort", true
	case n <= 32:
		return "uint", true
	case n <= 64:
		return "ulong", true
	default:
		return "", false
	}
}

func newCaser() cases.Caser {
	return cases.Title(language.Und, cases.NoLower)
}

func typeName(d *wit.TypeDef) string {
	if d.Name != nil {
		return *d.Name
	}
	return ""
}

func kindName(k wit.TypeDefKind) string {
	name := fmt.Sprintf("%T", k)
	return strings.ToLower(name[strings.LastIndexByte(name, '.')+1:])
}

func unsupported(name string, k wit.TypeDefKind) *errors.Error {
	return errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Type(name).
		Detail("%s types have no MessagePack representation", kindName(k)).
		Build()
}

func withMember(err error, t *metadata.Type, member string) error {
	if e, ok := err.(*errors.Error); ok && e.Type == "" {
		e.Type = t.String()
		e.Member = member
	}
	return err
}

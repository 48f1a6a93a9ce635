package metadata

import (
	"embed"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgpack-codegen/errors"
)

// Format is the encoding of a universe document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk form of a universe.
type Document struct {
	Imports []string   `yaml:"imports,omitempty" json:"imports,omitempty"`
	Types   []TypeDecl `yaml:"types" json:"types"`
}

// TypeDecl declares one named type. Type references are strings in the
// syntax accepted by ParseTypeRef.
type TypeDecl struct {
	Name           string            `yaml:"name" json:"name"`
	Namespace      string            `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	Kind           string            `yaml:"kind,omitempty" json:"kind,omitempty"`
	Access         string            `yaml:"access,omitempty" json:"access,omitempty"`
	Keyword        string            `yaml:"keyword,omitempty" json:"keyword,omitempty"`
	Abstract       bool              `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	External       bool              `yaml:"external,omitempty" json:"external,omitempty"`
	TypeParameters []string          `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty"`
	Base           string            `yaml:"base,omitempty" json:"base,omitempty"`
	Interfaces     []string          `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Underlying     string            `yaml:"underlying,omitempty" json:"underlying,omitempty"`
	Attributes     []AttributeDecl   `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Fields         []FieldDecl       `yaml:"fields,omitempty" json:"fields,omitempty"`
	Properties     []PropertyDecl    `yaml:"properties,omitempty" json:"properties,omitempty"`
	Constructors   []ConstructorDecl `yaml:"constructors,omitempty" json:"constructors,omitempty"`
	Methods        []string          `yaml:"methods,omitempty" json:"methods,omitempty"`
	Nested         []TypeDecl        `yaml:"nested,omitempty" json:"nested,omitempty"`
}

// AttributeDecl is an applied marker. An argument is a scalar or a
// {type: Ref} mapping naming a type.
type AttributeDecl struct {
	Type string `yaml:"type" json:"type"`
	Args []any  `yaml:"args,omitempty" json:"args,omitempty"`
}

// FieldDecl declares a field.
type FieldDecl struct {
	Name       string          `yaml:"name" json:"name"`
	Type       string          `yaml:"type" json:"type"`
	Access     string          `yaml:"access,omitempty" json:"access,omitempty"`
	Static     bool            `yaml:"static,omitempty" json:"static,omitempty"`
	ReadOnly   bool            `yaml:"readonly,omitempty" json:"readonly,omitempty"`
	Implicit   bool            `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// PropertyDecl declares a property. Get and Set name the accessor
// visibility; an empty value means the accessor does not exist.
type PropertyDecl struct {
	Name       string          `yaml:"name" json:"name"`
	Type       string          `yaml:"type" json:"type"`
	Get        string          `yaml:"get,omitempty" json:"get,omitempty"`
	Set        string          `yaml:"set,omitempty" json:"set,omitempty"`
	Static     bool            `yaml:"static,omitempty" json:"static,omitempty"`
	Indexer    bool            `yaml:"indexer,omitempty" json:"indexer,omitempty"`
	Override   bool            `yaml:"override,omitempty" json:"override,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ConstructorDecl declares an instance constructor.
type ConstructorDecl struct {
	Access     string          `yaml:"access,omitempty" json:"access,omitempty"`
	Parameters []ParameterDecl `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Attributes []AttributeDecl `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ParameterDecl declares a constructor parameter.
type ParameterDecl struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

//go:embed prelude/*.yaml
var preludeFS embed.FS

// Load reads a universe document from path.
func Load(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, path)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse builds a new universe from a document.
func Parse(data []byte, format Format) (*Universe, error) {
	u := NewUniverse()
	if err := u.Load(data, format); err != nil {
		return nil, err
	}
	return u, nil
}

// Import loads a named prelude (system, messagepack, datacontract) once.
func (u *Universe) Import(name string) error {
	if u.imported[name] {
		return nil
	}
	data, err := preludeFS.ReadFile("prelude/" + name + ".yaml")
	if err != nil {
		return errors.NotFound(errors.PhaseLoad, []string{"imports"}, "prelude "+name)
	}
	u.imported[name] = true
	return u.Load(data, FormatYAML)
}

// Load decodes a document and adds its types to the universe. Types are
// declared before any reference is resolved, so declarations may refer to
// each other in any order.
func (u *Universe) Load(data []byte, format Format) error {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return errors.Unsupported(errors.PhaseLoad, "document format "+string(format))
	}
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decode "+string(format)+" document")
	}

	for _, name := range doc.Imports {
		if err := u.Import(name); err != nil {
			return err
		}
	}

	l := &loader{u: u}
	for i := range doc.Types {
		if err := l.declare(&doc.Types[i], doc.Types[i].Namespace, nil); err != nil {
			return err
		}
	}
	for _, p := range l.pending {
		if err := l.resolve(p.decl, p.t); err != nil {
			return err
		}
	}
	return nil
}

type pendingDecl struct {
	decl *TypeDecl
	t    *Type
}

type loader struct {
	u       *Universe
	pending []pendingDecl
}

func (l *loader) declare(d *TypeDecl, namespace string, containing *Type) error {
	path := []string{"types", d.Name}
	if d.Name == "" {
		return errors.InvalidData(errors.PhaseLoad, []string{"types"}, "type declaration without a name")
	}
	kind, ok := parseKind(d.Kind)
	if !ok {
		return errors.InvalidData(errors.PhaseLoad, path, "unknown kind "+d.Kind)
	}
	access, ok := parseAccess(d.Access, AccessPublic)
	if !ok {
		return errors.InvalidData(errors.PhaseLoad, path, "unknown access "+d.Access)
	}

	t := &Type{
		Name:       d.Name,
		Namespace:  namespace,
		Containing: containing,
		Kind:       kind,
		Keyword:    d.Keyword,
		Access:     access,
		Abstract:   d.Abstract,
		External:   d.External,
		Methods:    d.Methods,
	}
	for _, p := range d.TypeParameters {
		t.TypeParameters = append(t.TypeParameters, &Type{Name: p, Kind: KindTypeParameter})
	}
	if err := l.u.Declare(t); err != nil {
		return withPath(err, path)
	}
	l.pending = append(l.pending, pendingDecl{decl: d, t: t})

	for i := range d.Nested {
		n := &d.Nested[i]
		if !n.External && d.External {
			n.External = true
		}
		if err := l.declare(n, namespace, t); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) resolve(d *TypeDecl, t *Type) error {
	path := []string{"types", t.String()}
	var scope []*Type
	for c := t; c != nil; c = c.Containing {
		scope = append(scope, c.TypeParameters...)
	}

	ref := func(s string, sub ...string) (*Type, error) {
		r, err := ParseTypeRef(s)
		if err == nil {
			var rt *Type
			if rt, err = l.u.Resolve(r, scope); err == nil {
				return rt, nil
			}
		}
		return nil, withPath(err, append(append([]string(nil), path...), sub...))
	}

	var err error
	if d.Base != "" {
		if t.Base, err = ref(d.Base, "base"); err != nil {
			return err
		}
	}
	for _, s := range d.Interfaces {
		it, err := ref(s, "interfaces")
		if err != nil {
			return err
		}
		t.Interfaces = append(t.Interfaces, it)
	}
	if t.Kind == KindEnum {
		underlying := d.Underlying
		if underlying == "" {
			underlying = "int"
		}
		if t.Underlying, err = ref(underlying, "underlying"); err != nil {
			return err
		}
	}
	if t.Attributes, err = l.attributes(d.Attributes, scope, append(path, "attributes")); err != nil {
		return err
	}

	for _, fd := range d.Fields {
		fpath := append(append([]string(nil), path...), "fields", fd.Name)
		access, ok := parseAccess(fd.Access, AccessPublic)
		if !ok {
			return errors.InvalidData(errors.PhaseLoad, fpath, "unknown access "+fd.Access)
		}
		ft, err := ref(fd.Type, "fields", fd.Name)
		if err != nil {
			return err
		}
		attrs, err := l.attributes(fd.Attributes, scope, fpath)
		if err != nil {
			return err
		}
		t.Fields = append(t.Fields, &Field{
			Name:       fd.Name,
			Type:       ft,
			Access:     access,
			Static:     fd.Static,
			ReadOnly:   fd.ReadOnly,
			Implicit:   fd.Implicit,
			Attributes: attrs,
		})
	}

	for _, pd := range d.Properties {
		ppath := append(append([]string(nil), path...), "properties", pd.Name)
		pt, err := ref(pd.Type, "properties", pd.Name)
		if err != nil {
			return err
		}
		getter, err := accessor(pd.Get, ppath)
		if err != nil {
			return err
		}
		setter, err := accessor(pd.Set, ppath)
		if err != nil {
			return err
		}
		attrs, err := l.attributes(pd.Attributes, scope, ppath)
		if err != nil {
			return err
		}
		t.Properties = append(t.Properties, &Property{
			Name:       pd.Name,
			Type:       pt,
			Getter:     getter,
			Setter:     setter,
			Static:     pd.Static,
			Indexer:    pd.Indexer,
			Override:   pd.Override,
			Attributes: attrs,
		})
	}

	for _, cd := range d.Constructors {
		cpath := append(append([]string(nil), path...), "constructors")
		access, ok := parseAccess(cd.Access, AccessPublic)
		if !ok {
			return errors.InvalidData(errors.PhaseLoad, cpath, "unknown access "+cd.Access)
		}
		ctor := &Constructor{Access: access}
		for _, pd := range cd.Parameters {
			pt, err := ref(pd.Type, "constructors", pd.Name)
			if err != nil {
				return err
			}
			ctor.Parameters = append(ctor.Parameters, Parameter{Name: pd.Name, Type: pt})
		}
		if ctor.Attributes, err = l.attributes(cd.Attributes, scope, cpath); err != nil {
			return err
		}
		t.Constructors = append(t.Constructors, ctor)
	}
	if len(t.Constructors) == 0 && (t.Kind == KindClass || t.Kind == KindStruct) {
		t.Constructors = []*Constructor{implicitConstructor(t)}
	}
	return nil
}

// implicitConstructor is the parameterless constructor a compiler emits for
// a class or struct declaring none; abstract classes get a protected one.
func implicitConstructor(t *Type) *Constructor {
	access := AccessPublic
	if t.Abstract {
		access = AccessProtected
	}
	return &Constructor{Access: access}
}

func (l *loader) attributes(decls []AttributeDecl, scope []*Type, path []string) ([]Attribute, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	out := make([]Attribute, 0, len(decls))
	for _, d := range decls {
		r, err := ParseTypeRef(d.Type)
		if err != nil {
			return nil, withPath(err, path)
		}
		class, err := l.u.Resolve(r, scope)
		if err != nil {
			return nil, withPath(err, path)
		}
		attr := Attribute{Class: class}
		for _, raw := range d.Args {
			arg, err := l.argument(raw, scope, path)
			if err != nil {
				return nil, err
			}
			attr.Args = append(attr.Args, arg)
		}
		out = append(out, attr)
	}
	return out, nil
}

// argument normalizes a decoded attribute argument. JSON numbers arrive as
// float64 and YAML mappings as map[string]any.
func (l *loader) argument(raw any, scope []*Type, path []string) (any, error) {
	switch v := raw.(type) {
	case nil, string, bool:
		return v, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return nil, errors.InvalidData(errors.PhaseLoad, path, "attribute argument must be an integer")
		}
		return int(v), nil
	case map[string]any:
		name, ok := v["type"].(string)
		if !ok || len(v) != 1 {
			return nil, errors.InvalidData(errors.PhaseLoad, path, "attribute argument mapping must be {type: Ref}")
		}
		r, err := ParseTypeRef(name)
		if err != nil {
			return nil, withPath(err, path)
		}
		t, err := l.u.Resolve(r, scope)
		if err != nil {
			return nil, withPath(err, path)
		}
		return t, nil
	}
	return nil, errors.InvalidData(errors.PhaseLoad, path, "unsupported attribute argument")
}

func accessor(access string, path []string) (*Accessor, error) {
	if access == "" {
		return nil, nil
	}
	a, ok := parseAccess(access, AccessNotApplicable)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseLoad, path, "unknown accessor access "+access)
	}
	return &Accessor{Access: a}, nil
}

func parseKind(s string) (TypeKind, bool) {
	switch s {
	case "", "class":
		return KindClass, true
	case "struct":
		return KindStruct, true
	case "interface":
		return KindInterface, true
	case "enum":
		return KindEnum, true
	}
	return 0, false
}

func parseAccess(s string, def Accessibility) (Accessibility, bool) {
	if s == "" {
		return def, true
	}
	for i, name := range accessNames {
		if name != "" && name == s {
			return Accessibility(i), true
		}
	}
	return 0, false
}

func withPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(e.Path) == 0 {
		e.Path = path
	}
	return err
}
